package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"local-file-manager/internal/allowlist"
	"local-file-manager/internal/config"
	"local-file-manager/internal/database"
	"local-file-manager/internal/event"
	"local-file-manager/internal/handler"
	"local-file-manager/internal/repository"
	"local-file-manager/internal/router"
	"local-file-manager/internal/service"
	"local-file-manager/internal/storage"
	"local-file-manager/internal/websocket"
)

// Engine is the wired core shared by the HTTP server and the CLI.
type Engine struct {
	Operations *service.OperationsService
	Bus        *event.InMemoryBus
	Health     router.HealthFunc

	closers []func()
}

func (e *Engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// NewEngine opens the journal backend and builds every component.
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	engine := &Engine{}

	store, health, err := openJournal(ctx, cfg, engine)
	if err != nil {
		engine.Close()
		return nil, err
	}
	engine.Health = health

	roots, err := allowlist.Load(cfg.RootsFile, cfg.AllowedRoots)
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("failed to load allowed roots: %w", err)
	}
	if len(roots.Snapshot()) == 0 {
		slog.Warn("no allowed roots configured; every path is reachable")
	}

	fsys := storage.New()
	trash, err := service.NewTrashService(fsys, cfg.TrashRoot)
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("failed to initialize trash: %w", err)
	}

	journal := service.NewJournalService(store)
	mover := service.NewMoveService(fsys)
	engine.Bus = event.NewBus()

	engine.Operations = service.NewOperationsService(service.Components{
		FS:        fsys,
		Guard:     storage.NewPathGuard(),
		Roots:     roots,
		Directory: service.NewDirectoryService(fsys),
		Mover:     mover,
		Trash:     trash,
		Journal:   journal,
		Undo:      service.NewUndoService(journal, mover, trash, fsys),
		Bus:       engine.Bus,
	})

	slog.Info("engine ready",
		"journal_driver", cfg.JournalDriver,
		"trash_root", trash.Root(),
		"allowed_roots", len(roots.Snapshot()),
	)

	return engine, nil
}

func openJournal(ctx context.Context, cfg *config.Config, engine *Engine) (repository.JournalStore, router.HealthFunc, error) {
	switch cfg.JournalDriver {
	case config.JournalDriverPostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		engine.closers = append(engine.closers, db.Close)

		if err := db.EnsureSchema(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}

		return repository.NewPostgresJournalRepository(db.Pool), db.Health, nil

	default:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to prepare state directory: %w", err)
		}

		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open journal: %w", err)
		}
		engine.closers = append(engine.closers, func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Warn("failed to close journal", "error", closeErr)
			}
		})

		return repository.NewSQLiteJournalRepository(db), db.PingContext, nil
	}
}

type App struct {
	server *http.Server
	engine *Engine
	hub    *websocket.Hub
}

func New(cfg *config.Config) (*App, error) {
	engine, err := NewEngine(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	hub := websocket.NewHub(engine.Bus)

	ops := engine.Operations
	appRouter := router.New(cfg, router.Handlers{
		Directory:  handler.NewDirectoryHandler(ops),
		Operations: handler.NewOperationsHandler(ops),
		Journal:    handler.NewJournalHandler(ops),
		Roots:      handler.NewRootsHandler(ops),
		Events:     websocket.NewHandler(hub, cfg.CORSOrigins),
	}, engine.Health)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, engine: engine, hub: hub}, nil
}

// Run serves until SIGINT/SIGTERM or a server failure, then shuts down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	// The journal closes only after HTTP has drained.
	a.engine.Close()

	if err == nil {
		slog.Info("server stopped")
	}
	return err
}
