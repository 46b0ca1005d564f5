package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"local-file-manager/internal/config"
	"local-file-manager/internal/handler"
	"local-file-manager/internal/middleware"
)

type Handlers struct {
	Directory  *handler.DirectoryHandler
	Operations *handler.OperationsHandler
	Journal    *handler.JournalHandler
	Roots      *handler.RootsHandler
	// Events serves the websocket stream; nil disables the route.
	Events http.Handler
}

// HealthFunc reports whether the journal backend is reachable.
type HealthFunc func(ctx context.Context) error

func New(cfg *config.Config, h Handlers, health HealthFunc) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("journal unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		// The event stream is long lived, so it stays outside the request timeout.
		if h.Events != nil {
			api.Handle("/events", h.Events)
		}

		api.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(cfg.RequestTimeout))

			g.Get("/files", h.Directory.List)
			g.Get("/files/info", h.Directory.Stat)
			g.Get("/search", h.Directory.Search)
			g.Get("/favorites", h.Directory.Favorites)
			g.Post("/directories", h.Directory.Create)

			g.Put("/files/rename", h.Operations.Rename)
			g.Put("/files/move", h.Operations.Move)
			g.Delete("/files", h.Operations.Delete)
			g.Post("/undo", h.Operations.Undo)
			g.Get("/trash", h.Operations.ListTrash)

			g.Get("/logs", h.Journal.List)

			g.Get("/roots", h.Roots.Get)
			g.Put("/roots", h.Roots.Put)
		})
	})

	return r
}
