package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"local-file-manager/internal/app"
	"local-file-manager/internal/config"
	"local-file-manager/internal/logger"
	"local-file-manager/internal/model"
	"local-file-manager/pkg/apierror"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if stateDir != "" {
		cfg.StateDir = stateDir
		cfg.TrashRoot = filepath.Join(stateDir, "trash")
		cfg.SQLitePath = filepath.Join(stateDir, "journal.db")
	}
	// The CLI is short lived, so roots set through it must survive the process.
	if cfg.RootsFile == "" {
		cfg.RootsFile = filepath.Join(cfg.StateDir, "roots.yaml")
	}

	return cfg, nil
}

// withEngine opens the engine for one command and closes it afterwards.
func withEngine(cmd *cobra.Command, fn func(ctx context.Context, engine *app.Engine) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(logger.New(os.Stderr, level, false))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engine, err := app.NewEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	return fn(ctx, engine)
}

func describeError(err error) string {
	if apiErr := apierror.FromError(err); apiErr != nil {
		return apiErr.Code + ": " + apiErr.Details
	}
	return "error: " + err.Error()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printBatch reports every item of a batch and fails the command when any
// item failed, so scripts can rely on the exit status.
func printBatch(w io.Writer, verb string, outcome model.BatchOutcome) error {
	for _, r := range outcome.Results {
		switch {
		case !r.Success:
			fmt.Fprintf(w, "ERROR: %s (%s)\n", r.Path, r.Message)
		case r.Target != "":
			fmt.Fprintf(w, "%s: %s -> %s\n", verb, r.Path, r.Target)
		default:
			fmt.Fprintf(w, "%s: %s\n", verb, r.Path)
		}
	}
	if outcome.TrashSlot != "" {
		fmt.Fprintf(w, "Trash slot: %s\n", outcome.TrashSlot)
	}
	fmt.Fprintf(w, "Processed: %d  Failed: %d\n", outcome.Processed, outcome.Failed)

	if outcome.Failed > 0 {
		return fmt.Errorf("%d of %d item(s) failed", outcome.Failed, outcome.Processed+outcome.Failed)
	}
	return nil
}
