package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationName tags journal connections in pg_stat_activity.
const ApplicationName = "local-file-manager-journal"

type DB struct {
	Pool *pgxpool.Pool
}

// poolConfig sizes the journal pool. Journal writes are serialized by the
// engine, so a small pool with short idle time is enough.
func poolConfig(databaseURL string, maxConns int32, minConns int32) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse journal database URL: %w", err)
	}

	if maxConns < 1 {
		maxConns = 1
	}
	if minConns < 0 || minConns > maxConns {
		minConns = 0
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	if _, set := cfg.ConnConfig.RuntimeParams["application_name"]; !set {
		cfg.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	}

	return cfg, nil
}

// New opens the Postgres journal pool and verifies it answers.
func New(ctx context.Context, databaseURL string, maxConns int32, minConns int32) (*DB, error) {
	cfg, err := poolConfig(databaseURL, maxConns, minConns)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create journal pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping journal database: %w", err)
	}

	slog.Info("journal database connected",
		"driver", "postgres",
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns,
		"application_name", cfg.ConnConfig.RuntimeParams["application_name"],
	)
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health backs the /health endpoint when the journal lives in Postgres.
func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
