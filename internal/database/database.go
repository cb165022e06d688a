// Package database provides PostgreSQL connection management using pgx.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const maxConnAttempts = 5

// NewPool creates and validates a pgxpool connection pool.
// It retries up to maxConnAttempts times to accommodate containers
// starting up.
func NewPool(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	// Sensible pool defaults for a small service.
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= maxConnAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			pingErr := pool.Ping(ctx)
			if pingErr == nil {
				break
			}
			pool.Close()
			err = pingErr
		}
		if attempt == maxConnAttempts {
			break
		}
		log.Warn("db connect attempt failed, retrying in 2s",
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return pool, nil
}

// Migrate creates the schema if it does not exist yet. All statements are
// idempotent so the service can bootstrap a fresh database at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			start_time       TEXT NOT NULL,
			end_time         TEXT,
			location         TEXT NOT NULL,
			signup_deadline  TEXT NOT NULL,
			highlights       JSONB,
			prizes           JSONB,
			registered_count INTEGER NOT NULL DEFAULT 0,
			max_participants INTEGER,
			banner_url       TEXT,
			replay_url       TEXT,
			description      TEXT,
			agenda           JSONB,
			target_audience  JSONB,
			requirements     JSONB,
			speakers         JSONB,
			organizer        JSONB,
			tags             JSONB,
			difficulty       TEXT,
			benefits         JSONB,
			survey_questions JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS registrations (
			id            TEXT PRIMARY KEY,
			event_id      TEXT NOT NULL REFERENCES events(id),
			name          TEXT NOT NULL,
			department    TEXT NOT NULL,
			registered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (event_id, name, department)
		)`,
		`CREATE TABLE IF NOT EXISTS survey_responses (
			event_id     TEXT NOT NULL REFERENCES events(id),
			user_id      TEXT NOT NULL,
			answers      JSONB NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (event_id, user_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
