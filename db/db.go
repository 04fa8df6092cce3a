package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Open opens the Postgres pool for connStr and waits until it answers,
// retrying up to maxRetries times.
func Open(ctx context.Context, connStr string, maxRetries int, logger *zap.Logger) (*sql.DB, error) {
	log := logger.Sugar()

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	for i := 1; ; i++ {
		err = db.PingContext(ctx)
		if err == nil {
			log.Infof("✓ Database connection established successfully")
			return db, nil
		}
		if i >= maxRetries {
			break
		}
		log.Warnf("⚠️ DB retry %d/%d failed: %v", i, maxRetries, err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to ping database: %w", err)
}
