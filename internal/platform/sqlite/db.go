// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

// Package sqlite provides a managed connection to the local library database.
//
// # Architecture
//
// This package is part of the Infrastructure layer. The database is a single
// on-disk file; a lone writer connection is enforced because the runtime has
// exactly one logical writer (the active session).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// busyTimeout lets a write wait out a straggling background write
	// instead of failing immediately with SQLITE_BUSY.
	busyTimeout = 5 * time.Second

	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// Open opens (creating if needed) the library database at path.
//
// # Parameters
//   - ctx: Context for the initial connectivity check.
//   - path: Filesystem path of the database file, or ":memory:" for tests.
//   - logger: Structured logger for connection events.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d",
		path, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	// SQLite allows one writer; serializing through a single connection
	// avoids SQLITE_BUSY churn from the fire-and-forget persistence calls.
	db.SetMaxOpenConns(1)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database opened", slog.String("path", path))
	return db, nil
}

// Ping verifies that the database connection is healthy.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}

	return nil
}
