// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

// Command blogtruyen is the entry point for the local comic library runtime.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Prepare the data directory.
//  4. Open the library database (SQLite).
//  5. Open the device KV store (Badger).
//  6. Run database migrations (idempotent).
//  7. Wire engines and bootstrap the application state.
//  8. Serve the embedding shell until a shutdown signal, then drain writes.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledong198910/blogtruyentranhai/internal/app"
	"github.com/ledong198910/blogtruyentranhai/internal/engage"
	"github.com/ledong198910/blogtruyentranhai/internal/library"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/config"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/kv"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/migration"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/sqlite"
	"github.com/ledong198910/blogtruyentranhai/internal/session"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
	"github.com/ledong198910/blogtruyentranhai/internal/view"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "blogtruyen"))
	slog.SetDefault(log)

	log.Info("[BlogTruyen] runtime_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "blogtruyen"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("data_dir", cfg.DataDir),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Data Directory ─────────────────────────────────────────────────
	must(log, os.MkdirAll(cfg.DataDir, 0o755), "prepare data directory")
	must(log, os.MkdirAll(cfg.SessionDir, 0o755), "prepare session directory")

	// ── 4. Library Database ───────────────────────────────────────────────
	db, err := sqlite.Open(startupCtx, cfg.DatabasePath, log)
	must(log, err, "open library database")
	defer func() {
		log.Info("closing library database")
		if cerr := db.Close(); cerr != nil {
			log.Error("library database close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Device KV Store ────────────────────────────────────────────────
	kvdb, err := kv.Open(cfg.SessionDir, log)
	must(log, err, "open device kv store")
	defer func() {
		log.Info("closing device kv store")
		if cerr := kvdb.Close(); cerr != nil {
			log.Error("device kv store close error", slog.Any("error", cerr))
		}
	}()

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabasePath, cfg.MigrationPath, log), "run migrations")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	store := library.NewSQLiteStore(db)
	tracker := session.NewTracker(kvdb, log)
	identity := auth.NewService(auth.NewKVProfileStore(kvdb, log), store, log)
	engageService := engage.NewService(engage.NewRecorder(), store, log)
	composer := view.NewComposer(cfg.Locale)

	application := app.New(store, tracker, identity, engageService, composer, log)
	must(log, application.Bootstrap(startupCtx), "bootstrap application state")

	state := application.State()
	log.Info("library_ready",
		slog.Int("comics", len(state.Comics)),
		slog.Bool("signed_in", state.CurrentUser != nil),
		slog.Bool("resume_offered", state.Resume != nil),
	)

	// ── 8. Shutdown ───────────────────────────────────────────────────────
	// The embedding shell drives the App from here; the process itself only
	// waits for a termination signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	sig := <-quit
	log.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Drain fire-and-forget persistence before the stores close.
	engageService.Wait()

	log.Info("runtime stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
