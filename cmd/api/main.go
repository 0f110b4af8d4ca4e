// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Command api is the entry point for the Tablon HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env honored in dev).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tablonapp/tablon/internal/api"
	"github.com/tablonapp/tablon/internal/forum/board"
	"github.com/tablonapp/tablon/internal/forum/comment"
	"github.com/tablonapp/tablon/internal/forum/post"
	"github.com/tablonapp/tablon/internal/forum/upload"
	"github.com/tablonapp/tablon/internal/platform/config"
	"github.com/tablonapp/tablon/internal/platform/constants"
	"github.com/tablonapp/tablon/internal/platform/migration"
	pgstore "github.com/tablonapp/tablon/internal/platform/postgres"
	redisstore "github.com/tablonapp/tablon/internal/platform/redis"
	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/internal/users/account"
	"github.com/tablonapp/tablon/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Tablon] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env file is a development convenience; its absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("upload_mode", cfg.UploadMode),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Image Storage ──────────────────────────────────────────────────
	// Only wired in upload mode; in url mode posts carry external links.
	var images post.ImageStore
	if cfg.UploadEnabled() {
		diskStore, err := upload.NewDiskStore(cfg.UploadDir, cfg.MaxUploadSize)
		must(log, err, "initialize upload directory")
		images = diskStore
	}

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService)
	authHandler := auth.NewHandler(authService)

	directoryRepository := account.NewDirectoryRepository(pool)
	accountService := account.NewService(directoryRepository, userRepository, rdb)
	accountHandler := account.NewHandler(accountService)

	boardRepository := board.NewBoardRepository(pool)
	boardService := board.NewService(boardRepository)
	boardHandler := board.NewHandler(boardService)

	commentRepository := comment.NewCommentRepository(pool)
	commentService := comment.NewService(commentRepository)
	commentHandler := comment.NewHandler(commentService)

	postRepository := post.NewPostRepository(pool)
	postService := post.NewService(postRepository, boardRepository)
	postHandler := post.NewHandler(postService, commentService, cfg.UploadMode, images)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Board:     boardHandler,
		Post:      postHandler,
		Comment:   commentHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokenService, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
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
