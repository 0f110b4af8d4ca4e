// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tablonapp/tablon/internal/forum/board"
	"github.com/tablonapp/tablon/internal/forum/comment"
	"github.com/tablonapp/tablon/internal/forum/post"
	"github.com/tablonapp/tablon/internal/platform/config"
	"github.com/tablonapp/tablon/internal/platform/constants"
	"github.com/tablonapp/tablon/internal/platform/middleware"
	"github.com/tablonapp/tablon/internal/users/account"
	"github.com/tablonapp/tablon/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, and profile self-service.
	Auth *auth.Handler

	// Account handles the public member directory.
	Account *account.Handler

	// Board manages discussion boards.
	Board *board.Handler

	// Post manages posts and their image attachments.
	Post *post.Handler

	// Comment manages comments on posts.
	Comment *comment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Authentication is not a global middleware: most read endpoints are public,
// so the authenticate and optionalAuth gates are handed to each domain's
// Routes method, which applies them to the route groups that need them.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, loader middleware.IdentityLoader, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Per-group authentication gates.
	authenticate := middleware.Authenticate(verifier, loader)
	optionalAuth := middleware.AuthenticateOptional(verifier, loader)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups.
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(authenticate))
		api.Mount("/users", h.Account.Routes())
		api.Mount("/boards", h.Board.Routes(authenticate, h.Post.BoardPosts))
		api.Mount("/posts", h.Post.Routes(authenticate, optionalAuth, h.Comment.CreateForPost))
		api.Mount("/comments", h.Comment.Routes(authenticate))
	})

	// # Static Uploads
	// Stored post images are served straight off disk in upload mode.
	if cfg.UploadEnabled() {
		fileServer := http.StripPrefix(constants.UploadURLPrefix, http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get(constants.UploadURLPrefix+"*", fileServer.ServeHTTP)
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
