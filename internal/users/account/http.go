// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablonapp/tablon/internal/platform/request"
	"github.com/tablonapp/tablon/internal/platform/respond"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// Handler implements the public member directory HTTP endpoints.
// Every route here is readable without authentication.
type Handler struct {
	directoryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{directoryService: service}
}

// Routes returns a [chi.Router] configured with directory routes.
//
// # Endpoints
//   - GET /        : Paginated member listing.
//   - GET /search  : Username search (q, min 2 chars, max 20 results).
//   - GET /top     : Most active members by post count.
//   - GET /{id}    : Public profile with activity stats.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/search", handler.search)
	router.Get("/top", handler.topPosters)
	router.Get("/{id}", handler.get)

	return router
}

// list handles GET /api/users requests.
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	params := pagination.FromRequest(req)

	members, err := handler.directoryService.List(req.Context(), params)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"users":      members,
		"pagination": pagination.NewMeta(params, len(members)),
	})
}

// search handles GET /api/users/search requests.
func (handler *Handler) search(writer http.ResponseWriter, req *http.Request) {
	members, query, err := handler.directoryService.Search(req.Context(), req.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"users": members,
		"count": len(members),
		"query": query,
	})
}

// topPosters handles GET /api/users/top requests.
func (handler *Handler) topPosters(writer http.ResponseWriter, req *http.Request) {
	posters, err := handler.directoryService.TopPosters(req.Context())
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"users": posters,
	})
}

// get handles GET /api/users/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	member, stats, err := handler.directoryService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"user":  member,
		"stats": stats,
	})
}
