// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package board

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablonapp/tablon/internal/platform/middleware"
	"github.com/tablonapp/tablon/internal/platform/request"
	"github.com/tablonapp/tablon/internal/platform/respond"
	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// Handler implements board management HTTP endpoints.
type Handler struct {
	boardService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{boardService: service}
}

// Routes returns a [chi.Router] configured with board routes.
//
// # Endpoints
//   - GET    /            : Paginated board listing.
//   - GET    /{id}        : Single board.
//   - GET    /{id}/posts  : Posts on the board (served by the post handler).
//   - POST   /            : (admin|moderator) Opens a new board.
//   - PUT    /{id}        : (admin|moderator) Edits a board.
//   - DELETE /{id}        : (admin) Removes a board and its content.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler, boardPosts http.HandlerFunc) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/posts", boardPosts)

	router.Group(func(staff chi.Router) {
		staff.Use(authenticate, middleware.RequireRole(sec.RoleAdmin, sec.RoleModerator))

		staff.Post("/", handler.create)
		staff.Put("/{id}", handler.update)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(authenticate, middleware.RequireRole(sec.RoleAdmin))

		admin.Delete("/{id}", handler.remove)
	})

	return router
}

// list handles GET /api/boards requests.
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	params := pagination.FromRequest(req)

	boards, err := handler.boardService.List(req.Context(), params)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"boards":     boards,
		"pagination": pagination.NewMeta(params, len(boards)),
	})
}

// get handles GET /api/boards/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	board, err := handler.boardService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"board": board,
	})
}

// boardRequest represents the JSON payload for opening a board.
type boardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// create handles POST /api/boards requests.
func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	identity, err := request.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input boardRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	board, err := handler.boardService.Create(req.Context(), identity, CreateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, respond.Fields{
		"message": "Board created successfully",
		"board":   board,
	})
}

// updateBoardRequest represents the JSON payload for a partial board update.
type updateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// update handles PUT /api/boards/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	id, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateBoardRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	board, err := handler.boardService.Update(req.Context(), id, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"message": "Board updated successfully",
		"board":   board,
	})
}

// remove handles DELETE /api/boards/{id} requests.
func (handler *Handler) remove(writer http.ResponseWriter, req *http.Request) {
	id, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.boardService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"message": "Board deleted successfully",
	})
}
