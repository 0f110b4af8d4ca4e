// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablonapp/tablon/internal/platform/request"
	"github.com/tablonapp/tablon/internal/platform/respond"
)

// Handler implements comment HTTP endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] for the /api/comments subtree.
//
// # Endpoints
//   - DELETE /{id} : (auth, owner|staff) Removes a comment.
//
// Comment creation lives on the post subtree (POST /api/posts/{id}/comments)
// and is mounted there via [Handler.CreateForPost].
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)

		protected.Delete("/{id}", handler.remove)
	})

	return router
}

// createRequest represents the JSON payload for replying to a post.
type createRequest struct {
	Content string `json:"content"`
}

// CreateForPost handles POST /api/posts/{id}/comments requests.
// Exported because it is mounted by the post router, not this package's.
func (handler *Handler) CreateForPost(writer http.ResponseWriter, req *http.Request) {
	identity, err := request.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	postID, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	comment, err := handler.commentService.Create(req.Context(), identity, CreateInput{
		PostID:  postID,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, respond.Fields{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// remove handles DELETE /api/comments/{id} requests.
func (handler *Handler) remove(writer http.ResponseWriter, req *http.Request) {
	identity, err := request.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	id, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.commentService.Delete(req.Context(), identity, id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"message": "Comment deleted successfully",
	})
}
