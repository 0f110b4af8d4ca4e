// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package post

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablonapp/tablon/internal/forum/comment"
	"github.com/tablonapp/tablon/internal/forum/upload"
	"github.com/tablonapp/tablon/internal/platform/constants"
	"github.com/tablonapp/tablon/internal/platform/request"
	"github.com/tablonapp/tablon/internal/platform/respond"
	"github.com/tablonapp/tablon/pkg/convert"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// ImageStore persists multipart images in upload mode.
// Satisfied by [upload.DiskStore].
type ImageStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(publicURL string) error
}

// Handler implements post HTTP endpoints.
//
// # Upload Modes
//
// The handler branches on the configured upload mode exactly once, in the
// image extraction helpers: url mode reads JSON with an optional image_url,
// upload mode reads multipart form data with an optional image file. The
// service below the branch is identical.
type Handler struct {
	postService *Service
	comments    *comment.Service
	uploadMode  string
	images      ImageStore // nil unless uploadMode is "upload"
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, comments *comment.Service, uploadMode string, images ImageStore) *Handler {
	return &Handler{
		postService: service,
		comments:    comments,
		uploadMode:  uploadMode,
		images:      images,
	}
}

// Routes returns a [chi.Router] configured with post routes.
//
// # Endpoints
//   - GET    /               : Paginated listing across boards.
//   - GET    /search         : Free-text search (q, min 2 chars, max 20 results).
//   - GET    /user/{userId}  : Posts authored by one member.
//   - GET    /{id}           : Detail with comments; bumps the view counter.
//   - POST   /               : (auth) Publishes a post.
//   - POST   /{id}/comments  : (auth) Replies to a post (comment handler).
//   - PUT    /{id}           : (auth, owner|staff) Edits a post.
//   - DELETE /{id}           : (auth, owner|staff) Removes a post.
func (handler *Handler) Routes(authenticate, optionalAuth func(http.Handler) http.Handler, createComment http.HandlerFunc) chi.Router {
	router := chi.NewRouter()

	router.Group(func(public chi.Router) {
		public.Use(optionalAuth)

		public.Get("/", handler.list)
		public.Get("/search", handler.search)
		public.Get("/user/{userId}", handler.listByUser)
		public.Get("/{id}", handler.get)
	})

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)

		protected.Post("/", handler.create)
		protected.Post("/{id}/comments", createComment)
		protected.Put("/{id}", handler.update)
		protected.Delete("/{id}", handler.remove)
	})

	return router
}

// list handles GET /api/posts requests.
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	params := pagination.FromRequest(req)

	posts, err := handler.postService.List(req.Context(), params)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"posts":      posts,
		"pagination": pagination.NewMeta(params, len(posts)),
	})
}

// BoardPosts handles GET /api/boards/{id}/posts requests.
// Exported because it is mounted by the board router, not this package's.
func (handler *Handler) BoardPosts(writer http.ResponseWriter, req *http.Request) {
	boardID, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	params := pagination.FromRequest(req)

	posts, err := handler.postService.ListByBoard(req.Context(), boardID, params)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"posts":      posts,
		"pagination": pagination.NewMeta(params, len(posts)),
	})
}

// search handles GET /api/posts/search requests.
func (handler *Handler) search(writer http.ResponseWriter, req *http.Request) {
	posts, query, err := handler.postService.Search(req.Context(), req.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"posts": posts,
		"count": len(posts),
		"query": query,
	})
}

// listByUser handles GET /api/posts/user/{userId} requests.
func (handler *Handler) listByUser(writer http.ResponseWriter, req *http.Request) {
	userID, err := request.ID(req, "userId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	params := pagination.FromRequest(req)

	posts, err := handler.postService.ListByUser(req.Context(), userID, params)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"posts":      posts,
		"pagination": pagination.NewMeta(params, len(posts)),
	})
}

// get handles GET /api/posts/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.ID(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	post, err := handler.postService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	comments, err := handler.comments.ListByPost(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"post":     post,
		"comments": comments,
	})
}

// postBody is the mode-independent result of extracting a create payload.
type postBody struct {
	Title   string
	Content string
	BoardID int64
	Image   *string
}

// createRequest is the JSON payload accepted in url mode.
type createRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	BoardID  int64  `json:"board_id"`
	ImageURL string `json:"image_url"`
}

// create handles POST /api/posts requests.
func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	identity, err := request.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	body, err := handler.extractBody(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	post, err := handler.postService.Create(req.Context(), identity, CreateInput{
		Title:   body.Title,
		Content: body.Content,
		BoardID: body.BoardID,
		Image:   body.Image,
	})
	if err != nil {
		handler.discardStoredImage(body.Image)
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, respond.Fields{
		"message": "Post created successfully",
		"post":    post,
	})
}

// updateRequest is the JSON payload accepted in url mode for updates.
type updateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

// update handles PUT /api/posts/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
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

	input, stored, err := handler.extractUpdate(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	post, err := handler.postService.Update(req.Context(), identity, id, input)
	if err != nil {
		handler.discardStoredImage(stored)
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// remove handles DELETE /api/posts/{id} requests.
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

	image, err := handler.postService.Delete(req.Context(), identity, id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	// In upload mode the stored file goes with the post.
	handler.discardStoredImage(image)

	respond.OK(writer, respond.Fields{
		"message": "Post deleted successfully",
	})
}

// extractBody reads a create payload in the configured upload mode.
func (handler *Handler) extractBody(req *http.Request) (*postBody, error) {
	if handler.uploadMode == constants.UploadModeFile {
		return handler.extractMultipartBody(req)
	}

	var input createRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		return nil, err
	}

	body := &postBody{
		Title:   input.Title,
		Content: input.Content,
		BoardID: input.BoardID,
	}

	if input.ImageURL != "" {
		if err := upload.ValidateImageURL(input.ImageURL); err != nil {
			return nil, err
		}
		body.Image = &input.ImageURL
	}

	return body, nil
}

// extractMultipartBody reads a create payload from multipart form data and
// stores the optional image file.
func (handler *Handler) extractMultipartBody(req *http.Request) (*postBody, error) {
	if err := req.ParseMultipartForm(constants.DefaultMaxUploadSize + 1<<20); err != nil {
		return nil, upload.ErrInvalidMultipart
	}

	body := &postBody{
		Title:   req.FormValue("title"),
		Content: req.FormValue("content"),
		BoardID: convert.ToInt64D(req.FormValue("board_id"), 0),
	}

	file, header, err := req.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return body, nil
		}
		return nil, upload.ErrInvalidMultipart
	}
	defer file.Close()

	storedURL, err := handler.images.Save(file, header)
	if err != nil {
		return nil, err
	}
	body.Image = &storedURL

	return body, nil
}

// extractUpdate reads an update payload in the configured upload mode. The
// second return value is the URL of a file stored during THIS request, for
// compensating removal if the update later fails.
func (handler *Handler) extractUpdate(req *http.Request) (UpdateInput, *string, error) {
	if handler.uploadMode == constants.UploadModeFile {
		return handler.extractMultipartUpdate(req)
	}

	var input updateRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		return UpdateInput{}, nil, err
	}

	result := UpdateInput{
		Title:   input.Title,
		Content: input.Content,
	}

	if input.ImageURL != nil && *input.ImageURL != "" {
		if err := upload.ValidateImageURL(*input.ImageURL); err != nil {
			return UpdateInput{}, nil, err
		}
		result.Image = input.ImageURL
	}

	return result, nil, nil
}

// extractMultipartUpdate reads an update payload from multipart form data.
func (handler *Handler) extractMultipartUpdate(req *http.Request) (UpdateInput, *string, error) {
	if err := req.ParseMultipartForm(constants.DefaultMaxUploadSize + 1<<20); err != nil {
		return UpdateInput{}, nil, upload.ErrInvalidMultipart
	}

	result := UpdateInput{}

	// Multipart form fields have no JSON null/absent distinction; an absent
	// field simply is not in the form, a present field is a patch.
	if values, ok := req.MultipartForm.Value["title"]; ok && len(values) > 0 {
		result.Title = &values[0]
	}
	if values, ok := req.MultipartForm.Value["content"]; ok && len(values) > 0 {
		result.Content = &values[0]
	}

	file, header, err := req.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return result, nil, nil
		}
		return UpdateInput{}, nil, upload.ErrInvalidMultipart
	}
	defer file.Close()

	storedURL, err := handler.images.Save(file, header)
	if err != nil {
		return UpdateInput{}, nil, err
	}
	result.Image = &storedURL

	return result, &storedURL, nil
}

// discardStoredImage removes a stored upload after a failed or destructive
// operation. URL-mode images and nil images are no-ops.
func (handler *Handler) discardStoredImage(image *string) {
	if image == nil || handler.images == nil || handler.uploadMode != constants.UploadModeFile {
		return
	}
	_ = handler.images.Remove(*image)
}
