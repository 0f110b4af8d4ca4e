// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// # HTTP Delivery
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON request parsing and strict input validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablonapp/tablon/internal/platform/request"
	"github.com/tablonapp/tablon/internal/platform/respond"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the account lifecycle entry
// points (registration, login, token refresh, profile self-service).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register        : Creates a new account.
//   - POST /login           : Authenticates and returns a token pair.
//   - POST /refresh         : Exchanges a refresh token for a new pair.
//   - POST /logout          : (auth) Acknowledges a client-side logout.
//   - GET  /profile         : (auth) Returns the account with activity stats.
//   - PUT  /profile         : (auth) Partially updates the profile.
//   - PUT  /change-password : (auth) Rotates the password.
//
// The authenticate middleware is injected by the server so this package
// stays free of token-verification wiring.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)

		protected.Post("/logout", handler.logout)
		protected.Get("/profile", handler.profile)
		protected.Put("/profile", handler.updateProfile)
		protected.Put("/change-password", handler.changePassword)
	})

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// register handles POST /api/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the user and token pair.
//   - Writes HTTP 400 Bad Request if validation rules fail or if the
//     email/username is taken.
func (handler *Handler) register(writer http.ResponseWriter, req *http.Request) {
	var input registerRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	// The service owns validation, uniqueness checks, and Bcrypt hashing.
	// Domain errors map to HTTP statuses inside the respond helper.
	session, err := handler.authService.Register(req.Context(), RegisterInput{
		Username:        input.Username,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, respond.Fields{
		"message":      "User registered successfully",
		"user":         session.User,
		"token":        session.AccessToken,
		"refreshToken": session.RefreshToken,
	})
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Login    string `json:"emailOrUsername"`
	Password string `json:"password"`
}

// login handles POST /api/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the user and token pair.
//   - Writes HTTP 401 Unauthorized for bad credentials, without leaking
//     whether the login or the password was wrong.
func (handler *Handler) login(writer http.ResponseWriter, req *http.Request) {
	var input loginRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	session, err := handler.authService.Login(req.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"message":      "Login successful",
		"user":         session.User,
		"token":        session.AccessToken,
		"refreshToken": session.RefreshToken,
	})
}

// refreshRequest carries the refresh token to exchange.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refresh handles POST /api/auth/refresh requests.
func (handler *Handler) refresh(writer http.ResponseWriter, req *http.Request) {
	var input refreshRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	session, err := handler.authService.Refresh(req.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"token":        session.AccessToken,
		"refreshToken": session.RefreshToken,
	})
}

// logout handles POST /api/auth/logout requests.
//
// Tokens are stateless and carry no server-side session, so logout is an
// acknowledgement: the client discards its tokens.
func (handler *Handler) logout(writer http.ResponseWriter, req *http.Request) {
	respond.OK(writer, respond.Fields{
		"message": "Logout successful",
	})
}

// profile handles GET /api/auth/profile requests.
func (handler *Handler) profile(writer http.ResponseWriter, req *http.Request) {
	identity, err := request.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	user, stats, err := handler.authService.Profile(req.Context(), identity.ID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"user":  user,
		"stats": stats,
	})
}

// updateProfileRequest represents the JSON payload for a partial profile update.
// Absent fields are left untouched.
type updateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// updateProfile handles PUT /api/auth/profile requests.
func (handler *Handler) updateProfile(writer http.ResponseWriter, req *http.Request) {
	identity, err := request.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateProfileRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	user, err := handler.authService.UpdateProfile(req.Context(), identity.ID, UpdateProfileInput{
		Username: input.Username,
		Email:    input.Email,
		Bio:      input.Bio,
		Avatar:   input.Avatar,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// changePasswordRequest represents the JSON payload for a password rotation.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmNewPassword"`
}

// changePassword handles PUT /api/auth/change-password requests.
func (handler *Handler) changePassword(writer http.ResponseWriter, req *http.Request) {
	identity, err := request.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input changePasswordRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	err = handler.authService.ChangePassword(
		req.Context(),
		identity.ID,
		input.CurrentPassword,
		input.NewPassword,
		input.ConfirmPassword,
	)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, respond.Fields{
		"message": "Password changed successfully",
	})
}
