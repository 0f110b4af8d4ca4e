// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/ctxutil"
	"github.com/tablonapp/tablon/internal/platform/respond"
	"github.com/tablonapp/tablon/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenStr string) (*sec.TokenClaims, error)
}

// IdentityLoader resolves the current account state for a verified token.
//
// Tokens stay valid for days, so the gate re-reads the account on every
// request: a deleted user is rejected and a role change takes effect
// immediately instead of at token expiry.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID int64) (*sec.Identity, error)
}

// Authenticate verifies the JWT from the Authorization header and requires it.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header; abort with 401 if absent.
//  2. Parse and verify the JWT via [TokenVerifier]; abort with 403 on failure.
//  3. Reject refresh tokens presented as access tokens (403).
//  4. Resolve the account via [IdentityLoader]; abort with 401 if it is gone.
//  5. Inject [*sec.Identity] into the request context for downstream use.
//
// A missing credential and a bad credential fail with different statuses so
// clients can tell "log in" apart from "log in again".
func Authenticate(verifier TokenVerifier, loader IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Credential Presence ────────────────────────────────────────
			tokenStr, ok := bearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Forbidden("Invalid or expired token"))
				return
			}

			// ── 3. Token Kind Check ───────────────────────────────────────────
			if claims.IsRefresh() {
				respond.Error(writer, request, apperr.Forbidden("Invalid or expired token"))
				return
			}

			// ── 4. Account Resolution ─────────────────────────────────────────
			identity, err := loader.LoadIdentity(request.Context(), claims.UserID)
			if err != nil || identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("User no longer exists"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// AuthenticateOptional attaches an identity when a valid token is present.
//
// # Flow
//
// Same pipeline as [Authenticate], except every failure mode is silent: a
// missing, malformed, expired, or orphaned token simply leaves the request
// anonymous. Handlers behind this middleware must tolerate a nil identity.
func AuthenticateOptional(verifier TokenVerifier, loader IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			tokenStr, ok := bearerToken(request)
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.Verify(tokenStr)
			if err != nil || claims.IsRefresh() {
				next.ServeHTTP(writer, request)
				return
			}

			identity, err := loader.LoadIdentity(request.Context(), claims.UserID)
			if err != nil || identity == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests unless the authenticated user holds one of the
// allowed roles.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context (implies AuthN).
//  2. Check the user's role against the allow-list.
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			identity := ctxutil.GetIdentity(request.Context())
			if err := sec.RequireRole(identity, allowed...); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// bearerToken extracts the raw token from 'Authorization: Bearer <token>'.
func bearerToken(request *http.Request) (string, bool) {
	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
