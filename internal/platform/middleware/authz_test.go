// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/ctxutil"
	"github.com/tablonapp/tablon/internal/platform/middleware"
	"github.com/tablonapp/tablon/internal/platform/sec"
)

// newGateServices builds a real token service plus an identity loader that
// knows a single account. Using real tokens keeps the verification branch
// honest without a fake verifier.
func newGateServices(t *testing.T) (*sec.TokenService, *fakeLoader) {
	t.Helper()
	tokens, err := sec.NewTokenService("middleware-test-secret-0123456789", "tablon.app")
	require.NoError(t, err)

	loader := &fakeLoader{identities: map[int64]*sec.Identity{
		1: {ID: 1, Username: "rocio", Email: "rocio@tablon.app", Role: sec.RoleUser},
	}}
	return tokens, loader
}

type fakeLoader struct {
	identities map[int64]*sec.Identity
}

func (loader *fakeLoader) LoadIdentity(ctx context.Context, userID int64) (*sec.Identity, error) {
	identity, found := loader.identities[userID]
	if !found {
		return nil, apperr.NotFound("User not found")
	}
	return identity, nil
}

// echoIdentity is a terminal handler that records whether an identity reached it.
func echoIdentity(captured **sec.Identity) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	}
}

/*
TestAuthenticate_ValidToken verifies that a valid access token passes the gate
and injects the resolved identity into the request context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	tokens, loader := newGateServices(t)
	token, err := tokens.IssueAccessToken(1)
	require.NoError(t, err)

	var captured *sec.Identity
	gate := middleware.Authenticate(tokens, loader)(echoIdentity(&captured))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, int64(1), captured.ID)
	assert.Equal(t, "rocio", captured.Username)
}

/*
TestAuthenticate_MissingCredential verifies that absent or malformed
Authorization headers are a 401, telling the client to log in.
*/
func TestAuthenticate_MissingCredential(t *testing.T) {
	tokens, loader := newGateServices(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"empty_token", "Bearer "},
		{"token_only", "some-token-without-scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *sec.Identity
			gate := middleware.Authenticate(tokens, loader)(echoIdentity(&captured))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, captured)
			assert.Contains(t, rec.Body.String(), "Authentication required")
		})
	}
}

/*
TestAuthenticate_InvalidToken verifies that garbage tokens, wrongly signed
tokens, and refresh tokens posing as access tokens are all a 403.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	tokens, loader := newGateServices(t)

	otherService, err := sec.NewTokenService("a-different-secret-entirely-12345", "tablon.app")
	require.NoError(t, err)
	foreignToken, err := otherService.IssueAccessToken(1)
	require.NoError(t, err)

	refreshToken, err := tokens.IssueRefreshToken(1)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"wrong_secret", foreignToken},
		{"refresh_as_access", refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *sec.Identity
			gate := middleware.Authenticate(tokens, loader)(echoIdentity(&captured))

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Nil(t, captured)
			assert.Contains(t, rec.Body.String(), "Invalid or expired token")
		})
	}
}

/*
TestAuthenticate_DeletedUser verifies that a valid token for an account that no
longer exists is rejected with 401.
*/
func TestAuthenticate_DeletedUser(t *testing.T) {
	tokens, loader := newGateServices(t)
	token, err := tokens.IssueAccessToken(999)
	require.NoError(t, err)

	var captured *sec.Identity
	gate := middleware.Authenticate(tokens, loader)(echoIdentity(&captured))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
	assert.Contains(t, rec.Body.String(), "User no longer exists")
}

/*
TestAuthenticateOptional verifies that the optional gate never blocks: bad or
absent credentials leave the request anonymous, good ones attach the identity.
*/
func TestAuthenticateOptional(t *testing.T) {
	tokens, loader := newGateServices(t)
	validToken, err := tokens.IssueAccessToken(1)
	require.NoError(t, err)
	orphanToken, err := tokens.IssueAccessToken(999)
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		wantIdentity bool
	}{
		{"no_header", "", false},
		{"valid_token", "Bearer " + validToken, true},
		{"garbage_token", "Bearer not.a.jwt", false},
		{"deleted_user", "Bearer " + orphanToken, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *sec.Identity
			gate := middleware.AuthenticateOptional(tokens, loader)(echoIdentity(&captured))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			// The optional gate always lets the request through.
			assert.Equal(t, http.StatusOK, rec.Code)
			if tt.wantIdentity {
				require.NotNil(t, captured)
				assert.Equal(t, int64(1), captured.ID)
			} else {
				assert.Nil(t, captured)
			}
		})
	}
}

/*
TestRequireRole verifies the role gate applied after authentication: staff
roles pass, plain users are forbidden, anonymous requests are 401.
*/
func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	gate := middleware.RequireRole(sec.RoleAdmin, sec.RoleModerator)(next)

	tests := []struct {
		name       string
		identity   *sec.Identity
		wantStatus int
	}{
		{"admin", &sec.Identity{ID: 1, Role: sec.RoleAdmin}, http.StatusOK},
		{"moderator", &sec.Identity{ID: 2, Role: sec.RoleModerator}, http.StatusOK},
		{"plain_user", &sec.Identity{ID: 3, Role: sec.RoleUser}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("DELETE", "/boards/1", nil)
			if tt.identity != nil {
				req = req.WithContext(ctxutil.WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
