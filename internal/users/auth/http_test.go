// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/ctxutil"
	"github.com/tablonapp/tablon/internal/platform/sec"
)

// identityInjector stands in for the authentication gate: it attaches the
// given identity to every request so protected routes can be exercised
// without minting tokens.
func identityInjector(identity *sec.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(writer, req.WithContext(ctxutil.WithIdentity(req.Context(), identity)))
		})
	}
}

func registerTestAccount(t *testing.T, service *Service) *Session {
	t.Helper()

	session, err := service.Register(context.Background(), RegisterInput{
		Username:        "ramona",
		Email:           "ramona@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	return session
}

/*
TestHandler_Login_BodyFieldNames pins the login body contract: the
credential field is named emailOrUsername, not login or username.
*/
func TestHandler_Login_BodyFieldNames(t *testing.T) {
	service, _ := newTestService(t)
	session := registerTestAccount(t, service)

	handler := NewHandler(service)
	router := handler.Routes(identityInjector(session.User.Identity()))

	t.Run("accepts_emailOrUsername", func(t *testing.T) {
		body := `{"emailOrUsername": "ramona@example.com", "password": "secret1"}`
		request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"token"`)
	})

	t.Run("ignores_legacy_login_key", func(t *testing.T) {
		body := `{"login": "ramona@example.com", "password": "secret1"}`
		request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

/*
TestHandler_ChangePassword_BodyFieldNames pins the password-rotation body
contract: currentPassword, newPassword, confirmNewPassword.
*/
func TestHandler_ChangePassword_BodyFieldNames(t *testing.T) {
	service, _ := newTestService(t)
	session := registerTestAccount(t, service)

	handler := NewHandler(service)
	router := handler.Routes(identityInjector(session.User.Identity()))

	body := `{
		"currentPassword": "secret1",
		"newPassword": "secret2",
		"confirmNewPassword": "secret2"
	}`
	request := httptest.NewRequest(http.MethodPut, "/change-password", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	// The rotation must be effective, not just acknowledged.
	_, err := service.Login(context.Background(), LoginInput{Login: "ramona@example.com", Password: "secret2"})
	assert.NoError(t, err)

	_, err = service.Login(context.Background(), LoginInput{Login: "ramona@example.com", Password: "secret1"})
	assert.Error(t, err)
}
