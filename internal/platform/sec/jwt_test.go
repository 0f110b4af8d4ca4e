// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret-0123456789"

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "tablon.app")
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that an issued access token verifies back
to the same user id and carries no refresh marker.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.IssueAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "tablon.app", claims.Issuer)
	assert.False(t, claims.IsRefresh())
}

/*
TestTokenService_RefreshMarker verifies that refresh tokens are distinguishable
from access tokens after verification.
*/
func TestTokenService_RefreshMarker(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.IssueRefreshToken(7)
	require.NoError(t, err)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.True(t, claims.IsRefresh())
}

/*
TestTokenService_Expired verifies that a token past its expiry fails with
ErrTokenExpired, not the generic invalid error.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	// Sign an already-expired token with the same secret and claim shape.
	claims := sec.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tablon.app",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
		UserID: 42,
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.Verify(expired)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Tampered verifies that modifying any part of the token
invalidates the signature.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.IssueAccessToken(42)
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	parts[1] = string(payload)

	_, err = service.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_WrongSecret verifies that tokens signed with a different
secret are rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	other, err := sec.NewTokenService("a-completely-different-secret-value", "tablon.app")
	require.NoError(t, err)

	token, err := other.IssueAccessToken(42)
	require.NoError(t, err)

	service := newTestTokenService(t)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_RejectsNonHMAC verifies that tokens declaring a non-HMAC
algorithm are rejected even if otherwise well-formed.
*/
func TestTokenService_RejectsNonHMAC(t *testing.T) {
	service := newTestTokenService(t)

	// alg=none style token: header declares no signature.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, sec.TokenClaims{
		UserID: 42,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Verify(unsigned)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_Garbage verifies behavior on inputs that are not JWTs at all.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.Verify(input)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid, "input %q", input)
	}
}

/*
TestNewTokenService_EmptySecret verifies that construction fails without a secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "tablon.app")
	assert.Error(t, err)
}
