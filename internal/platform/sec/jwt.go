// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer and the authentication middleware.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Lifetimes

const (
	// AccessTokenTTL is the duration an access token remains valid.
	AccessTokenTTL = 7 * 24 * time.Hour

	// RefreshTokenTTL is the duration a refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// TokenTypeRefresh is the 'type' claim marking a refresh token.
	// Access tokens carry no type claim.
	TokenTypeRefresh = "refresh"
)

// # Verification Errors

var (
	// ErrTokenExpired marks a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid marks a malformed, tampered, or wrongly signed token.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// TokenClaims is the payload embedded inside a signed identity token.
//
// Only the user id travels in the token; the authentication gate resolves the
// rest of the identity (username, email, role) from the credential store on
// every request, so role changes take effect without waiting out a token.
type TokenClaims struct {
	jwt.RegisteredClaims

	UserID int64 `json:"userId"`

	// Type distinguishes refresh tokens from access tokens. The gate rejects
	// refresh tokens; only POST /api/auth/refresh consumes them.
	Type string `json:"type,omitempty"`
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *TokenClaims) IsRefresh() bool {
	return c.Type == TokenTypeRefresh
}

// TokenService issues and verifies HS256-signed identity tokens.
//
// The signing secret is injected at construction and never read from ambient
// process state.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService from a shared signing secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// IssueAccessToken creates a signed access token for the given user id.
func (service *TokenService) IssueAccessToken(userID int64) (string, error) {
	return service.sign(userID, "", AccessTokenTTL)
}

// IssueRefreshToken creates a signed refresh token for the given user id.
func (service *TokenService) IssueRefreshToken(userID int64) (string, error) {
	return service.sign(userID, TokenTypeRefresh, RefreshTokenTTL)
}

func (service *TokenService) sign(userID int64, tokenType string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Type:   tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a token string.
//
// # Returns
//   - *TokenClaims on success.
//   - [ErrTokenExpired] if the token is past its expiry.
//   - [ErrTokenInvalid] for any other verification failure.
func (service *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
