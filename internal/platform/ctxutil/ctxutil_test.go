// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tablonapp/tablon/internal/platform/ctxutil"
	"github.com/tablonapp/tablon/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that an authenticated identity can be stored in context.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()
	identity := &sec.Identity{
		ID:       123,
		Username: "rocio",
		Role:     sec.RoleAdmin,
	}

	// 1. Initially should be nil (anonymous request)
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithIdentity(ctx, identity)
	retrieved := ctxutil.GetIdentity(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, int64(123), retrieved.ID)
	assert.Equal(t, "rocio", retrieved.Username)
	assert.Equal(t, sec.RoleAdmin, retrieved.Role)
}
