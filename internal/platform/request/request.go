// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package request

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/ctxutil"
	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter and parses it as a numeric identifier.

Returns:
  - int64: The parsed identifier
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func ID(request *http.Request, name string) (int64, error) {

	raw := chi.URLParam(request, name)

	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed < 1 {
		return 0, apperr.ValidationError("Invalid " + name)
	}

	return parsed, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity extracts the authenticated user from the request context.

Returns nil if the request is not authenticated.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the user.

Returns:
  - *sec.Identity: The authenticated user
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {

	// Get the authenticated user
	identity := ctxutil.GetIdentity(request.Context())

	// If the user is not authenticated, return an error
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return identity, nil
}
