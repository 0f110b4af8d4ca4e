// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how limit/offset navigation is requested via query
// parameters and how the resulting metadata is delivered in the API response.
// Clamping is uniform across every resource type.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 50
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultOffset is the starting row.
	DefaultOffset = 0
)

// Params holds the parsed limit and offset from a request's query string.
type Params struct {
	Limit  int
	Offset int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// NewMeta constructs pagination metadata for a response.
// Count is the number of items actually returned, not the total in storage.
func NewMeta(params Params, count int) Meta {
	return Meta{Limit: params.Limit, Offset: params.Offset, Count: count}
}

// FromRequest parses "limit" and "offset" query parameters from an HTTP request.
//
// # Clamping
//
// Absent or non-numeric values fall back to [DefaultLimit]/[DefaultOffset].
// Limit is clamped to [1, MaxLimit]; negative offsets are clamped to zero.
func FromRequest(r *http.Request) Params {
	limit := parseIntParam(r, "limit", DefaultLimit)
	offset := parseIntParam(r, "offset", DefaultOffset)

	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = DefaultOffset
	}

	return Params{Limit: limit, Offset: offset}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
