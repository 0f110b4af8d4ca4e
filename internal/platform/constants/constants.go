// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Token issuer and transport headers.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tablon-api"
	AppVersion = "1.0.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in issued tokens.
	AuthIssuer = "tablon.app"
)

// # Transport Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Uploads

const (
	// UploadModeURL accepts an externally hosted image URL on post creation.
	UploadModeURL = "url"

	// UploadModeFile accepts a multipart file stored by this process.
	UploadModeFile = "upload"

	// UploadURLPrefix is the static prefix under which stored files are exposed.
	UploadURLPrefix = "/uploads/"

	// DefaultMaxUploadSize caps a single uploaded image at 5 MiB.
	DefaultMaxUploadSize = 5 << 20
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixTopPosters = "users:top_posters"
)

// # JSON Field Identifiers

const (
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldCode       = "code"
	FieldMessage    = "message"
	FieldPagination = "pagination"
	FieldCount      = "count"
	FieldQuery      = "query"
	FieldStatus     = "status"
	FieldChecks     = "checks"
)
