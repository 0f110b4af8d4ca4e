// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package account

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tablonapp/tablon/internal/platform/constants"
	"github.com/tablonapp/tablon/internal/platform/ctxutil"
	"github.com/tablonapp/tablon/internal/platform/validate"
	"github.com/tablonapp/tablon/internal/users/auth"
	"github.com/tablonapp/tablon/pkg/pagination"
)

const (
	// searchResultLimit caps directory search results regardless of paging.
	searchResultLimit = 20

	// topPostersLimit caps the ranking length.
	topPostersLimit = 10

	// topPostersTTL bounds ranking staleness. The ranking query joins and
	// groups the whole posts table, so it is served from cache between
	// recomputations.
	topPostersTTL = 5 * time.Minute
)

// StatsProvider aggregates a member's forum activity.
//
// Satisfied by the auth package's user repository; declared here so this
// package does not depend on a concrete storage type.
type StatsProvider interface {
	Stats(ctx context.Context, id int64) (*auth.Stats, error)
}

// Service implements the public member directory use cases.
type Service struct {
	directory DirectoryRepository
	stats     StatsProvider
	cache     *redis.Client
}

// NewService constructs a new directory [Service].
// The redis client may be nil, in which case rankings are computed per request.
func NewService(directory DirectoryRepository, stats StatsProvider, cache *redis.Client) *Service {
	return &Service{
		directory: directory,
		stats:     stats,
		cache:     cache,
	}
}

// List returns a page of members.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]Member, error) {
	return service.directory.List(ctx, params)
}

// Get returns a member's public profile with their activity statistics.
func (service *Service) Get(ctx context.Context, id int64) (*Member, *auth.Stats, error) {
	member, err := service.directory.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stats, err := service.stats.Stats(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return member, stats, nil
}

// Search matches usernames against a free-text query.
//
// # Business Rules
//   - The query is trimmed; fewer than 2 remaining characters is rejected.
//   - Results are capped at 20 regardless of pagination parameters.
func (service *Service) Search(ctx context.Context, query string) ([]Member, string, error) {
	query = strings.TrimSpace(query)

	validator := validate.New().
		Custom("q", len([]rune(query)) < 2, "Search query must be at least 2 characters")
	if err := validator.Err(); err != nil {
		return nil, "", err
	}

	members, err := service.directory.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, "", err
	}

	return members, query, nil
}

// TopPosters returns the most active members, served from the redis cache
// when a fresh ranking is available.
//
// Cache failures degrade to a direct database read; a ranking endpoint must
// never go down because the cache did.
func (service *Service) TopPosters(ctx context.Context) ([]TopPoster, error) {
	logger := ctxutil.GetLogger(ctx)

	// ── 1. Cache Lookup ───────────────────────────────────────────────────

	if service.cache != nil {
		cached, err := service.cache.Get(ctx, constants.RedisPrefixTopPosters).Result()
		if err == nil {
			var posters []TopPoster
			if err := json.Unmarshal([]byte(cached), &posters); err == nil {
				return posters, nil
			}
			// A corrupt entry falls through to recomputation.
		} else if err != redis.Nil {
			logger.WarnContext(ctx, "top_posters_cache_read_failed", slog.String("error", err.Error()))
		}
	}

	// ── 2. Recompute ──────────────────────────────────────────────────────

	posters, err := service.directory.TopPosters(ctx, topPostersLimit)
	if err != nil {
		return nil, err
	}

	// ── 3. Cache Fill ─────────────────────────────────────────────────────

	if service.cache != nil {
		if encoded, err := json.Marshal(posters); err == nil {
			if err := service.cache.Set(ctx, constants.RedisPrefixTopPosters, encoded, topPostersTTL).Err(); err != nil {
				logger.WarnContext(ctx, "top_posters_cache_write_failed", slog.String("error", err.Error()))
			}
		}
	}

	return posters, nil
}
