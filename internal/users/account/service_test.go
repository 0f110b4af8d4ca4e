// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package account

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/users/auth"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// fakeDirectory is an in-memory DirectoryRepository recording call arguments.
type fakeDirectory struct {
	members     []Member
	posters     []TopPoster
	searchQuery string
	searchLimit int
	topCalls    int
}

func (f *fakeDirectory) List(_ context.Context, params pagination.Params) ([]Member, error) {
	start := params.Offset
	if start > len(f.members) {
		return []Member{}, nil
	}
	end := start + params.Limit
	if end > len(f.members) {
		end = len(f.members)
	}
	return f.members[start:end], nil
}

func (f *fakeDirectory) FindByID(_ context.Context, id int64) (*Member, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			return &f.members[i], nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (f *fakeDirectory) Search(_ context.Context, query string, limit int) ([]Member, error) {
	f.searchQuery = query
	f.searchLimit = limit
	return f.members, nil
}

func (f *fakeDirectory) TopPosters(_ context.Context, limit int) ([]TopPoster, error) {
	f.topCalls++
	if limit < len(f.posters) {
		return f.posters[:limit], nil
	}
	return f.posters, nil
}

type fakeStats struct{}

func (fakeStats) Stats(_ context.Context, _ int64) (*auth.Stats, error) {
	return &auth.Stats{TotalPosts: 3, TotalComments: 7, BoardsParticipated: 2}, nil
}

/*
TestService_Search verifies trimming, the minimum length rule, and the cap.
*/
func TestService_Search(t *testing.T) {
	t.Run("trims_and_caps", func(t *testing.T) {
		directory := &fakeDirectory{}
		service := NewService(directory, fakeStats{}, nil)

		_, query, err := service.Search(context.Background(), "  ramona  ")
		require.NoError(t, err)
		assert.Equal(t, "ramona", query)
		assert.Equal(t, "ramona", directory.searchQuery)
		assert.Equal(t, 20, directory.searchLimit)
	})

	rejected := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"single_char", "a"},
		{"whitespace_padding_only", "  a  "},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(&fakeDirectory{}, fakeStats{}, nil)

			_, _, err := service.Search(context.Background(), tt.query)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
		})
	}
}

/*
TestService_Get returns the member together with activity stats.
*/
func TestService_Get(t *testing.T) {
	directory := &fakeDirectory{members: []Member{{ID: 1, Username: "ramona"}}}
	service := NewService(directory, fakeStats{}, nil)

	member, stats, err := service.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ramona", member.Username)
	assert.EqualValues(t, 3, stats.TotalPosts)

	_, _, err = service.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

/*
TestService_TopPosters degrades gracefully when no cache is configured.
*/
func TestService_TopPosters(t *testing.T) {
	directory := &fakeDirectory{posters: []TopPoster{
		{ID: 1, Username: "ramona", PostCount: 12},
		{ID: 2, Username: "quintin", PostCount: 4},
	}}
	service := NewService(directory, fakeStats{}, nil)

	posters, err := service.TopPosters(context.Background())
	require.NoError(t, err)
	require.Len(t, posters, 2)
	assert.Equal(t, "ramona", posters[0].Username)

	// Without a cache every call recomputes.
	_, err = service.TopPosters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, directory.topCalls)
}
