// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package comment

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/sec"
)

// fakeCommentRepository is an in-memory CommentRepository.
type fakeCommentRepository struct {
	comments map[int64]*Comment
	posts    map[int64]bool
	nextID   int64
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{
		comments: make(map[int64]*Comment),
		posts:    map[int64]bool{1: true},
		nextID:   1,
	}
}

func (f *fakeCommentRepository) Create(_ context.Context, comment *Comment) error {
	comment.ID = f.nextID
	f.nextID++
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepository) FindByID(_ context.Context, id int64) (*Comment, error) {
	if comment, ok := f.comments[id]; ok {
		clone := *comment
		return &clone, nil
	}
	return nil, apperr.NotFound("Comment not found")
}

func (f *fakeCommentRepository) ListByPost(_ context.Context, postID int64) ([]Comment, error) {
	comments := make([]Comment, 0)
	for _, comment := range f.comments {
		if comment.PostID == postID {
			comments = append(comments, *comment)
		}
	}
	return comments, nil
}

func (f *fakeCommentRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return apperr.NotFound("Comment not found")
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepository) PostExists(_ context.Context, postID int64) (bool, error) {
	return f.posts[postID], nil
}

func member(id int64) *sec.Identity {
	return &sec.Identity{ID: id, Username: "member", Role: sec.RoleUser}
}

/*
TestService_Create covers trimming, the minimum length, and post existence.
*/
func TestService_Create(t *testing.T) {
	t.Run("trims_content", func(t *testing.T) {
		service := NewService(newFakeCommentRepository())

		comment, err := service.Create(context.Background(), member(5), CreateInput{
			PostID:  1,
			Content: "  a solid reply  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "a solid reply", comment.Content)
	})

	t.Run("too_short_after_trim", func(t *testing.T) {
		service := NewService(newFakeCommentRepository())

		_, err := service.Create(context.Background(), member(5), CreateInput{
			PostID:  1,
			Content: "  ab  ",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	})

	t.Run("exactly_three_chars", func(t *testing.T) {
		service := NewService(newFakeCommentRepository())

		_, err := service.Create(context.Background(), member(5), CreateInput{
			PostID:  1,
			Content: "abc",
		})
		assert.NoError(t, err)
	})

	t.Run("missing_post_is_404", func(t *testing.T) {
		service := NewService(newFakeCommentRepository())

		_, err := service.Create(context.Background(), member(5), CreateInput{
			PostID:  99,
			Content: "a solid reply",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Delete walks the owner-or-staff matrix and the repeat delete.
*/
func TestService_Delete(t *testing.T) {
	actors := []struct {
		name    string
		actor   *sec.Identity
		allowed bool
	}{
		{"owner", &sec.Identity{ID: 5, Role: sec.RoleUser}, true},
		{"admin", &sec.Identity{ID: 8, Role: sec.RoleAdmin}, true},
		{"moderator", &sec.Identity{ID: 9, Role: sec.RoleModerator}, true},
		{"other_member", &sec.Identity{ID: 6, Role: sec.RoleUser}, false},
	}

	for _, tt := range actors {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(newFakeCommentRepository())
			ctx := context.Background()

			comment, err := service.Create(ctx, member(5), CreateInput{PostID: 1, Content: "a solid reply"})
			require.NoError(t, err)

			err = service.Delete(ctx, tt.actor, comment.ID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
			}
		})
	}

	t.Run("second_delete_is_404", func(t *testing.T) {
		service := NewService(newFakeCommentRepository())
		ctx := context.Background()

		comment, err := service.Create(ctx, member(5), CreateInput{PostID: 1, Content: "a solid reply"})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, member(5), comment.ID))

		err = service.Delete(ctx, member(5), comment.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})
}
