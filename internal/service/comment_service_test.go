package service

import (
	"context"
	"testing"

	"clipstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create_TrimsContent(t *testing.T) {
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 3
		return nil
	}

	svc := NewCommentService(comments, noopVideoRepo())

	comment, err := svc.Create(context.Background(), CreateCommentInput{
		VideoID: 5,
		OwnerID: 1,
		Content: "  nice clip  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "nice clip", comment.Content)
	assert.Equal(t, uint(5), comment.VideoID)
}

func TestCommentService_Create_RejectsEmptyContent(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopVideoRepo())

	_, err := svc.Create(context.Background(), CreateCommentInput{VideoID: 5, OwnerID: 1, Content: "   "})
	assertErrorKind(t, err, models.KindBadRequest)
}

func TestCommentService_Create_UnknownVideo(t *testing.T) {
	videos := noopVideoRepo()
	videos.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }

	svc := NewCommentService(noopCommentRepo(), videos)

	_, err := svc.Create(context.Background(), CreateCommentInput{VideoID: 99, OwnerID: 1, Content: "hi"})
	assertErrorKind(t, err, models.KindNotFound)
}

func TestCommentService_ListByVideo_UnknownVideo(t *testing.T) {
	videos := noopVideoRepo()
	videos.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }

	svc := NewCommentService(noopCommentRepo(), videos)

	_, err := svc.ListByVideo(context.Background(), 99, models.PageRequest{}, 0)
	assertErrorKind(t, err, models.KindNotFound)
}

func TestCommentService_ListByVideo_PageMath(t *testing.T) {
	comments := noopCommentRepo()
	comments.listByVideoFn = func(_ context.Context, videoID uint, limit, offset int, viewerID uint) ([]models.CommentFeedItem, int64, error) {
		assert.Equal(t, uint(5), videoID)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 10, offset)
		assert.Equal(t, uint(2), viewerID)
		return make([]models.CommentFeedItem, 10), 25, nil
	}

	svc := NewCommentService(comments, noopVideoRepo())

	page, err := svc.ListByVideo(context.Background(), 5, models.PageRequest{Page: 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
}

func TestCommentService_Update_OwnerOnly(t *testing.T) {
	comments := noopCommentRepo()
	comments.getRawFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, OwnerID: 1, Content: "old"}, nil
	}

	svc := NewCommentService(comments, noopVideoRepo())

	_, err := svc.Update(context.Background(), UpdateCommentInput{CommentID: 3, UserID: 2, Content: "new"})
	assertErrorKind(t, err, models.KindForbidden)

	comment, err := svc.Update(context.Background(), UpdateCommentInput{CommentID: 3, UserID: 1, Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", comment.Content)
}

func TestCommentService_Delete_OwnerOnly(t *testing.T) {
	comments := noopCommentRepo()
	comments.getRawFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, OwnerID: 1}, nil
	}
	deleted := false
	comments.deleteFn = func(_ context.Context, id uint) error {
		deleted = true
		assert.Equal(t, uint(3), id)
		return nil
	}

	svc := NewCommentService(comments, noopVideoRepo())

	err := svc.Delete(context.Background(), 3, 2)
	assertErrorKind(t, err, models.KindForbidden)
	assert.False(t, deleted)

	require.NoError(t, svc.Delete(context.Background(), 3, 1))
	assert.True(t, deleted)
}
