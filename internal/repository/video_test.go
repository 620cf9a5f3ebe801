package repository

import (
	"context"
	"testing"

	"clipstream/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_GetByID_ComputesAggregates(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT videos\.\*, users\.id as owner_user_id(.+)EXISTS\(SELECT 1 FROM likes(.+)FROM "videos" JOIN users ON users.id = videos.owner_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "owner_user_id", "owner_username", "likes_count", "liked"}).
			AddRow(1, 2, "clip", 2, "river", 3, true))

	item, err := repo.GetByID(ctx, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, item.LikesCount)
	assert.True(t, item.Liked)
	assert.Equal(t, uint(2), item.OwnerID)
	// The owner projection fills from its own aliased columns, not the
	// video's owner_id foreign key.
	assert.Equal(t, uint(2), item.OwnerInfo.ID)
	assert.Equal(t, "river", item.OwnerInfo.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByID_AnonymousNeverLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	// Anonymous viewers get a constant false, no EXISTS subquery.
	mock.ExpectQuery(`SELECT videos\.\*, users\.id as owner_user_id(.+)false as liked FROM "videos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "liked"}).AddRow(1, "clip", false))

	item, err := repo.GetByID(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, item.Liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_List_FiltersUnpublished(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "videos" WHERE is_published = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(`FROM "videos" JOIN users ON users.id = videos.owner_id WHERE videos.is_published = \$1(.+)ORDER BY videos.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(6, "six").AddRow(7, "seven"))

	items, total, err := repo.List(ctx, ListVideosQuery{Limit: 5, Offset: 5}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_TogglePublish(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`UPDATE videos SET is_published = NOT is_published`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"is_published"}).AddRow(true))

	published, err := repo.TogglePublish(ctx, 4)
	require.NoError(t, err)
	assert.True(t, published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_IncrementViews(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "videos" SET "views"=views \+ 1 WHERE id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.IncrementViews(ctx, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Delete_CascadesInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes WHERE comment_id IN \(SELECT id FROM comments WHERE video_id = \$1\)`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "likes" WHERE video_id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "comments" WHERE video_id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM watch_events WHERE video_id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`DELETE FROM "videos" WHERE "videos"."id" = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(ctx, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "videos" WHERE id = \$1`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.Exists(ctx, 4)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	video := &models.Video{Title: "clip", Description: "desc", OwnerID: 2}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "videos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(ctx, video))
	assert.Equal(t, uint(1), video.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
