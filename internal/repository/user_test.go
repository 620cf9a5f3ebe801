package repository

import (
	"context"
	"testing"

	"clipstream/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "river", Email: "river@example.com", FullName: "River Stone", Password: "hash"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username = \$1`).
		WithArgs("river", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name"}).AddRow(1, "river", "River Stone"))

	user, err := repo.GetByUsername(ctx, "river")
	require.NoError(t, err)
	assert.Equal(t, "river", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RefreshTokenSlot(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "refresh_token"=\$1`).
		WithArgs("tok-1", sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetRefreshToken(ctx, 42, "tok-1"))

	mock.ExpectQuery(`SELECT "refresh_token" FROM "users" WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"refresh_token"}).AddRow("tok-1"))

	tok, err := repo.GetRefreshToken(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "refresh_token"=\$1`).
		WithArgs("", sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ClearRefreshToken(ctx, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RecordWatchEvent_AbsorbsReplay(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO watch_events`).
		WithArgs(3, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.RecordWatchEvent(ctx, 3, 10))

	// Rewatching the same video hits the unique index and affects no rows.
	mock.ExpectExec(`INSERT INTO watch_events`).
		WithArgs(3, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.RecordWatchEvent(ctx, 3, 10))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_WatchHistory(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "watch_events" WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT (.+) FROM "videos" JOIN watch_events ON watch_events.video_id = videos.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_user_id", "owner_username", "likes_count", "liked"}).
			AddRow(10, "clip", 5, "river", 2, false))

	items, total, err := repo.WatchHistory(ctx, 3, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, uint(5), items[0].OwnerInfo.ID)
	assert.Equal(t, "river", items[0].OwnerInfo.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
