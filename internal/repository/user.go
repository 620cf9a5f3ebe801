package repository

import (
	"context"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations. It also
// carries the refresh token slot and the user's watch history.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	GetRefreshToken(ctx context.Context, userID uint) (string, error)
	SetRefreshToken(ctx context.Context, userID uint, token string) error
	ClearRefreshToken(ctx context.Context, userID uint) error

	RecordWatchEvent(ctx context.Context, userID, videoID uint) error
	WatchHistory(ctx context.Context, userID uint, limit, offset int) ([]models.VideoFeedItem, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID loads the full user row. Never cached: the row carries fields
// that do not survive JSON serialization (password hash, refresh slot,
// storage keys) and callers Save it back.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) GetRefreshToken(ctx context.Context, userID uint) (string, error) {
	var token string
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("refresh_token", &token).Error
	return token, err
}

func (r *userRepository) SetRefreshToken(ctx context.Context, userID uint, token string) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error
	return err
}

func (r *userRepository) ClearRefreshToken(ctx context.Context, userID uint) error {
	return r.SetRefreshToken(ctx, userID, "")
}

func (r *userRepository) RecordWatchEvent(ctx context.Context, userID, videoID uint) error {
	// The unique index keeps each video at most once in a user's history;
	// replays are absorbed, not errors.
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO watch_events (user_id, video_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, video_id) DO NOTHING`,
		userID, videoID,
	).Error
}

func (r *userRepository) WatchHistory(ctx context.Context, userID uint, limit, offset int) ([]models.VideoFeedItem, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.WatchEvent{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.VideoFeedItem
	err := applyVideoDetails(r.db.WithContext(ctx).Table("videos"), userID).
		Joins("JOIN watch_events ON watch_events.video_id = videos.id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_events.user_id = ?", userID).
		Order("watch_events.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
