package repository

import (
	"context"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetRaw(ctx context.Context, id uint) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int, viewerID uint) ([]models.TweetFeedItem, int64, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) GetRaw(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int, viewerID uint) ([]models.TweetFeedItem, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.TweetFeedItem
	err := applyTweetDetails(r.db.WithContext(ctx).Table("tweets"), viewerID).
		Joins("JOIN users ON users.id = tweets.owner_id").
		Where("tweets.owner_id = ?", ownerID).
		Order("tweets.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	return r.db.WithContext(ctx).Save(tweet).Error
}

// Delete removes the tweet and its likes in one transaction.
func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, id).Error
	})
}

func (r *tweetRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
