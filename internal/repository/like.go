package repository

import (
	"context"
	"fmt"

	"clipstream/internal/cache"
	"clipstream/internal/models"
	"clipstream/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for the like ledger.
type LikeRepository interface {
	Find(ctx context.Context, target models.LikeTarget, userID uint) (*models.Like, error)
	Insert(ctx context.Context, target models.LikeTarget, userID uint) (bool, error)
	Delete(ctx context.Context, target models.LikeTarget, userID uint) error
	LikedVideos(ctx context.Context, userID uint, limit, offset int) ([]models.LikedVideoItem, int64, error)
}

type likeRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, logger: observability.NewRepoLogger("likes")}
}

func targetColumn(kind models.TargetKind) (string, error) {
	switch kind {
	case models.TargetVideo:
		return "video_id", nil
	case models.TargetComment:
		return "comment_id", nil
	case models.TargetTweet:
		return "tweet_id", nil
	}
	return "", fmt.Errorf("unknown like target kind %q", kind)
}

func (r *likeRepository) Find(ctx context.Context, target models.LikeTarget, userID uint) (*models.Like, error) {
	column, err := targetColumn(target.Kind)
	if err != nil {
		return nil, err
	}
	var like models.Like
	err = r.db.WithContext(ctx).
		Where(column+" = ? AND liked_by_id = ?", target.ID, userID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Insert writes the like with ON CONFLICT DO NOTHING against the partial
// unique index for the target kind, so concurrent duplicates are absorbed
// atomically. The return value reports whether this call created the row.
func (r *likeRepository) Insert(ctx context.Context, target models.LikeTarget, userID uint) (bool, error) {
	column, err := targetColumn(target.Kind)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Exec(fmt.Sprintf(
		`INSERT INTO likes (%s, liked_by_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (%s, liked_by_id) WHERE %s IS NOT NULL DO NOTHING`,
		column, column, column,
	), target.ID, userID)
	if result.Error != nil {
		r.logger.LogError(ctx, result.Error, "create")
		return false, result.Error
	}

	if target.Kind == models.TargetVideo {
		cache.InvalidateVideoFeed(ctx)
	}
	r.logger.LogCreate(ctx, map[string]any{
		"target_kind": string(target.Kind),
		"target_id":   target.ID,
		"user_id":     userID,
		"inserted":    result.RowsAffected > 0,
	})
	return result.RowsAffected > 0, nil
}

// Delete hard-deletes the like row for (target, user).
func (r *likeRepository) Delete(ctx context.Context, target models.LikeTarget, userID uint) error {
	column, err := targetColumn(target.Kind)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Unscoped().
		Where(column+" = ? AND liked_by_id = ?", target.ID, userID).
		Delete(&models.Like{}).Error
	if err != nil {
		r.logger.LogError(ctx, err, "delete")
		return err
	}
	if target.Kind == models.TargetVideo {
		cache.InvalidateVideoFeed(ctx)
	}
	r.logger.LogDelete(ctx, map[string]any{
		"target_kind": string(target.Kind),
		"target_id":   target.ID,
		"user_id":     userID,
	})
	return nil
}

func (r *likeRepository) LikedVideos(ctx context.Context, userID uint, limit, offset int) ([]models.LikedVideoItem, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("liked_by_id = ? AND video_id IS NOT NULL", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// liked is trivially true on this feed; the viewer is the liker.
	selectQuery := "videos.*, " + videoOwnerColumns + ", " +
		"(SELECT COUNT(*) FROM likes agg WHERE agg.video_id = videos.id) as likes_count, " +
		"true as liked, likes.created_at as liked_at"

	var items []models.LikedVideoItem
	err := r.db.WithContext(ctx).
		Table("likes").
		Select(selectQuery).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("likes.liked_by_id = ? AND likes.video_id IS NOT NULL", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
