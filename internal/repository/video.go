package repository

import (
	"context"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"gorm.io/gorm"
)

// ListVideosQuery carries the filters for the published video listing.
type ListVideosQuery struct {
	Query    string
	OwnerID  uint
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id, viewerID uint) (*models.VideoFeedItem, error)
	GetRaw(ctx context.Context, id uint) (*models.Video, error)
	List(ctx context.Context, q ListVideosQuery, viewerID uint) ([]models.VideoFeedItem, int64, error)
	Update(ctx context.Context, video *models.Video) error
	TogglePublish(ctx context.Context, id uint) (bool, error)
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	err := r.db.WithContext(ctx).Create(video).Error
	if err == nil {
		cache.InvalidateVideoFeed(ctx)
	}
	return err
}

func (r *videoRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.VideoFeedItem, error) {
	var item models.VideoFeedItem
	err := applyVideoDetails(r.db.WithContext(ctx).Table("videos"), viewerID).
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.id = ?", id).
		Take(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetRaw loads a video row without aggregates. Used for ownership and
// existence checks before mutations.
func (r *videoRepository) GetRaw(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, q ListVideosQuery, viewerID uint) ([]models.VideoFeedItem, int64, error) {
	filtered := r.db.WithContext(ctx).Model(&models.Video{}).Where("is_published = ?", true)
	if q.Query != "" {
		like := "%" + q.Query + "%"
		filtered = filtered.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if q.OwnerID != 0 {
		filtered = filtered.Where("owner_id = ?", q.OwnerID)
	}

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	base := applyVideoDetails(r.db.WithContext(ctx).Table("videos"), viewerID).
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.is_published = ?", true)
	if q.Query != "" {
		like := "%" + q.Query + "%"
		base = base.Where("videos.title ILIKE ? OR videos.description ILIKE ?", like, like)
	}
	if q.OwnerID != 0 {
		base = base.Where("videos.owner_id = ?", q.OwnerID)
	}

	var items []models.VideoFeedItem
	err := applyListSort(base, q).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// applyListSort appends the ORDER BY clause for the requested sort column.
// Only whitelisted columns are accepted; anything else falls back to
// newest-first.
func applyListSort(db *gorm.DB, q ListVideosQuery) *gorm.DB {
	column := "videos.created_at"
	switch q.SortBy {
	case "views":
		column = "videos.views"
	case "duration":
		column = "videos.duration"
	case "title":
		column = "videos.title"
	case "created_at", "":
		column = "videos.created_at"
	default:
		return db.Order("videos.created_at DESC")
	}
	dir := "ASC"
	if q.SortDesc || q.SortBy == "" {
		dir = "DESC"
	}
	return db.Order(column + " " + dir)
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return err
	}
	cache.InvalidateVideoFeed(ctx)
	return nil
}

func (r *videoRepository) TogglePublish(ctx context.Context, id uint) (bool, error) {
	var published bool
	err := r.db.WithContext(ctx).
		Raw("UPDATE videos SET is_published = NOT is_published, updated_at = NOW() WHERE id = ? RETURNING is_published", id).
		Scan(&published).Error
	if err == nil {
		cache.InvalidateVideoFeed(ctx)
	}
	return published, err
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	// The cached feed page tolerates a stale view count for its short TTL;
	// invalidating here would thrash the cache on every view.
	return err
}

// Delete removes the video along with its comments and every like that
// references the video or those comments, in one transaction.
func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM likes WHERE comment_id IN (SELECT id FROM comments WHERE video_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM watch_events WHERE video_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
	if err == nil {
		cache.InvalidateVideoFeed(ctx)
	}
	return err
}

func (r *videoRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
