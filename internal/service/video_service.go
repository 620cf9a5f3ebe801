package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"clipstream/internal/cache"
	"clipstream/internal/models"
	"clipstream/internal/observability"
	"clipstream/internal/repository"
	"clipstream/internal/storage"

	"gorm.io/gorm"
)

// FileUpload is a multipart file handed down from the HTTP layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	store     storage.ObjectStore
	logger    *observability.StructuredLogger
}

type PublishVideoInput struct {
	OwnerID     uint
	Title       string
	Description string
	Duration    float64
	VideoFile   *FileUpload
	Thumbnail   *FileUpload
}

type ListVideosInput struct {
	Query    string
	OwnerID  uint
	SortBy   string
	SortDesc bool
	Page     models.PageRequest
	ViewerID uint
}

type UpdateVideoInput struct {
	VideoID     uint
	UserID      uint
	Title       string
	Description string
	Thumbnail   *FileUpload
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	store storage.ObjectStore,
) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		store:     store,
		logger:    observability.NewStructuredLogger(),
	}
}

// Publish uploads both media files to the object store and then creates
// the video row unpublished. If the row insert fails, the uploaded
// objects are deleted again (compensating saga).
func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewBadRequestError("Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewBadRequestError("Description is required")
	}
	if in.VideoFile == nil {
		return nil, models.NewBadRequestError("Video file is required")
	}
	if in.Thumbnail == nil {
		return nil, models.NewBadRequestError("Thumbnail is required")
	}

	videoRef, err := s.store.Put(ctx, storage.ObjectKey("videos", in.VideoFile.Filename),
		in.VideoFile.Reader, in.VideoFile.Size, in.VideoFile.ContentType)
	if err != nil {
		return nil, err
	}

	thumbRef, err := s.store.Put(ctx, storage.ObjectKey("thumbnails", in.Thumbnail.Filename),
		in.Thumbnail.Reader, in.Thumbnail.Size, in.Thumbnail.ContentType)
	if err != nil {
		storage.CleanupUploads(ctx, s.store, videoRef)
		return nil, err
	}

	video := &models.Video{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		VideoFile:   videoRef,
		Thumbnail:   thumbRef,
		Duration:    in.Duration,
		IsPublished: false,
		OwnerID:     in.OwnerID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		storage.CleanupUploads(ctx, s.store, videoRef, thumbRef)
		return nil, err
	}

	s.logger.LogServiceCall(ctx, "video", "publish", map[string]any{
		"video_id": video.ID,
		"owner_id": in.OwnerID,
	})
	return video, nil
}

// Get returns the video with aggregates for the viewer. Unpublished
// videos are visible only to their owner. A non-owner view increments the
// view counter and is recorded in the viewer's watch history.
func (s *VideoService) Get(ctx context.Context, videoID, viewerID uint) (*models.VideoFeedItem, error) {
	item, err := s.videoRepo.GetByID(ctx, videoID, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("video")
		}
		return nil, err
	}

	if !item.IsPublished && item.OwnerID != viewerID {
		return nil, models.NewForbiddenError("This video is not available")
	}

	if viewerID != item.OwnerID {
		if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
			return nil, err
		}
		item.Views++
		observability.VideoViews.Inc()
	}
	if err := s.userRepo.RecordWatchEvent(ctx, viewerID, videoID); err != nil {
		return nil, err
	}

	return item, nil
}

// List returns the published-video feed. The anonymous, unfiltered first
// page is served cache-aside with a short TTL.
func (s *VideoService) List(ctx context.Context, in ListVideosInput) (models.Page[models.VideoFeedItem], error) {
	req := in.Page.Normalize()
	observability.RecordFeedRequest("videos")

	q := repository.ListVideosQuery{
		Query:    strings.TrimSpace(in.Query),
		OwnerID:  in.OwnerID,
		SortBy:   in.SortBy,
		SortDesc: in.SortDesc,
		Limit:    req.Limit,
		Offset:   req.Offset(),
	}

	cacheable := in.ViewerID == 0 && q.Query == "" && q.OwnerID == 0 &&
		q.SortBy == "" && req.Page == models.DefaultPage && req.Limit == models.DefaultPageSize

	var page models.Page[models.VideoFeedItem]
	fetch := func() error {
		items, total, err := s.videoRepo.List(ctx, q, in.ViewerID)
		if err != nil {
			return err
		}
		page = models.NewPage(items, total, req)
		return nil
	}

	var err error
	if cacheable {
		err = cache.Aside(ctx, cache.VideoFeedFirstPage, &page, cache.VideoFeedTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return models.Page[models.VideoFeedItem]{}, err
	}
	return page, nil
}

func (s *VideoService) getOwned(ctx context.Context, videoID, userID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetRaw(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("video")
		}
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this video")
	}
	return video, nil
}

// Update replaces title and description, and optionally the thumbnail.
// The old thumbnail object is deleted only after the row update succeeds.
func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewBadRequestError("Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewBadRequestError("Description is required")
	}

	video, err := s.getOwned(ctx, in.VideoID, in.UserID)
	if err != nil {
		return nil, err
	}

	oldThumb := video.Thumbnail
	if in.Thumbnail != nil {
		newThumb, err := s.store.Put(ctx, storage.ObjectKey("thumbnails", in.Thumbnail.Filename),
			in.Thumbnail.Reader, in.Thumbnail.Size, in.Thumbnail.ContentType)
		if err != nil {
			return nil, err
		}
		video.Thumbnail = newThumb
	}

	video.Title = strings.TrimSpace(in.Title)
	video.Description = strings.TrimSpace(in.Description)

	if err := s.videoRepo.Update(ctx, video); err != nil {
		if in.Thumbnail != nil {
			storage.CleanupUploads(ctx, s.store, video.Thumbnail)
		}
		return nil, err
	}

	if in.Thumbnail != nil {
		storage.CleanupUploads(ctx, s.store, oldThumb)
	}
	return video, nil
}

// TogglePublish flips the publish flag. Owner only.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, userID uint) (bool, error) {
	if _, err := s.getOwned(ctx, videoID, userID); err != nil {
		return false, err
	}
	return s.videoRepo.TogglePublish(ctx, videoID)
}

// Delete removes the stored media objects and then the row with its
// comments and likes. Owner only.
func (s *VideoService) Delete(ctx context.Context, videoID, userID uint) error {
	video, err := s.getOwned(ctx, videoID, userID)
	if err != nil {
		return err
	}

	storage.CleanupUploads(ctx, s.store, video.VideoFile, video.Thumbnail)
	return s.videoRepo.Delete(ctx, videoID)
}
