package service

import (
	"context"
	"errors"

	"clipstream/internal/models"
	"clipstream/internal/observability"
	"clipstream/internal/repository"

	"gorm.io/gorm"
)

// EngagementService owns the like ledger: toggling likes across the three
// content kinds and the liked-videos feed.
type EngagementService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewEngagementService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *EngagementService {
	return &EngagementService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

func (s *EngagementService) targetExists(ctx context.Context, target models.LikeTarget) (bool, error) {
	switch target.Kind {
	case models.TargetVideo:
		return s.videoRepo.Exists(ctx, target.ID)
	case models.TargetComment:
		return s.commentRepo.Exists(ctx, target.ID)
	case models.TargetTweet:
		return s.tweetRepo.Exists(ctx, target.ID)
	}
	return false, nil
}

// Toggle flips the like state for (target, user) and returns the new
// state. A lost insert race against a concurrent duplicate still reports
// liked=true; both callers converge on the same single row.
func (s *EngagementService) Toggle(ctx context.Context, target models.LikeTarget, userID uint) (bool, error) {
	if !target.Kind.Valid() {
		return false, models.NewBadRequestError("Invalid like target type")
	}
	if target.ID == 0 {
		return false, models.NewBadRequestError("Invalid like target id")
	}

	exists, err := s.targetExists(ctx, target)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, models.NewNotFoundError(string(target.Kind))
	}

	existing, err := s.likeRepo.Find(ctx, target, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if existing != nil {
		if err := s.likeRepo.Delete(ctx, target, userID); err != nil {
			return false, err
		}
		observability.RecordLikeToggle(string(target.Kind), false)
		return false, nil
	}

	if _, err := s.likeRepo.Insert(ctx, target, userID); err != nil {
		return false, err
	}
	observability.RecordLikeToggle(string(target.Kind), true)
	return true, nil
}

// LikedVideos returns the viewer's liked videos, newest like first.
func (s *EngagementService) LikedVideos(ctx context.Context, userID uint, req models.PageRequest) (models.Page[models.LikedVideoItem], error) {
	req = req.Normalize()
	observability.RecordFeedRequest("liked_videos")

	items, total, err := s.likeRepo.LikedVideos(ctx, userID, req.Limit, req.Offset())
	if err != nil {
		return models.Page[models.LikedVideoItem]{}, err
	}
	return models.NewPage(items, total, req), nil
}
