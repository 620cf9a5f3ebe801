package service

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/observability"
	"clipstream/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

type CreateCommentInput struct {
	VideoID uint
	OwnerID uint
	Content string
}

type UpdateCommentInput struct {
	CommentID uint
	UserID    uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewBadRequestError("Comment content is required")
	}

	exists, err := s.videoRepo.Exists(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("video")
	}

	comment := &models.Comment{
		Content: content,
		VideoID: in.VideoID,
		OwnerID: in.OwnerID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByVideo returns a video's comments with like aggregates, newest first.
func (s *CommentService) ListByVideo(ctx context.Context, videoID uint, req models.PageRequest, viewerID uint) (models.Page[models.CommentFeedItem], error) {
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return models.Page[models.CommentFeedItem]{}, err
	}
	if !exists {
		return models.Page[models.CommentFeedItem]{}, models.NewNotFoundError("video")
	}

	req = req.Normalize()
	observability.RecordFeedRequest("video_comments")

	items, total, err := s.commentRepo.ListByVideo(ctx, videoID, req.Limit, req.Offset(), viewerID)
	if err != nil {
		return models.Page[models.CommentFeedItem]{}, err
	}
	return models.NewPage(items, total, req), nil
}

func (s *CommentService) getOwned(ctx context.Context, commentID, userID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetRaw(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("comment")
		}
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this comment")
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewBadRequestError("Comment content is required")
	}

	comment, err := s.getOwned(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the comment and its likes. Owner only.
func (s *CommentService) Delete(ctx context.Context, commentID, userID uint) error {
	if _, err := s.getOwned(ctx, commentID, userID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
