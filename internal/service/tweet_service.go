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

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

type CreateTweetInput struct {
	OwnerID uint
	Content string
}

type UpdateTweetInput struct {
	TweetID uint
	UserID  uint
	Content string
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) Create(ctx context.Context, in CreateTweetInput) (*models.Tweet, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewBadRequestError("Tweet content is required")
	}

	tweet := &models.Tweet{
		Content: content,
		OwnerID: in.OwnerID,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListByOwner returns a user's tweets with like aggregates, newest first.
func (s *TweetService) ListByOwner(ctx context.Context, ownerID uint, req models.PageRequest, viewerID uint) (models.Page[models.TweetFeedItem], error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Page[models.TweetFeedItem]{}, models.NewNotFoundError("user")
		}
		return models.Page[models.TweetFeedItem]{}, err
	}

	req = req.Normalize()
	observability.RecordFeedRequest("user_tweets")

	items, total, err := s.tweetRepo.ListByOwner(ctx, ownerID, req.Limit, req.Offset(), viewerID)
	if err != nil {
		return models.Page[models.TweetFeedItem]{}, err
	}
	return models.NewPage(items, total, req), nil
}

func (s *TweetService) getOwned(ctx context.Context, tweetID, userID uint) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetRaw(ctx, tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("tweet")
		}
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this tweet")
	}
	return tweet, nil
}

func (s *TweetService) Update(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewBadRequestError("Tweet content is required")
	}

	tweet, err := s.getOwned(ctx, in.TweetID, in.UserID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// Delete removes the tweet and its likes. Owner only.
func (s *TweetService) Delete(ctx context.Context, tweetID, userID uint) error {
	if _, err := s.getOwned(ctx, tweetID, userID); err != nil {
		return err
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}
