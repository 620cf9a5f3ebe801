package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"clipstream/internal/models"
	"clipstream/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	findFn        func(context.Context, models.LikeTarget, uint) (*models.Like, error)
	insertFn      func(context.Context, models.LikeTarget, uint) (bool, error)
	deleteFn      func(context.Context, models.LikeTarget, uint) error
	likedVideosFn func(context.Context, uint, int, int) ([]models.LikedVideoItem, int64, error)
}

func (s *likeRepoStub) Find(ctx context.Context, target models.LikeTarget, userID uint) (*models.Like, error) {
	return s.findFn(ctx, target, userID)
}
func (s *likeRepoStub) Insert(ctx context.Context, target models.LikeTarget, userID uint) (bool, error) {
	return s.insertFn(ctx, target, userID)
}
func (s *likeRepoStub) Delete(ctx context.Context, target models.LikeTarget, userID uint) error {
	return s.deleteFn(ctx, target, userID)
}
func (s *likeRepoStub) LikedVideos(ctx context.Context, userID uint, limit, offset int) ([]models.LikedVideoItem, int64, error) {
	return s.likedVideosFn(ctx, userID, limit, offset)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		findFn: func(_ context.Context, _ models.LikeTarget, _ uint) (*models.Like, error) {
			return nil, gorm.ErrRecordNotFound
		},
		insertFn: func(_ context.Context, _ models.LikeTarget, _ uint) (bool, error) { return true, nil },
		deleteFn: func(_ context.Context, _ models.LikeTarget, _ uint) error { return nil },
		likedVideosFn: func(_ context.Context, _ uint, _, _ int) ([]models.LikedVideoItem, int64, error) {
			return nil, 0, nil
		},
	}
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	createFn         func(context.Context, *models.Video) error
	getByIDFn        func(context.Context, uint, uint) (*models.VideoFeedItem, error)
	getRawFn         func(context.Context, uint) (*models.Video, error)
	listFn           func(context.Context, repository.ListVideosQuery, uint) ([]models.VideoFeedItem, int64, error)
	updateFn         func(context.Context, *models.Video) error
	togglePublishFn  func(context.Context, uint) (bool, error)
	incrementViewsFn func(context.Context, uint) error
	deleteFn         func(context.Context, uint) error
	existsFn         func(context.Context, uint) (bool, error)
}

func (s *videoRepoStub) Create(ctx context.Context, v *models.Video) error { return s.createFn(ctx, v) }
func (s *videoRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.VideoFeedItem, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *videoRepoStub) GetRaw(ctx context.Context, id uint) (*models.Video, error) {
	return s.getRawFn(ctx, id)
}
func (s *videoRepoStub) List(ctx context.Context, q repository.ListVideosQuery, viewerID uint) ([]models.VideoFeedItem, int64, error) {
	return s.listFn(ctx, q, viewerID)
}
func (s *videoRepoStub) Update(ctx context.Context, v *models.Video) error { return s.updateFn(ctx, v) }
func (s *videoRepoStub) TogglePublish(ctx context.Context, id uint) (bool, error) {
	return s.togglePublishFn(ctx, id)
}
func (s *videoRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *videoRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn: func(_ context.Context, _ *models.Video) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.VideoFeedItem, error) {
			return &models.VideoFeedItem{}, nil
		},
		getRawFn: func(_ context.Context, _ uint) (*models.Video, error) { return &models.Video{}, nil },
		listFn: func(_ context.Context, _ repository.ListVideosQuery, _ uint) ([]models.VideoFeedItem, int64, error) {
			return nil, 0, nil
		},
		updateFn:         func(_ context.Context, _ *models.Video) error { return nil },
		togglePublishFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		existsFn:         func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getRawFn      func(context.Context, uint) (*models.Comment, error)
	listByVideoFn func(context.Context, uint, int, int, uint) ([]models.CommentFeedItem, int64, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
	existsFn      func(context.Context, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetRaw(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getRawFn(ctx, id)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, videoID uint, limit, offset int, viewerID uint) ([]models.CommentFeedItem, int64, error) {
	return s.listByVideoFn(ctx, videoID, limit, offset, viewerID)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *commentRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getRawFn: func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByVideoFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]models.CommentFeedItem, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		existsFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn      func(context.Context, *models.Tweet) error
	getRawFn      func(context.Context, uint) (*models.Tweet, error)
	listByOwnerFn func(context.Context, uint, int, int, uint) ([]models.TweetFeedItem, int64, error)
	updateFn      func(context.Context, *models.Tweet) error
	deleteFn      func(context.Context, uint) error
	existsFn      func(context.Context, uint) (bool, error)
}

func (s *tweetRepoStub) Create(ctx context.Context, tw *models.Tweet) error {
	return s.createFn(ctx, tw)
}
func (s *tweetRepoStub) GetRaw(ctx context.Context, id uint) (*models.Tweet, error) {
	return s.getRawFn(ctx, id)
}
func (s *tweetRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit, offset int, viewerID uint) ([]models.TweetFeedItem, int64, error) {
	return s.listByOwnerFn(ctx, ownerID, limit, offset, viewerID)
}
func (s *tweetRepoStub) Update(ctx context.Context, tw *models.Tweet) error {
	return s.updateFn(ctx, tw)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *tweetRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		getRawFn: func(_ context.Context, _ uint) (*models.Tweet, error) { return &models.Tweet{}, nil },
		listByOwnerFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]models.TweetFeedItem, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		existsFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	updateFn           func(context.Context, *models.User) error
	getRefreshFn       func(context.Context, uint) (string, error)
	setRefreshFn       func(context.Context, uint, string) error
	clearRefreshFn     func(context.Context, uint) error
	recordWatchEventFn func(context.Context, uint, uint) error
	watchHistoryFn     func(context.Context, uint, int, int) ([]models.VideoFeedItem, int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) GetRefreshToken(ctx context.Context, userID uint) (string, error) {
	return s.getRefreshFn(ctx, userID)
}
func (s *userRepoStub) SetRefreshToken(ctx context.Context, userID uint, token string) error {
	return s.setRefreshFn(ctx, userID, token)
}
func (s *userRepoStub) ClearRefreshToken(ctx context.Context, userID uint) error {
	return s.clearRefreshFn(ctx, userID)
}
func (s *userRepoStub) RecordWatchEvent(ctx context.Context, userID, videoID uint) error {
	return s.recordWatchEventFn(ctx, userID, videoID)
}
func (s *userRepoStub) WatchHistory(ctx context.Context, userID uint, limit, offset int) ([]models.VideoFeedItem, int64, error) {
	return s.watchHistoryFn(ctx, userID, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		getRefreshFn:    func(_ context.Context, _ uint) (string, error) { return "", nil },
		setRefreshFn:    func(_ context.Context, _ uint, _ string) error { return nil },
		clearRefreshFn:  func(_ context.Context, _ uint) error { return nil },
		recordWatchEventFn: func(_ context.Context, _, _ uint) error {
			return nil
		},
		watchHistoryFn: func(_ context.Context, _ uint, _, _ int) ([]models.VideoFeedItem, int64, error) {
			return nil, 0, nil
		},
	}
}

// subRepoStub is a stub for repository.SubscriptionRepository.
type subRepoStub struct {
	countSubscribersFn  func(context.Context, uint) (int64, error)
	countSubscribedToFn func(context.Context, uint) (int64, error)
	isSubscribedFn      func(context.Context, uint, uint) (bool, error)
}

func (s *subRepoStub) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	return s.countSubscribersFn(ctx, channelID)
}
func (s *subRepoStub) CountSubscribedTo(ctx context.Context, userID uint) (int64, error) {
	return s.countSubscribedToFn(ctx, userID)
}
func (s *subRepoStub) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.isSubscribedFn(ctx, subscriberID, channelID)
}

func noopSubRepo() *subRepoStub {
	return &subRepoStub{
		countSubscribersFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countSubscribedToFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		isSubscribedFn:      func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// objectStoreStub records puts and deletes for saga assertions.
type objectStoreStub struct {
	putFn    func(context.Context, string, io.Reader, int64, string) (models.MediaRef, error)
	deleteFn func(context.Context, string) error

	puts    []string
	deletes []string
}

func (s *objectStoreStub) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (models.MediaRef, error) {
	s.puts = append(s.puts, key)
	if s.putFn != nil {
		return s.putFn(ctx, key, r, size, contentType)
	}
	return models.MediaRef{URL: "http://store/" + key, Key: key}, nil
}

func (s *objectStoreStub) Delete(ctx context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	if s.deleteFn != nil {
		return s.deleteFn(ctx, key)
	}
	return nil
}

func assertErrorKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind)
}
