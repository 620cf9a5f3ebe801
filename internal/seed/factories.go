// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"clipstream/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
}

// SeedOptions tunes factory behavior.
type SeedOptions struct {
	// SkipBcrypt stores the plaintext demo password, for fast local seeding.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// spreadCreatedAt returns a timestamp up to MaxDays in the past.
func (f *Factory) spreadCreatedAt() time.Time {
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// BuildUser constructs a sample `models.User` without persisting it.
// Optional override functions may modify the generated user.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		FullName: gofakeit.Name(),
		Avatar: models.MediaRef{
			URL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		},
		CoverImage: models.MediaRef{
			URL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/300", gofakeit.UUID()),
		},
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists a sample `models.User`.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildVideo constructs a published `models.Video` owned by the given user
// without persisting it.
func (f *Factory) BuildVideo(owner *models.User, overrides ...func(*models.Video)) *models.Video {
	key := gofakeit.UUID()
	video := &models.Video{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		VideoFile: models.MediaRef{
			URL: fmt.Sprintf("https://media.clipstream.dev/videos/%s.mp4", key),
			Key: fmt.Sprintf("videos/%s.mp4", key),
		},
		Thumbnail: models.MediaRef{
			URL: fmt.Sprintf("https://picsum.photos/seed/%s/640/360", key),
			Key: fmt.Sprintf("thumbnails/%s.jpg", key),
		},
		Duration:    float64(gofakeit.Number(15, 1800)),
		Views:       int64(gofakeit.Number(0, 50000)),
		IsPublished: true,
		OwnerID:     owner.ID,
		CreatedAt:   f.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(video)
	}
	return video
}

// CreateVideo builds and persists a `models.Video`.
func (f *Factory) CreateVideo(owner *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	video := f.BuildVideo(owner, overrides...)
	if err := f.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// CreateTweet constructs and persists a sample `models.Tweet`.
func (f *Factory) CreateTweet(owner *models.User, overrides ...func(*models.Tweet)) (*models.Tweet, error) {
	tweet := &models.Tweet{
		Content:   gofakeit.Sentence(12),
		OwnerID:   owner.ID,
		CreatedAt: f.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(tweet)
	}

	if err := f.db.Create(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided video authored by the provided user.
func (f *Factory) CreateComment(user *models.User, video *models.Video, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		OwnerID: user.ID,
		VideoID: video.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateVideoLike persists a like from `user` on `video`.
func (f *Factory) CreateVideoLike(user *models.User, video *models.Video) error {
	like := &models.Like{
		VideoID:   &video.ID,
		LikedByID: user.ID,
	}
	return f.db.Create(like).Error
}

// CreateCommentLike persists a like from `user` on `comment`.
func (f *Factory) CreateCommentLike(user *models.User, comment *models.Comment) error {
	like := &models.Like{
		CommentID: &comment.ID,
		LikedByID: user.ID,
	}
	return f.db.Create(like).Error
}

// CreateTweetLike persists a like from `user` on `tweet`.
func (f *Factory) CreateTweetLike(user *models.User, tweet *models.Tweet) error {
	like := &models.Like{
		TweetID:   &tweet.ID,
		LikedByID: user.ID,
	}
	return f.db.Create(like).Error
}

// CreateSubscription persists a subscriber → channel edge.
func (f *Factory) CreateSubscription(subscriber, channel *models.User) error {
	sub := &models.Subscription{
		SubscriberID: subscriber.ID,
		ChannelID:    channel.ID,
	}
	return f.db.Create(sub).Error
}

// CreateWatchEvent records `user` having watched `video`.
func (f *Factory) CreateWatchEvent(user *models.User, video *models.Video) error {
	event := &models.WatchEvent{
		UserID:  user.ID,
		VideoID: video.ID,
	}
	return f.db.Create(event).Error
}
