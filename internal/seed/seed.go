package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumVideos   int
	ShouldClean bool
}

// Seed populates the database with test data: users with channels, published
// videos, tweets, comments, and an engagement mesh of likes, subscriptions,
// and watch history.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d videos...", opts.NumUsers, opts.NumVideos)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{})

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	videos, err := createVideos(factory, users, opts.NumVideos)
	if err != nil {
		return fmt.Errorf("failed to create videos: %w", err)
	}
	log.Printf("✓ %d videos created", len(videos))

	tweets, err := createTweets(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create tweets: %w", err)
	}
	log.Printf("✓ %d tweets created", len(tweets))

	comments, err := createComments(factory, users, videos)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", len(comments))

	if err := createEngagement(factory, users, videos, tweets, comments); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ likes, subscriptions, and watch history created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, comments, watch_events, subscriptions, tweets, videos, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include some well-known accounts for local testing.
	if count >= 2 {
		baseUsers := []string{"demo", "test"}
		for _, username := range baseUsers {
			u := username
			user, err := factory.CreateUser(func(user *models.User) {
				user.Username = u
				user.Email = fmt.Sprintf("%s@example.com", u)
				user.FullName = fmt.Sprintf("%s account", u)
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createVideos(factory *Factory, users []*models.User, count int) ([]*models.Video, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	videos := make([]*models.Video, 0, count)

	for i := 0; i < count; i++ {
		owner := users[r.Intn(len(users))]

		video, err := factory.CreateVideo(owner, func(v *models.Video) {
			// Roughly one in eight stays a draft.
			if r.Intn(8) == 0 {
				v.IsPublished = false
			}
		})
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d videos...", i)
		}
	}

	return videos, nil
}

func createTweets(factory *Factory, users []*models.User) ([]*models.Tweet, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	tweets := make([]*models.Tweet, 0, len(users)*2)

	for _, user := range users {
		for i := 0; i < r.Intn(4); i++ {
			tweet, err := factory.CreateTweet(user)
			if err != nil {
				return nil, err
			}
			tweets = append(tweets, tweet)
		}
	}

	return tweets, nil
}

func createComments(factory *Factory, users []*models.User, videos []*models.Video) ([]*models.Comment, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	comments := make([]*models.Comment, 0, len(videos)*3)

	for _, video := range videos {
		if !video.IsPublished {
			continue
		}
		for i := 0; i < r.Intn(6); i++ {
			commenter := users[r.Intn(len(users))]
			comment, err := factory.CreateComment(commenter, video)
			if err != nil {
				return nil, err
			}
			comments = append(comments, comment)
		}
	}

	return comments, nil
}

// createEngagement wires the social mesh. Likes carry a unique index per
// (user, target), so duplicate picks are skipped rather than retried.
func createEngagement(factory *Factory, users []*models.User, videos []*models.Video, tweets []*models.Tweet, comments []*models.Comment) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, user := range users {
		// Subscriptions to a handful of other channels.
		for i := 0; i < r.Intn(5); i++ {
			channel := users[r.Intn(len(users))]
			if channel.ID == user.ID {
				continue
			}
			_ = factory.CreateSubscription(user, channel)
		}

		// Video likes and watch history.
		for i := 0; i < r.Intn(8); i++ {
			video := videos[r.Intn(len(videos))]
			if !video.IsPublished {
				continue
			}
			_ = factory.CreateWatchEvent(user, video)
			if r.Intn(2) == 0 {
				_ = factory.CreateVideoLike(user, video)
			}
		}

		// Lighter engagement on tweets and comments.
		if len(tweets) > 0 && r.Intn(3) == 0 {
			_ = factory.CreateTweetLike(user, tweets[r.Intn(len(tweets))])
		}
		if len(comments) > 0 && r.Intn(3) == 0 {
			_ = factory.CreateCommentLike(user, comments[r.Intn(len(comments))])
		}
	}

	return nil
}
