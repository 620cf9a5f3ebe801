// Package repository provides data access layer implementations for the application.
package repository

import "gorm.io/gorm"

// Owner projection columns joined into every feed row. The owner's id is
// aliased to owner_user_id because owner_id already binds the content row's
// own foreign key column.
const (
	videoOwnerColumns = "users.id as owner_user_id, users.username as owner_username, " +
		"users.full_name as owner_full_name, users.avatar_url as owner_avatar_url"
)

// applyVideoDetails adds subqueries to fetch like counts and liked status in a single query.
func applyVideoDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "videos.*, " + videoOwnerColumns + ", " +
		"(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.video_id = videos.id AND likes.liked_by_id = ?) as liked", viewerID)
	}
	return db.Select(selectQuery + ", false as liked")
}

// applyCommentDetails is the comment analogue of applyVideoDetails.
func applyCommentDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "comments.*, " + videoOwnerColumns + ", " +
		"(SELECT COUNT(*) FROM likes WHERE likes.comment_id = comments.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.comment_id = comments.id AND likes.liked_by_id = ?) as liked", viewerID)
	}
	return db.Select(selectQuery + ", false as liked")
}

// applyTweetDetails is the tweet analogue of applyVideoDetails.
func applyTweetDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "tweets.*, " + videoOwnerColumns + ", " +
		"(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.tweet_id = tweets.id AND likes.liked_by_id = ?) as liked", viewerID)
	}
	return db.Select(selectQuery + ", false as liked")
}
