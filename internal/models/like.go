package models

import "time"

// TargetKind names the kind of content a like can attach to.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// LikeTarget identifies the content a like operation applies to. The
// storage layer translates it into the matching nullable column.
type LikeTarget struct {
	Kind TargetKind
	ID   uint
}

// Like records one user liking one piece of content. Exactly one of the
// three target columns is set; the partial unique indexes enforce at most
// one like per (target, user) pair.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VideoID   *uint     `gorm:"index:idx_likes_video_user,unique,where:video_id IS NOT NULL" json:"videoId,omitempty"`
	CommentID *uint     `gorm:"index:idx_likes_comment_user,unique,where:comment_id IS NOT NULL" json:"commentId,omitempty"`
	TweetID   *uint     `gorm:"index:idx_likes_tweet_user,unique,where:tweet_id IS NOT NULL" json:"tweetId,omitempty"`
	LikedByID uint      `gorm:"not null;index:idx_likes_video_user,unique;index:idx_likes_comment_user,unique;index:idx_likes_tweet_user,unique" json:"likedById"`
	CreatedAt time.Time `json:"createdAt"`
}

// Target reconstructs the tagged union from whichever column is set.
func (l *Like) Target() LikeTarget {
	switch {
	case l.VideoID != nil:
		return LikeTarget{Kind: TargetVideo, ID: *l.VideoID}
	case l.CommentID != nil:
		return LikeTarget{Kind: TargetComment, ID: *l.CommentID}
	case l.TweetID != nil:
		return LikeTarget{Kind: TargetTweet, ID: *l.TweetID}
	}
	return LikeTarget{}
}

// LikedVideoItem is one entry in a user's liked-videos feed: the video
// plus when the viewer liked it.
type LikedVideoItem struct {
	VideoFeedItem
	LikedAt time.Time `gorm:"->" json:"likedAt"`
}
