package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoID   uint      `gorm:"not null;index" json:"videoId"`
	OwnerID   uint      `gorm:"not null;index" json:"ownerId"`
	Owner     User      `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated by feed queries, never written.
	LikesCount int  `gorm:"->" json:"likesCount"`
	Liked      bool `gorm:"->" json:"isLiked"`
}

// CommentFeedItem is a comment joined with its owner's public projection.
type CommentFeedItem struct {
	Comment
	OwnerInfo PublicUser `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}
