package models

import "time"

type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	VideoFile   MediaRef  `gorm:"embedded;embeddedPrefix:video_" json:"videoFile"`
	Thumbnail   MediaRef  `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `gorm:"default:0" json:"views"`
	IsPublished bool      `gorm:"default:false" json:"isPublished"`
	OwnerID     uint      `gorm:"not null;index" json:"ownerId"`
	Owner       User      `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated by feed queries, never written.
	LikesCount int  `gorm:"->" json:"likesCount"`
	Liked      bool `gorm:"->" json:"isLiked"`
}

// VideoFeedItem is a video joined with its owner's public projection.
type VideoFeedItem struct {
	Video
	OwnerInfo PublicUser `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}
