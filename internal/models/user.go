package models

import "time"

// MediaRef points at an object in the media store. Key is the storage
// object name and never leaves the API.
type MediaRef struct {
	URL string `json:"url"`
	Key string `json:"-"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"not null" json:"fullName"`
	Password     string    `gorm:"not null" json:"-"`
	Avatar       MediaRef  `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CoverImage   MediaRef  `gorm:"embedded;embeddedPrefix:cover_" json:"coverImage"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the owner projection embedded in feed items. It exposes
// only what other users may see. The ID column is user_id so that the
// owner_ embedded prefix yields owner_user_id, distinct from the content
// row's owner_id foreign key.
type PublicUser struct {
	ID       uint     `gorm:"column:user_id" json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Avatar   MediaRef `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// WatchEvent records that a user watched a video. The unique index keeps
// a video at most once per user's history.
type WatchEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watch_user_video" json:"userId"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_watch_user_video" json:"videoId"`
	CreatedAt time.Time `json:"createdAt"`
}
