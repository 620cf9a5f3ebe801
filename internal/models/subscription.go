package models

import "time"

// Subscription is a subscriber → channel edge. This service only reads
// subscriptions; rows come from seeding or an external writer.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_sub_subscriber_channel" json:"subscriberId"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_sub_subscriber_channel" json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelProfile is the public view of a user's channel with subscription
// aggregates for the current viewer.
type ChannelProfile struct {
	PublicUser
	CoverImage      MediaRef `json:"coverImage"`
	SubscriberCount int64    `json:"subscriberCount"`
	SubscribedTo    int64    `json:"channelsSubscribedToCount"`
	IsSubscribed    bool     `json:"isSubscribed"`
}
