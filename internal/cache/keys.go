package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	VideoFeedFirstPage   = "videos:feed:first"
	ChannelProfilePrefix = "channel:%s:viewer:%d"
)

const (
	VideoFeedTTL      = 30 * time.Second
	ChannelProfileTTL = 2 * time.Minute
)

func ChannelProfileKey(username string, viewerID uint) string {
	return fmt.Sprintf(ChannelProfilePrefix, username, viewerID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateVideoFeed(ctx context.Context) {
	Invalidate(ctx, VideoFeedFirstPage)
}
