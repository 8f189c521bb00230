package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%d"
	feedKey       = "feed:recent"
)

const (
	// PostTTL bounds staleness of a cached post document.
	PostTTL = 5 * time.Minute
	// FeedTTL bounds staleness of the cached public feed.
	FeedTTL = 30 * time.Second
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func FeedKey() string {
	return feedKey
}

// Invalidate removes a key; a nil client makes this a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops the cached post and the feed that embeds it.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, feedKey)
}

// InvalidateFeed drops the cached public feed.
func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, feedKey)
}
