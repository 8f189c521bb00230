package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedDoc struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	prev := client
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })

	return mr
}

func TestAsideMissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedDoc) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Text = "hello"
			return nil
		}
	}

	var first cachedDoc
	require.NoError(t, Aside(ctx, PostKey(1), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "hello", first.Text)

	var second cachedDoc
	require.NoError(t, Aside(ctx, PostKey(1), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must be served from cache")
	assert.Equal(t, first, second)
}

func TestInvalidatePostDropsPostAndFeed(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(2), cachedDoc{ID: 2}, PostTTL))
	require.NoError(t, SetJSON(ctx, FeedKey(), []cachedDoc{{ID: 2}}, FeedTTL))

	InvalidatePost(ctx, 2)

	assert.False(t, mr.Exists(PostKey(2)))
	assert.False(t, mr.Exists(FeedKey()))
}

func TestAsideExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var doc cachedDoc
	fetch := func() error {
		fetches++
		doc.ID = 3
		return nil
	}

	require.NoError(t, Aside(ctx, PostKey(3), &doc, time.Second, fetch))
	mr.FastForward(2 * time.Second)
	require.NoError(t, Aside(ctx, PostKey(3), &doc, time.Second, fetch))

	assert.Equal(t, 2, fetches, "expired entry must be refetched")
}

func TestNilClientIsNoop(t *testing.T) {
	prev := client
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })

	ctx := context.Background()
	found, err := GetJSON(ctx, "anything", &cachedDoc{})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "anything", cachedDoc{}, time.Minute))

	fetched := false
	var doc cachedDoc
	require.NoError(t, Aside(ctx, "anything", &doc, time.Minute, func() error {
		fetched = true
		return nil
	}))
	assert.True(t, fetched)
}
