package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playnext/internal/recommend"
)

func TestRecommendationCache_NilIsNoop(t *testing.T) {
	var c *RecommendationCache
	ctx := context.Background()

	res, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, res)

	assert.NoError(t, c.Set(ctx, "u1", recommend.Result{GeneratedAt: time.Now()}))
	assert.NoError(t, c.Invalidate(ctx, "u1"))
	assert.NoError(t, c.Close())
}

func TestRecommendationCache_NilClientIsNoop(t *testing.T) {
	c := NewRecommendationCacheWithClient(nil, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", recommend.Result{GeneratedAt: time.Now()}))
	res, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestRecommendationCache_TTL(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewRecommendationCacheWithClient(nil, 24*time.Hour)
	c.now = func() time.Time { return now }

	assert.Equal(t, 24*time.Hour, c.TTL(recommend.Result{GeneratedAt: now}))
	assert.Equal(t, 4*time.Hour, c.TTL(recommend.Result{GeneratedAt: now.Add(-20 * time.Hour)}))
	assert.True(t, c.TTL(recommend.Result{GeneratedAt: now.Add(-25*time.Hour)}) < 0)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "recs:user:abc", key("abc"))
}

func TestResultFreshAt(t *testing.T) {
	now := time.Now()
	assert.True(t, recommend.Result{GeneratedAt: now.Add(-time.Hour)}.FreshAt(now, 24*time.Hour))
	assert.False(t, recommend.Result{GeneratedAt: now.Add(-25 * time.Hour)}.FreshAt(now, 24*time.Hour))
	assert.False(t, recommend.Result{}.FreshAt(now, 24*time.Hour))
}

func TestRecommendationCache_RoundTripAgainstRedis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRecommendationCache(ctx, url, 24*time.Hour)
	require.NoError(t, err)
	defer c.Close()

	in := recommend.Result{
		Suggestions: []recommend.Suggestion{{Name: "Hades", Genre: "Roguelike", Reasoning: "fast runs"}},
		RawResponse: "raw",
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, c.Set(ctx, "it-user", in))

	out, err := c.Get(ctx, "it-user")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.Suggestions, out.Suggestions)
	assert.True(t, in.GeneratedAt.Equal(out.GeneratedAt))

	require.NoError(t, c.Invalidate(ctx, "it-user"))
	out, err = c.Get(ctx, "it-user")
	require.NoError(t, err)
	assert.Nil(t, out)
}
