package biz

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
)

// setupTestRedis returns a client against a local Redis, skipping the test
// when none is running.
func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis unavailable, skipping test")
	}

	client.FlushDB(ctx)
	return client
}

func TestNewQueryCacheWithNilConfig(t *testing.T) {
	cache := NewQueryCache(nil, nil)
	assert.NotNil(t, cache)
	assert.False(t, cache.config.Enabled)
	assert.Equal(t, 1*time.Hour, cache.config.TTL)
	assert.Equal(t, "chat:query:", cache.config.KeyPrefix)
}

func TestGenerateCacheKeyDeterministic(t *testing.T) {
	cache := NewQueryCache(nil, &QueryCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:chat:",
	})

	key1 := cache.generateCacheKey("who has the most blocks?")
	key2 := cache.generateCacheKey("who has the most blocks?")
	key3 := cache.generateCacheKey("who has the most steals?")

	assert.Equal(t, key1, key2)
	assert.NotEqual(t, key1, key3)
	assert.Contains(t, key1, "test:chat:")
}

func TestQueryCacheDisabledIsNoop(t *testing.T) {
	cache := NewQueryCache(nil, &QueryCacheConfig{Enabled: false})

	_, err := cache.Get(context.Background(), "q")
	assert.Error(t, err)

	assert.NoError(t, cache.Set(context.Background(), "q", &model.QueryResult{Answer: "a"}))
	assert.NoError(t, cache.Clear(context.Background()))

	stats, err := cache.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, false, stats["enabled"])
}

func TestQueryCacheRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer func() { _ = client.Close() }()

	cache := NewQueryCache(client, &QueryCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:chat:",
	})

	ctx := context.Background()
	question := "What is the average points of Luka Doncic?"
	result := &model.QueryResult{
		Answer: "Luka Doncic averages 33.7 points per game.",
		Intent: model.IntentStats,
		Sources: []model.DocumentSource{
			{DocumentID: "player:5583", DocumentName: "Luka Doncic", Kind: "player", Content: "{}", Score: 0.91},
		},
	}

	// Miss before write.
	got, err := cache.Get(ctx, question)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Set(ctx, question, result))

	got, err = cache.Get(ctx, question)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, result.Answer, got.Answer)
	assert.Equal(t, model.IntentStats, got.Intent)
	require.Len(t, got.Sources, 1)
	assert.Equal(t, "player:5583", got.Sources[0].DocumentID)
}

func TestQueryCacheClear(t *testing.T) {
	client := setupTestRedis(t)
	defer func() { _ = client.Close() }()

	cache := NewQueryCache(client, &QueryCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:chat:",
	})

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "q1", &model.QueryResult{Answer: "a1"}))
	require.NoError(t, cache.Set(ctx, "q2", &model.QueryResult{Answer: "a2"}))

	stats, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats["key_count"])

	require.NoError(t, cache.Clear(ctx))

	stats, err = cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats["key_count"])
}
