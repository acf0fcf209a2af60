package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewLRU[string, float64](2)
	require.NoError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	_, _ = c.Get("a")
	c.Add("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestNewLRU_InvalidSize(t *testing.T) {
	_, err := NewLRU[string, int](0)
	assert.Error(t, err)
}

func newTestResultCache(t *testing.T, ttl time.Duration) (*ResultCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewResultCacheWithClient(client, ttl), mr
}

func TestResultCache_SetGet(t *testing.T) {
	c, _ := newTestResultCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	key := c.Key("score", "v1", `{"candidate_skills":["go"]}`)
	_, err := c.Get(ctx, key)
	assert.True(t, errors.Is(err, ErrMiss))

	require.NoError(t, c.Set(ctx, key, []byte(`{"jobs":[]}`)))
	data, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jobs":[]}`, string(data))
}

func TestResultCache_Expires(t *testing.T) {
	c, mr := newTestResultCache(t, 30*time.Second)
	ctx := context.Background()

	key := c.Key("gaps")
	require.NoError(t, c.Set(ctx, key, []byte("x")))
	mr.FastForward(31 * time.Second)

	_, err := c.Get(ctx, key)
	assert.True(t, errors.Is(err, ErrMiss))
}

func TestResultCache_Key(t *testing.T) {
	c := NewResultCacheWithClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), time.Minute)

	k1 := c.Key("score", "a")
	assert.Equal(t, k1, c.Key("score", "a"))
	assert.NotEqual(t, k1, c.Key("score", "b"))
	assert.Len(t, k1, len("skillmatch:")+24)
}

func TestNewResultCache_InvalidURL(t *testing.T) {
	_, err := NewResultCache("not-a-url://", time.Minute)
	assert.Error(t, err)
}
