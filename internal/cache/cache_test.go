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

type cachedPost struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestSetAndGetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	want := cachedPost{ID: 7, Text: "hello"}
	require.NoError(t, SetJSON(ctx, PostKey(7), want, PostTTL))

	var got cachedPost
	found, err := GetJSON(ctx, PostKey(7), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestGetJSONMiss(t *testing.T) {
	setupMiniredis(t)

	var got cachedPost
	found, err := GetJSON(context.Background(), PostKey(99), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSONExpired(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedPost{ID: 1}, time.Second))
	mr.FastForward(2 * time.Second)

	var got cachedPost
	found, err := GetJSON(ctx, UserKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	t.Run("Miss Calls Fetch And Populates Cache", func(t *testing.T) {
		setupMiniredis(t)
		ctx := context.Background()

		calls := 0
		var got cachedPost
		err := Aside(ctx, PostKey(3), &got, PostTTL, func() error {
			calls++
			got = cachedPost{ID: 3, Text: "fetched"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, "fetched", got.Text)

		// Second call should be served from cache.
		var again cachedPost
		err = Aside(ctx, PostKey(3), &again, PostTTL, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, "fetched", again.Text)
	})

	t.Run("Fetch Error Propagates", func(t *testing.T) {
		setupMiniredis(t)

		var got cachedPost
		err := Aside(context.Background(), PostKey(4), &got, PostTTL, func() error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(5), cachedPost{ID: 5}, UserTTL))
	InvalidateUser(ctx, 5)

	var got cachedPost
	found, err := GetJSON(ctx, UserKey(5), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientDegradesGracefully(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.NoError(t, SetJSON(ctx, PostKey(1), cachedPost{ID: 1}, PostTTL))

	var got cachedPost
	found, err := GetJSON(ctx, PostKey(1), &got)
	assert.NoError(t, err)
	assert.False(t, found)

	// Aside falls through to fetch every time.
	calls := 0
	for i := 0; i < 2; i++ {
		err := Aside(ctx, PostKey(1), &got, PostTTL, func() error {
			calls++
			got = cachedPost{ID: 1}
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}
