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

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreFromClient(client), mr
}

func TestGetOrRenderCachesFirstRendering(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	renders := 0
	render := func() ([]byte, error) {
		renders++
		return []byte("page one"), nil
	}

	got, err := store.GetOrRender(ctx, HomeKey, HomeTTL, render)
	require.NoError(t, err)
	assert.Equal(t, "page one", string(got))

	// Second call within the TTL serves the cached bytes, even if the
	// underlying data changed.
	got, err = store.GetOrRender(ctx, HomeKey, HomeTTL, func() ([]byte, error) {
		return []byte("page two"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "page one", string(got))
	assert.Equal(t, 1, renders)
}

func TestGetOrRenderRecomputesAfterTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrRender(ctx, HomeKey, HomeTTL, func() ([]byte, error) {
		return []byte("stale"), nil
	})
	require.NoError(t, err)

	mr.FastForward(HomeTTL + time.Second)

	got, err := store.GetOrRender(ctx, HomeKey, HomeTTL, func() ([]byte, error) {
		return []byte("fresh"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestClearInvalidatesImmediately(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrRender(ctx, HomeKey, HomeTTL, func() ([]byte, error) {
		return []byte("before clear"), nil
	})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	got, err := store.GetOrRender(ctx, HomeKey, HomeTTL, func() ([]byte, error) {
		return []byte("after clear"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after clear", string(got))
}

func TestStoreFailureFallsBackToRendering(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// Kill the backing store; requests must still be served.
	mr.Close()

	got, err := store.GetOrRender(ctx, HomeKey, HomeTTL, func() ([]byte, error) {
		return []byte("direct"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", string(got))
}

func TestNilClientRendersThrough(t *testing.T) {
	store := NewRedisStore("")
	ctx := context.Background()

	got, err := store.GetOrRender(ctx, HomeKey, HomeTTL, func() ([]byte, error) {
		return []byte("no cache"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "no cache", string(got))
	assert.NoError(t, store.Clear(ctx))
}

func TestRenderErrorSurfaces(t *testing.T) {
	store, _ := newTestStore(t)

	wantErr := errors.New("boom")
	_, err := store.GetOrRender(context.Background(), HomeKey, HomeTTL, func() ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}
