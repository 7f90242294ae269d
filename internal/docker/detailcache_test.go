package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetcher counts how many times each detail query actually runs.
type countingFetcher struct {
	envCalls, inspectCalls, topCalls int
	envErr                           error
}

func (f *countingFetcher) ContainerEnv(context.Context, string) ([]string, error) {
	f.envCalls++
	if f.envErr != nil {
		return nil, f.envErr
	}
	return []string{"A=1"}, nil
}

func (f *countingFetcher) InspectContainer(context.Context, string) (string, error) {
	f.inspectCalls++
	return "{}", nil
}

func (f *countingFetcher) TopContainer(context.Context, string) (string, error) {
	f.topCalls++
	return "PID USER", nil
}

func TestDetailCacheMemoizes(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewDetailCache(fetcher)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		env, err := cache.Env(ctx, "web")
		require.NoError(t, err)
		assert.Equal(t, []string{"A=1"}, env)
	}
	assert.Equal(t, 1, fetcher.envCalls, "env computed at most once between refreshes")

	_, err := cache.Inspect(ctx, "web")
	require.NoError(t, err)
	_, err = cache.Inspect(ctx, "web")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.inspectCalls)

	_, err = cache.Top(ctx, "web")
	require.NoError(t, err)
	_, err = cache.Top(ctx, "web")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.topCalls)
}

func TestDetailCachePerContainerKeys(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewDetailCache(fetcher)
	ctx := context.Background()

	_, err := cache.Env(ctx, "web")
	require.NoError(t, err)
	_, err = cache.Env(ctx, "db")
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.envCalls, "distinct containers fetch separately")
}

func TestDetailCacheCachedPeeks(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewDetailCache(fetcher)

	_, ok := cache.CachedEnv("web")
	assert.False(t, ok)

	_, err := cache.Env(context.Background(), "web")
	require.NoError(t, err)

	env, ok := cache.CachedEnv("web")
	assert.True(t, ok)
	assert.Equal(t, []string{"A=1"}, env)
	assert.Equal(t, 1, fetcher.envCalls, "peeking never fetches")
}

func TestDetailCacheInvalidateAll(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewDetailCache(fetcher)
	ctx := context.Background()

	_, _ = cache.Env(ctx, "web")
	_, _ = cache.Inspect(ctx, "web")
	_, _ = cache.Top(ctx, "web")

	cache.InvalidateAll()

	_, _ = cache.Env(ctx, "web")
	_, _ = cache.Inspect(ctx, "web")
	_, _ = cache.Top(ctx, "web")

	assert.Equal(t, 2, fetcher.envCalls)
	assert.Equal(t, 2, fetcher.inspectCalls)
	assert.Equal(t, 2, fetcher.topCalls)
}

func TestDetailCacheDoesNotCacheFailures(t *testing.T) {
	fetcher := &countingFetcher{envErr: errors.New("container not running")}
	cache := NewDetailCache(fetcher)
	ctx := context.Background()

	_, err := cache.Env(ctx, "web")
	require.Error(t, err)

	fetcher.envErr = nil
	env, err := cache.Env(ctx, "web")
	require.NoError(t, err)
	assert.Equal(t, []string{"A=1"}, env)
	assert.Equal(t, 2, fetcher.envCalls, "failed fetch retried on next view")
}
