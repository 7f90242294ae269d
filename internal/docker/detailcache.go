package docker

import (
	"context"
	"sync"
)

// DetailFetcher is the subset of Client the detail cache needs. Split out so
// tests can count fetches without a real engine.
type DetailFetcher interface {
	ContainerEnv(ctx context.Context, name string) ([]string, error)
	InspectContainer(ctx context.Context, name string) (string, error)
	TopContainer(ctx context.Context, name string) (string, error)
}

// DetailCache memoizes the expensive per-container detail queries backing the
// environment, inspection and process-table tabs. Each value is computed at
// most once between explicit full refreshes; switching tabs or containers
// reuses the cached value. Failures are not cached, so the next tab view
// retries.
type DetailCache struct {
	fetcher DetailFetcher

	mu      sync.Mutex
	env     map[string][]string
	inspect map[string]string
	top     map[string]string
}

// NewDetailCache returns an empty detail cache over the given fetcher.
func NewDetailCache(fetcher DetailFetcher) *DetailCache {
	c := &DetailCache{fetcher: fetcher}
	c.reset()
	return c
}

func (c *DetailCache) reset() {
	c.env = make(map[string][]string)
	c.inspect = make(map[string]string)
	c.top = make(map[string]string)
}

// Env returns the container's environment, fetching it on first use.
func (c *DetailCache) Env(ctx context.Context, name string) ([]string, error) {
	if v, ok := c.CachedEnv(name); ok {
		return v, nil
	}
	v, err := c.fetcher.ContainerEnv(ctx, name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.env[name] = v
	c.mu.Unlock()
	return v, nil
}

// Inspect returns the container's full inspection, fetching it on first use.
func (c *DetailCache) Inspect(ctx context.Context, name string) (string, error) {
	if v, ok := c.CachedInspect(name); ok {
		return v, nil
	}
	v, err := c.fetcher.InspectContainer(ctx, name)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.inspect[name] = v
	c.mu.Unlock()
	return v, nil
}

// Top returns the container's process table, fetching it on first use.
func (c *DetailCache) Top(ctx context.Context, name string) (string, error) {
	if v, ok := c.CachedTop(name); ok {
		return v, nil
	}
	v, err := c.fetcher.TopContainer(ctx, name)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.top[name] = v
	c.mu.Unlock()
	return v, nil
}

// CachedEnv peeks at the cached environment without fetching.
func (c *DetailCache) CachedEnv(name string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.env[name]
	return v, ok
}

// CachedInspect peeks at the cached inspection without fetching.
func (c *DetailCache) CachedInspect(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.inspect[name]
	return v, ok
}

// CachedTop peeks at the cached process table without fetching.
func (c *DetailCache) CachedTop(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.top[name]
	return v, ok
}

// InvalidateAll drops every cached detail. Called on explicit full refresh,
// never by the periodic light poll.
func (c *DetailCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}
