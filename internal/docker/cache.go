package docker

import (
	"slices"
	"sync"
	"time"
)

// Cache holds the last-known list of each entity kind. Lists are replaced
// wholesale on every poll; the Set methods report whether the new list
// differs structurally from the previous one, which is what decides whether a
// list widget is rebuilt. Structural equality over the typed entities avoids
// the brittle formatted-string comparison the old desktop tools used.
type Cache struct {
	mu         sync.RWMutex
	containers []Container
	images     []Image
	volumes    []Volume
	networks   []Network
	updatedAt  time.Time
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// SetContainers replaces the container list and reports whether it changed.
// The comparison is order-sensitive: a reordering is a change the list widget
// must render.
func (c *Cache) SetContainers(list []Container) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Equal(c.containers, list) {
		return false
	}
	c.containers = list
	c.updatedAt = time.Now()
	return true
}

// SetImages replaces the image list and reports whether it changed.
func (c *Cache) SetImages(list []Image) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Equal(c.images, list) {
		return false
	}
	c.images = list
	c.updatedAt = time.Now()
	return true
}

// SetVolumes replaces the volume list and reports whether it changed.
func (c *Cache) SetVolumes(list []Volume) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Equal(c.volumes, list) {
		return false
	}
	c.volumes = list
	c.updatedAt = time.Now()
	return true
}

// SetNetworks replaces the network list and reports whether it changed.
func (c *Cache) SetNetworks(list []Network) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Equal(c.networks, list) {
		return false
	}
	c.networks = list
	c.updatedAt = time.Now()
	return true
}

// Containers returns the last-known container list.
func (c *Cache) Containers() []Container {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.containers)
}

// Images returns the last-known image list.
func (c *Cache) Images() []Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.images)
}

// Volumes returns the last-known volume list.
func (c *Cache) Volumes() []Volume {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.volumes)
}

// Networks returns the last-known network list.
func (c *Cache) Networks() []Network {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.networks)
}

// Len returns the current list length for one kind.
func (c *Cache) Len(kind EntityKind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch kind {
	case KindContainer:
		return len(c.containers)
	case KindImage:
		return len(c.images)
	case KindVolume:
		return len(c.volumes)
	case KindNetwork:
		return len(c.networks)
	default:
		return 0
	}
}

// Identities returns the identity of every entity of one kind, in list order.
// Used to resolve marks and to prune marks that no longer exist.
func (c *Cache) Identities(kind EntityKind) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var ids []string
	switch kind {
	case KindContainer:
		for _, e := range c.containers {
			ids = append(ids, e.Identity())
		}
	case KindImage:
		for _, e := range c.images {
			ids = append(ids, e.Identity())
		}
	case KindVolume:
		for _, e := range c.volumes {
			ids = append(ids, e.Identity())
		}
	case KindNetwork:
		for _, e := range c.networks {
			ids = append(ids, e.Identity())
		}
	}
	return ids
}

// UpdatedAt returns the time of the last accepted change.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
