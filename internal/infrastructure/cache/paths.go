package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// PathCache tracks a generation per page path plus an epoch that moves on
// every invalidation. Listing ETags carry the epoch, so any invalidation
// changes the ETag of every listing on every path.
type PathCache struct {
	mu    sync.RWMutex
	gens  map[string]uint64
	epoch uint64
	boot  string
}

func NewPathCache() *PathCache {
	return &PathCache{
		gens: make(map[string]uint64),
		boot: strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
	}
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

func (c *PathCache) Invalidate(p string) {
	p = normalize(p)
	c.mu.Lock()
	c.gens[p]++
	c.epoch++
	c.mu.Unlock()
}

// Revalidate invalidates p on this instance right away.
func (c *PathCache) Revalidate(ctx context.Context, p string) error {
	c.Invalidate(p)
	return nil
}

func (c *PathCache) Generation(p string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[normalize(p)]
}

func (c *PathCache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// ETag is a weak validator for a listing rendered for path. variant covers
// whatever else shaped the response, such as the caller and the query.
func (c *PathCache) ETag(p, variant string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalize(p)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(variant))
	return fmt.Sprintf(`W/"%s-%d-%x"`, c.boot, c.Epoch(), h.Sum64())
}
