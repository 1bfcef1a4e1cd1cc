package project

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
)

// cachedProject wraps a project with the schema version it was cached under
type cachedProject struct {
	Version  string
	Project  *domain.Project
	CachedAt time.Time
}

// projectCache is a read-through LRU for GetProject. Writers invalidate.
type projectCache struct {
	lru *expirable.LRU[uint64, *cachedProject]
}

func newProjectCache(size int, ttl time.Duration) *projectCache {
	return &projectCache{
		lru: expirable.NewLRU[uint64, *cachedProject](size, nil, ttl),
	}
}

// Get returns a copy of the cached project
func (c *projectCache) Get(id uint64) (*domain.Project, bool) {
	entry, ok := c.lru.Get(id)
	if !ok {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		return nil, false
	}
	return entry.Project.Clone(), true
}

func (c *projectCache) Set(p *domain.Project) {
	c.lru.Add(p.ID, &cachedProject{
		Version:  CacheSchemaVersion,
		Project:  p.Clone(),
		CachedAt: time.Now(),
	})
}

func (c *projectCache) Invalidate(id uint64) {
	c.lru.Remove(id)
}

// invalidationHandler drops the project touched by a box event
func (c *projectCache) invalidationHandler(ctx context.Context, e event.Event) error {
	switch p := e.Payload.(type) {
	case domain.BoxCreatedPayload:
		c.Invalidate(p.ProjectID)
	case domain.BoxSettledPayload:
		c.Invalidate(p.ProjectID)
	case domain.WithdrawalPayload:
		c.Invalidate(p.ProjectID)
	}
	return nil
}
