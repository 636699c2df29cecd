// Package refcache holds the reference lists that populate form selects
// (cells, blocks, roles, staff, prisoners, visitors, program types). Each
// list is fetched lazily once and kept until it is explicitly invalidated
// by a mutation of the entity it comes from.
package refcache

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"prison-admin/internal/apiclient"
	"prison-admin/internal/domain"
)

// Source names.
const (
	Cells        = "cells"
	Blocks       = "blocks"
	Roles        = "roles"
	Staff        = "staff"
	Prisoners    = "prisoners"
	Visitors     = "visitors"
	ProgramTypes = "program_types"
	Programs     = "programs"
)

// Source describes where a reference list is loaded from.
type Source struct {
	Name  string
	Path  string
	Query url.Values
}

// DefaultSources returns the reference lists used by the entity forms.
func DefaultSources() []Source {
	return []Source{
		{Name: Cells, Path: "/api/cells", Query: url.Values{"available_only": {"false"}}},
		{Name: Blocks, Path: "/api/cell-blocks"},
		{Name: Roles, Path: "/api/staff-roles"},
		{Name: Staff, Path: "/api/staff"},
		{Name: Prisoners, Path: "/api/prisoners", Query: url.Values{"status": {"incarcerated"}, "limit": {"1000"}}},
		{Name: Visitors, Path: "/api/visitors", Query: url.Values{"blacklisted": {"false"}}},
		{Name: ProgramTypes, Path: "/api/program-types"},
		{Name: Programs, Path: "/api/programs"},
	}
}

// Lister fetches a collection from the backend.
type Lister interface {
	List(ctx context.Context, path string, query url.Values) (apiclient.Page, error)
}

type entry struct {
	records []domain.Record
	loaded  bool
	gen     uint64
}

// Cache is a set of named reference lists.
type Cache struct {
	lister  Lister
	sources map[string]Source

	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
}

// New creates a cache over the given sources.
func New(lister Lister, sources ...Source) *Cache {
	c := &Cache{
		lister:  lister,
		sources: make(map[string]Source, len(sources)),
		entries: make(map[string]*entry, len(sources)),
	}
	for _, s := range sources {
		c.sources[s.Name] = s
		c.entries[s.Name] = &entry{}
	}
	return c
}

// Get returns the named list, fetching it when it has not been loaded or
// when force is set. Concurrent loads of the same source share one request.
func (c *Cache) Get(ctx context.Context, name string, force bool) ([]domain.Record, error) {
	src, ok := c.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown reference source %q", name)
	}

	c.mu.RLock()
	e := c.entries[name]
	if e.loaded && !force {
		records := e.records
		c.mu.RUnlock()
		return records, nil
	}
	gen := e.gen
	c.mu.RUnlock()

	v, err, _ := c.group.Do(name, func() (any, error) {
		if !force {
			c.mu.RLock()
			if e.loaded {
				records := e.records
				c.mu.RUnlock()
				return records, nil
			}
			c.mu.RUnlock()
		}
		page, err := c.lister.List(ctx, src.Path, src.Query)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		// An invalidation that raced with this fetch wins; the result is
		// returned to the caller but not kept.
		if e.gen == gen {
			e.records = page.Data
			e.loaded = true
		}
		return page.Data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	slog.Debug("Reference list loaded", "source", name, "forced", force, "component", "Cache")
	return v.([]domain.Record), nil
}

// Invalidate drops the named lists so the next Get refetches them.
func (c *Cache) Invalidate(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		e, ok := c.entries[name]
		if !ok {
			continue
		}
		e.records = nil
		e.loaded = false
		e.gen++
	}
}

