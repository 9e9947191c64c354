// Package catalog maintains the service -> keyword mapping the intent
// resolver matches against, with a bounded-staleness in-process cache and a
// static fallback when the store is unreachable.
package catalog

import (
	"context"
	"sync"
	"time"

	serviceRepo "keazy/database/repository/service"
	"keazy/models"

	"go.uber.org/zap"
)

// DefaultTTL is how long a resolved catalog stays fresh.
const DefaultTTL = 5 * time.Minute

// Catalog caches the synonym map. Reads are safe under concurrent access;
// repopulation on a miss may race, which at worst re-fetches redundantly.
type Catalog struct {
	repo   serviceRepo.ServiceRepository
	ttl    time.Duration
	clock  func() time.Time
	logger *zap.Logger

	mu      sync.RWMutex
	entries []models.ServiceSynonyms
	expires time.Time
}

// New builds a catalog over the given repository. A zero ttl falls back to
// DefaultTTL; a nil clock uses time.Now.
func New(repo serviceRepo.ServiceRepository, ttl time.Duration, clock func() time.Time, logger *zap.Logger) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{repo: repo, ttl: ttl, clock: clock, logger: logger}
}

// Resolve returns the catalog entries in stable order. It serves the cached
// copy while fresh, reloads from the store on expiry, and degrades to the
// static fallback when the store fails or holds nothing.
func (c *Catalog) Resolve(ctx context.Context) []models.ServiceSynonyms {
	c.mu.RLock()
	if c.entries != nil && c.clock().Before(c.expires) {
		entries := c.entries
		c.mu.RUnlock()
		return entries
	}
	c.mu.RUnlock()

	services, err := c.repo.ListEnabled(ctx)
	if err != nil || len(services) == 0 {
		if err != nil {
			c.logger.Warn("synonym catalog load failed, using static fallback", zap.Error(err))
		}
		return fallbackEntries()
	}

	entries := make([]models.ServiceSynonyms, 0, len(services))
	for _, svc := range services {
		entries = append(entries, models.ServiceSynonyms{
			Service:  svc.Name,
			Keywords: svc.Synonyms,
		})
	}

	c.mu.Lock()
	c.entries = entries
	c.expires = c.clock().Add(c.ttl)
	c.mu.Unlock()

	return entries
}

// Invalidate drops the cached copy so the next Resolve reloads immediately.
// The admin surface calls this after editing services.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.expires = time.Time{}
	c.mu.Unlock()
}
