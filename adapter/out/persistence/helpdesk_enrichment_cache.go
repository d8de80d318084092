// Package persistence implements Redis-backed stores for derived data.
package persistence

import (
	"context"
	"time"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
	"helpdesk_server/pkg/cache"
)

// =============================================================================
// Enrichment Cache
// =============================================================================

const enrichmentKeyPrefix = "enrichment:"

// EnrichmentCacheAdapter implements out.EnrichmentCache over Redis. Keys are
// hashes of the normalized input text, so identical messages skip the model
// calls entirely.
type EnrichmentCacheAdapter struct {
	cache *cache.RedisCache
}

// NewEnrichmentCacheAdapter creates the adapter.
func NewEnrichmentCacheAdapter(c *cache.RedisCache) *EnrichmentCacheAdapter {
	return &EnrichmentCacheAdapter{cache: c}
}

// Get loads a cached record. The second return is false on a miss.
func (a *EnrichmentCacheAdapter) Get(ctx context.Context, key string) (*domain.EnrichmentRecord, bool, error) {
	var record domain.EnrichmentRecord
	found, err := a.cache.GetJSON(ctx, enrichmentKeyPrefix+key, &record)
	if err != nil || !found {
		return nil, false, err
	}
	return &record, true, nil
}

// Set stores a record with a TTL.
func (a *EnrichmentCacheAdapter) Set(ctx context.Context, key string, record *domain.EnrichmentRecord, ttl time.Duration) error {
	return a.cache.SetJSON(ctx, enrichmentKeyPrefix+key, record, ttl)
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ out.EnrichmentCache = (*EnrichmentCacheAdapter)(nil)
