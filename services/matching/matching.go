// Package matching ranks providers against a hierarchical filter, using the
// store's spatial index when a geo hint is present.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	providerRepo "keazy/database/repository/provider"
	"keazy/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Search method labels exposed in responses.
const (
	MethodGeo              = "geo"
	MethodStandard         = "standard"
	MethodStandardFallback = "standard-fallback"
)

// DefaultLimit caps result lists when the caller does not set one.
const DefaultLimit = 10

const cacheTTL = 5 * time.Minute

// Criteria describes one match attempt. Service is required; State, City and
// Area narrow it; Geo switches to a radius search.
type Criteria struct {
	Service string                 `json:"service"`
	State   string                 `json:"state,omitempty"`
	City    string                 `json:"city,omitempty"`
	Area    string                 `json:"area,omitempty"`
	Geo     *providerRepo.GeoQuery `json:"geo,omitempty"`
	Limit   int                    `json:"limit,omitempty"`
}

// Result is a ranked provider list plus the method label that produced it.
type Result struct {
	Providers []models.Provider `json:"providers"`
	Method    string            `json:"method"`
}

// Matcher defines the provider matching surface.
type Matcher interface {
	Match(ctx context.Context, criteria Criteria) (*Result, error)
}

// DefaultMatcher is the Mongo-backed implementation with a Redis result
// cache for non-spatial queries.
type DefaultMatcher struct {
	ProviderRepo providerRepo.ProviderRepository
	CacheClient  *redis.Client
	Logger       *zap.Logger
}

// Match runs one query at the given criteria level. It never broadens by
// itself; the orchestrator re-invokes it with relaxed criteria when a level
// comes back empty.
func (m *DefaultMatcher) Match(ctx context.Context, criteria Criteria) (*Result, error) {
	// Hierarchical queries need a service to anchor on; a pure radius
	// search (the /providers/nearby surface) may span all services.
	if criteria.Service == "" && (criteria.Geo == nil || criteria.Geo.RadiusKm <= 0) {
		return nil, fmt.Errorf("matching requires a service")
	}
	if criteria.Limit <= 0 {
		criteria.Limit = DefaultLimit
	}

	if criteria.Geo != nil && criteria.Geo.RadiusKm > 0 {
		return m.matchGeo(ctx, criteria)
	}
	return m.matchStandard(ctx, criteria, MethodStandard)
}

func (m *DefaultMatcher) matchGeo(ctx context.Context, criteria Criteria) (*Result, error) {
	filter := providerRepo.ProviderFilter{
		Service: criteria.Service,
		State:   criteria.State,
		City:    criteria.City,
	}
	providers, err := m.ProviderRepo.SearchNear(ctx, filter, *criteria.Geo)
	if err != nil {
		// Spatial queries can fail independently of the plain index
		// (missing 2dsphere index, bad geometry). Degrade to the
		// hierarchical query rather than failing the request.
		m.log().Warn("geo search failed, falling back to standard query", zap.Error(err))
		return m.matchStandard(ctx, criteria, MethodStandardFallback)
	}

	return &Result{
		Providers: rank(providers, criteria.Area, true, criteria.Limit),
		Method:    MethodGeo,
	}, nil
}

func (m *DefaultMatcher) matchStandard(ctx context.Context, criteria Criteria, method string) (*Result, error) {
	if cached := m.fromCache(ctx, criteria, method); cached != nil {
		return cached, nil
	}

	filter := providerRepo.ProviderFilter{
		Service: criteria.Service,
		State:   criteria.State,
		City:    criteria.City,
	}
	providers, err := m.ProviderRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}

	result := &Result{
		Providers: rank(providers, criteria.Area, false, criteria.Limit),
		Method:    method,
	}
	m.toCache(ctx, criteria, method, result)
	return result, nil
}

// Non-spatial results are cached for a few minutes keyed by the criteria
// JSON. Geo results are never cached: distances are positional.
func (m *DefaultMatcher) cacheKey(criteria Criteria, method string) string {
	b, err := json.Marshal(criteria)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("match:%s:%x", method, b)
}

func (m *DefaultMatcher) fromCache(ctx context.Context, criteria Criteria, method string) *Result {
	if m.CacheClient == nil {
		return nil
	}
	key := m.cacheKey(criteria, method)
	if key == "" {
		return nil
	}
	cached, err := m.CacheClient.Get(ctx, key).Result()
	if err != nil || cached == "" {
		return nil
	}
	var result Result
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		return nil
	}
	return &result
}

func (m *DefaultMatcher) toCache(ctx context.Context, criteria Criteria, method string, result *Result) {
	if m.CacheClient == nil {
		return
	}
	key := m.cacheKey(criteria, method)
	if key == "" {
		return
	}
	if b, err := json.Marshal(result); err == nil {
		m.CacheClient.Set(ctx, key, b, cacheTTL)
	}
}

func (m *DefaultMatcher) log() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}
