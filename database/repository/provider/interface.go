package providerRepo

import (
	"context"

	"keazy/models"
)

// ProviderFilter is the hierarchical filter for provider queries. Every
// field is applied only when non-empty; callers decide which are mandatory.
type ProviderFilter struct {
	Service string
	State   string
	City    string
}

// GeoQuery bounds a spatial nearest-neighbor search.
type GeoQuery struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByIDs retrieves providers for a set of IDs.
	GetByIDs(ctx context.Context, ids []string) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// SetAvailability toggles the availableNow flag.
	SetAvailability(ctx context.Context, id string, available bool) error
	// Search runs the non-spatial hierarchical query.
	Search(ctx context.Context, filter ProviderFilter) ([]models.Provider, error)
	// SearchNear runs a $geoNear query bounded by the radius, combined with
	// the hierarchical filter; each result carries its distance in meters.
	SearchNear(ctx context.Context, filter ProviderFilter, geo GeoQuery) ([]models.Provider, error)
}
