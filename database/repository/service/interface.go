package serviceRepo

import (
	"context"

	"keazy/models"
)

// ServiceRepository defines data access for service categories and their
// matching keywords.
type ServiceRepository interface {
	// ListEnabled returns all enabled services in stable (name) order.
	ListEnabled(ctx context.Context) ([]models.Service, error)
	// Upsert creates or replaces a service by name.
	Upsert(ctx context.Context, svc *models.Service) error
	// GetByName retrieves a single service.
	GetByName(ctx context.Context, name string) (*models.Service, error)
}
