package userRepo

import (
	"context"
	"time"

	"keazy/models"
)

// UserRepository defines data access for requesters. All counter updates are
// single $inc upserts so concurrent requests never lose an increment.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// TouchQuery upserts the user and increments the query counter,
	// returning the post-increment record.
	TouchQuery(ctx context.Context, id string, at time.Time) (*models.User, error)
	// TouchBooking increments the booking counter for an existing user.
	TouchBooking(ctx context.Context, id string, at time.Time) error
}
