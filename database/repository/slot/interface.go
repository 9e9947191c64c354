package slotRepo

import (
	"context"
	"time"

	"keazy/models"
)

// SlotRepository defines data access for bookable slots. Book and Cancel are
// the only paths that move a slot between available and booked, and both are
// single conditional updates: the transition happens only if the precondition
// on current status (and owner, for Cancel) still holds when the write lands.
type SlotRepository interface {
	// CreateMany inserts slots in the available state.
	CreateMany(ctx context.Context, slots []models.Slot) ([]string, error)
	// GetByID retrieves a slot by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	// NextAvailable returns up to limit available slots for the provider
	// with date >= from, ordered by (date, time) ascending.
	NextAvailable(ctx context.Context, providerID, from string, limit int64) ([]models.Slot, error)
	// Book atomically transitions an available slot to booked. Returns
	// mongo.ErrNoDocuments (wrapped) when the slot is missing or not
	// available anymore.
	Book(ctx context.Context, slotID, userID, notes string, at time.Time) (*models.Slot, error)
	// Cancel atomically transitions a slot booked by userID back to
	// available, clearing all booking metadata.
	Cancel(ctx context.Context, slotID, userID string) (*models.Slot, error)
	// BookedBy lists the slots currently booked by a user.
	BookedBy(ctx context.Context, userID string) ([]models.Slot, error)
}
