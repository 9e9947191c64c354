// Package booking owns slot state transitions. Book and Cancel are backed by
// single-document conditional updates; the ledger never reads a slot first
// and writes it second.
package booking

import (
	"context"
	"fmt"
	"time"

	providerRepo "keazy/database/repository/provider"
	slotRepo "keazy/database/repository/slot"
	userRepo "keazy/database/repository/user"
	"keazy/models"

	"go.uber.org/zap"
)

// Ledger defines atomic slot booking and cancellation.
type Ledger interface {
	Book(ctx context.Context, slotID, userID, notes string) (*models.BookingDetail, error)
	Cancel(ctx context.Context, slotID, userID string) (*models.Slot, error)
	UserBookings(ctx context.Context, userID string) ([]models.BookingDetail, error)
}

// DefaultLedger is the Mongo-backed implementation.
type DefaultLedger struct {
	SlotRepo     slotRepo.SlotRepository
	ProviderRepo providerRepo.ProviderRepository
	UserRepo     userRepo.UserRepository
	Clock        func() time.Time
	Logger       *zap.Logger
}

func (l *DefaultLedger) now() time.Time {
	if l.Clock != nil {
		return l.Clock()
	}
	return time.Now().UTC()
}

// Book transitions the slot available -> booked. Exactly one of any number
// of concurrent callers wins; the rest get ErrSlotUnavailable.
func (l *DefaultLedger) Book(ctx context.Context, slotID, userID, notes string) (*models.BookingDetail, error) {
	at := l.now()
	slot, err := l.SlotRepo.Book(ctx, slotID, userID, notes, at)
	if err != nil {
		if slotRepo.IsNoDocuments(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("booking update failed: %w", err)
	}

	if err := l.UserRepo.TouchBooking(ctx, userID, at); err != nil {
		// The booking itself committed; a failed counter bump is logged
		// and not rolled back.
		l.log().Warn("failed to increment booking counter", zap.String("user", userID), zap.Error(err))
	}

	detail := &models.BookingDetail{Slot: *slot}
	if provider, err := l.ProviderRepo.GetByID(ctx, slot.ProviderID); err == nil {
		detail.Provider = provider
	}
	return detail, nil
}

// Cancel transitions the slot booked -> available, only for the user who
// booked it. Booking metadata is cleared in the same update.
func (l *DefaultLedger) Cancel(ctx context.Context, slotID, userID string) (*models.Slot, error) {
	slot, err := l.SlotRepo.Cancel(ctx, slotID, userID)
	if err != nil {
		if slotRepo.IsNoDocuments(err) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("cancel update failed: %w", err)
	}
	return slot, nil
}

// UserBookings lists the user's current bookings joined with provider
// contact and location details.
func (l *DefaultLedger) UserBookings(ctx context.Context, userID string) ([]models.BookingDetail, error) {
	slots, err := l.SlotRepo.BookedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	details := make([]models.BookingDetail, 0, len(slots))
	for _, s := range slots {
		detail := models.BookingDetail{Slot: s}
		if provider, err := l.ProviderRepo.GetByID(ctx, s.ProviderID); err == nil {
			detail.Provider = provider
		}
		details = append(details, detail)
	}
	return details, nil
}

func (l *DefaultLedger) log() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
