package models

import "time"

// Slot statuses. A slot is created available, becomes booked only through
// the booking ledger's conditional update, and returns to available only
// when the booking user cancels. Completed and no-show are terminal and are
// written by the fulfillment process, never by this service.
const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
	SlotCompleted = "completed"
	SlotCancelled = "cancelled"
	SlotNoShow    = "no-show"
)

// Slot is a bookable time window offered by a provider.
type Slot struct {
	ID          string `bson:"id" json:"id"`
	ProviderID  string `bson:"providerId" json:"providerId"`
	Date        string `bson:"date" json:"date"` // "2006-01-02"
	Time        string `bson:"time" json:"time"` // "15:04", 24h
	DurationMin int    `bson:"durationMin" json:"durationMin"`
	// ServiceName is denormalized from the provider for fast filtering.
	ServiceName string `bson:"serviceName" json:"serviceName"`
	Status      string `bson:"status" json:"status"`

	BookedBy     string     `bson:"bookedBy,omitempty" json:"bookedBy,omitempty"`
	BookedAt     *time.Time `bson:"bookedAt,omitempty" json:"bookedAt,omitempty"`
	BookingNotes string     `bson:"bookingNotes,omitempty" json:"bookingNotes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotView is the trimmed slot shape embedded in provider cards.
type SlotView struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	DurationMin int    `json:"durationMin"`
}

// BookingDetail is the booking ledger's response shape: the booked slot
// joined with its provider's contact and location.
type BookingDetail struct {
	Slot     Slot      `json:"slot"`
	Provider *Provider `json:"provider,omitempty"`
}
