package models

import "time"

// User is a requester, created on first query via upsert. Counters only
// ever increase; users are never deleted by this service.
type User struct {
	ID            string     `bson:"id" json:"id"`
	Name          string     `bson:"name,omitempty" json:"name,omitempty"`
	Phone         string     `bson:"phone,omitempty" json:"phone,omitempty"`
	TotalQueries  int64      `bson:"totalQueries" json:"totalQueries"`
	TotalBookings int64      `bson:"totalBookings" json:"totalBookings"`
	LastQueryAt   *time.Time `bson:"lastQueryAt,omitempty" json:"lastQueryAt,omitempty"`
	LastBookingAt *time.Time `bson:"lastBookingAt,omitempty" json:"lastBookingAt,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}
