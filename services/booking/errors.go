package booking

import "errors"

// ErrSlotUnavailable means the slot was already booked (or never existed)
// when the conditional update landed. This is a normal outcome under races
// between concurrent bookers, not a server fault.
var ErrSlotUnavailable = errors.New("slot unavailable")

// ErrBookingNotFound means no booked slot matched both the ID and the
// requesting user: either the slot does not exist, it is not booked, or it
// belongs to someone else. The three cases are deliberately indistinguishable.
var ErrBookingNotFound = errors.New("booking not found or not owned by user")
