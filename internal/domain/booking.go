package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID            string
	Reference     string
	FlightID      string
	PassengerName string
	Email         string
	CabinClass    string
	SeatNumber    string
	Status        BookingStatus
	PriceCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeleteOutcome is one row of the delete_bookings database procedure's
// result set. The first row reports the outcome for the whole batch.
type DeleteOutcome struct {
	Success      bool
	ErrorMessage string
}
