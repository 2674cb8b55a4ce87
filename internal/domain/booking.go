package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a passenger's claim on one seat of one flight. It is created
// CONFIRMED and the only transition is CONFIRMED -> CANCELLED; rows are never
// deleted, cancellation is the terminal state.
type Booking struct {
	ID          int64
	Reference   string
	PassengerID int64
	FlightID    int64
	SeatNumber  string
	Status      BookingStatus
	AmountCents int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
