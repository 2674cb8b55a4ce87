package domain

import "errors"

// Booking invariants are reported with sentinel errors so the API layer can
// map them to statuses without inspecting message text. Anything else that
// escapes a transaction is an internal store failure.
var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrFlightFull        = errors.New("flight is full")
	ErrSeatTaken         = errors.New("seat already booked")
	ErrAlreadyBooked     = errors.New("passenger already booked this flight")
)

// IsConflict reports whether err is one of the invariant violations that map
// to a 409 at the API boundary.
func IsConflict(err error) bool {
	return errors.Is(err, ErrFlightFull) ||
		errors.Is(err, ErrSeatTaken) ||
		errors.Is(err, ErrAlreadyBooked)
}

// IsNotFound reports whether err refers to a missing flight, passenger or
// booking.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFlightNotFound) ||
		errors.Is(err, ErrPassengerNotFound) ||
		errors.Is(err, ErrBookingNotFound)
}
