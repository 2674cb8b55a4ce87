package booking

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ozdmr89/aerodesk/internal/domain"
	"github.com/ozdmr89/aerodesk/internal/kafka"
	"github.com/ozdmr89/aerodesk/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) error
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListBookingsForPassenger(ctx context.Context, passengerID int64) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService coordinates the booking transaction: every check and
// mutation of one CreateBooking or CancelBooking runs inside a single
// store transaction that holds the flight row lock, so concurrent requests
// for the same flight serialize and requests for different flights do not
// contend.
type BookingService struct {
	store              repository.TxRunner
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	passengers         repository.PassengerRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type CreateBookingInput struct {
	FlightID    int64  `json:"flight_id"`
	PassengerID int64  `json:"passenger_id"`
	SeatNumber  string `json:"seat_number"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	store repository.TxRunner,
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		store:        store,
		bookings:     bookings,
		flights:      flights,
		passengers:   passengers,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking books one seat of one flight for a passenger. The whole
// protocol runs in one transaction: passenger existence, flight row lock,
// duplicate-booking check, availability check, seat-uniqueness check,
// inventory decrement and ledger insert either all commit or none do.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.FlightID <= 0 {
		return nil, errors.New("flight id must be positive")
	}
	if input.PassengerID <= 0 {
		return nil, errors.New("passenger id must be positive")
	}

	booking := &domain.Booking{
		Reference:   newReference(),
		PassengerID: input.PassengerID,
		FlightID:    input.FlightID,
		SeatNumber:  input.SeatNumber,
	}

	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		exists, err := s.passengers.Exists(ctx, tx, input.PassengerID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrPassengerNotFound
		}

		// Lock the flight row first: the duplicate, availability and seat
		// checks below all key off this flight, and the lock keeps a
		// concurrent booking from invalidating them before commit.
		flight, err := s.flights.LockForUpdate(ctx, tx, input.FlightID)
		if err != nil {
			return err
		}

		booked, err := s.bookings.ExistsConfirmed(ctx, tx, input.PassengerID, input.FlightID)
		if err != nil {
			return err
		}
		if booked {
			return domain.ErrAlreadyBooked
		}

		if flight.AvailableSeats <= 0 {
			return domain.ErrFlightFull
		}

		if input.SeatNumber != "" {
			taken, err := s.bookings.SeatTaken(ctx, tx, input.FlightID, input.SeatNumber)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrSeatTaken
			}
		}

		reserved, err := s.flights.TryReserve(ctx, tx, input.FlightID)
		if err != nil {
			return err
		}
		if !reserved {
			return domain.ErrFlightFull
		}

		booking.AmountCents = flight.PriceCents
		booking.Status = domain.BookingStatusConfirmed
		return s.bookings.Insert(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %s: %v", booking.Reference, err)
	}
	return booking, nil
}

// CancelBooking flips a CONFIRMED booking to CANCELLED and returns its seat
// to the flight's inventory. A missing booking and an already cancelled one
// are indistinguishable to the caller; both report not found.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64) error {
	var cancelled *domain.Booking

	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		booking, err := s.bookings.LockConfirmed(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if _, err := s.flights.LockForUpdate(ctx, tx, booking.FlightID); err != nil {
			return err
		}
		if err := s.bookings.MarkCancelled(ctx, tx, bookingID); err != nil {
			return err
		}
		if err := s.flights.Release(ctx, tx, booking.FlightID); err != nil {
			return err
		}
		booking.Status = domain.BookingStatusCancelled
		cancelled = booking
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.publish(ctx, "booking_cancelled", cancelled); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for booking %s: %v", cancelled.Reference, err)
	}
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *BookingService) ListBookingsForPassenger(ctx context.Context, passengerID int64) ([]domain.Booking, error) {
	return s.bookings.ListByPassenger(ctx, passengerID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		PassengerID: booking.PassengerID,
		FlightID:    booking.FlightID,
		SeatNumber:  booking.SeatNumber,
		Status:      string(booking.Status),
		AmountCents: booking.AmountCents,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

// newReference generates the human-facing booking code: six uppercase
// characters taken off a fresh UUID.
func newReference() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

var _ BookingUseCase = (*BookingService)(nil)
