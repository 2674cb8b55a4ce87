package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozdmr89/aerodesk/internal/domain"
)

// BookingRepository is the booking ledger. The Exists* queries and Insert are
// meant to run on the transaction that holds the flight row lock, so their
// snapshot cannot be invalidated by a concurrent booking before commit.
// GetByID and ListByPassenger are plain reads outside any transaction.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Booking, error)
	ExistsConfirmed(ctx context.Context, tx pgx.Tx, passengerID, flightID int64) (bool, error)
	SeatTaken(ctx context.Context, tx pgx.Tx, flightID int64, seatNumber string) (bool, error)
	Insert(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error
	LockConfirmed(ctx context.Context, tx pgx.Tx, id int64) (*domain.Booking, error)
	MarkCancelled(ctx context.Context, tx pgx.Tx, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, booking_reference, passenger_id, flight_id, seat_number, status, amount_cents, created_at, updated_at`

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE passenger_id=$1 ORDER BY id`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) ExistsConfirmed(ctx context.Context, tx pgx.Tx, passengerID, flightID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE passenger_id=$1 AND flight_id=$2 AND status=$3)`,
		passengerID, flightID, domain.BookingStatusConfirmed).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) SeatTaken(ctx context.Context, tx pgx.Tx, flightID int64, seatNumber string) (bool, error) {
	var taken bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE flight_id=$1 AND seat_number=$2 AND status=$3)`,
		flightID, seatNumber, domain.BookingStatusConfirmed).Scan(&taken)
	return taken, err
}

func (r *PGBookingRepository) Insert(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error {
	return tx.QueryRow(ctx, `INSERT INTO bookings (booking_reference, passenger_id, flight_id, seat_number, status, amount_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.PassengerID, booking.FlightID, booking.SeatNumber, booking.Status, booking.AmountCents).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

// LockConfirmed loads a CONFIRMED booking and holds a row lock on it, so a
// concurrent cancellation of the same booking blocks and then sees CANCELLED.
func (r *PGBookingRepository) LockConfirmed(ctx context.Context, tx pgx.Tx, id int64) (*domain.Booking, error) {
	b, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 AND status=$2 FOR UPDATE`,
		id, domain.BookingStatusConfirmed))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) MarkCancelled(ctx context.Context, tx pgx.Tx, id int64) error {
	res, err := tx.Exec(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3`,
		domain.BookingStatusCancelled, id, domain.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.PassengerID, &b.FlightID, &b.SeatNumber, &b.Status, &b.AmountCents, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
