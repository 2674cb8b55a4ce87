package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozdmr89/aerodesk/internal/domain"
)

// FlightRepository is the only mutator of a flight's available_seats.
// LockForUpdate, TryReserve and Release must run on the caller's transaction
// so the availability check and the decrement are serialized against other
// bookings of the same flight.
type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Flight, error)
	TryReserve(ctx context.Context, tx pgx.Tx, id int64) (bool, error)
	Release(ctx context.Context, tx pgx.Tx, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, from_airport, to_airport, departure_time, arrival_time, total_seats, available_seats, price_cents, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return f, err
}

// LockForUpdate loads the flight row and holds an exclusive row lock until the
// transaction ends. Every check the booking protocol makes keys off this row,
// so the lock serializes concurrent bookings of the same flight while leaving
// other flights untouched.
func (r *PGFlightRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Flight, error) {
	f, err := scanFlight(tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return f, err
}

// TryReserve decrements available_seats iff at least one seat remains and
// reports whether it did.
func (r *PGFlightRepository) TryReserve(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1 AND available_seats > 0`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *PGFlightRepository) Release(ctx context.Context, tx pgx.Tx, id int64) error {
	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
