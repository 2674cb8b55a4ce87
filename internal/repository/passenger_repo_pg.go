package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozdmr89/aerodesk/internal/domain"
)

type PassengerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Exists(ctx context.Context, tx pgx.Tx, id int64) (bool, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT id, first_name, last_name, email, passport_number, created_at, updated_at FROM passengers WHERE id=$1`, id)
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.PassportNumber, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPassengerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) Exists(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM passengers WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
