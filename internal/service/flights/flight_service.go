package flights

import (
	"context"
	"time"

	"github.com/ozdmr89/aerodesk/internal/domain"
	"github.com/ozdmr89/aerodesk/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo     repository.FlightRepository
	cache    Cache
	cacheTTL time.Duration
}

func NewFlightService(repo repository.FlightRepository, cache Cache, cacheTTL time.Duration) *FlightService {
	return &FlightService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// List serves the flight list from cache when it is warm. Available-seat
// counts may lag by up to the cache TTL; bookings read the database directly.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

var _ FlightUseCase = (*FlightService)(nil)
