package lots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mobypark/pkg/cache"
)

// Service interface defines the contract for parking lot business logic
type Service interface {
	CreateLot(ctx context.Context, req CreateLotRequest) (*ParkingLot, error)
	GetLot(ctx context.Context, id int64) (*ParkingLot, error)
	GetAllLots(ctx context.Context) ([]ParkingLot, error)
	UpdateLot(ctx context.Context, id int64, req UpdateLotRequest) (*ParkingLot, error)
	DeleteLot(ctx context.Context, id int64) error

	ReserveSpot(ctx context.Context, id int64) error
	ReleaseSpot(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService creates a new lot service instance. The cache is optional; pass nil to
// read straight from the store.
func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
	}
}

func lotCacheKey(id int64) string {
	return fmt.Sprintf("mobypark:lots:%d", id)
}

func (s *service) CreateLot(ctx context.Context, req CreateLotRequest) (*ParkingLot, error) {
	lot := &ParkingLot{
		Name:      req.Name,
		Location:  req.Location,
		Address:   req.Address,
		Capacity:  req.Capacity,
		Tariff:    req.Tariff,
		DayTariff: req.DayTariff,
	}

	if lot.Tariff.IsNegative() {
		return nil, errors.New("tariff must not be negative")
	}
	if lot.DayTariff != nil && lot.DayTariff.IsNegative() {
		return nil, errors.New("day tariff must not be negative")
	}

	if err := s.repo.Create(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to create parking lot: %w", err)
	}
	return lot, nil
}

// GetLot resolves a lot by id, using the cache-aside pattern for reads. The reserved
// counter changes frequently, so the TTL is kept short and every write invalidates.
func (s *service) GetLot(ctx context.Context, id int64) (*ParkingLot, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var lot ParkingLot
	err := s.cache.GetOrSet(ctx, lotCacheKey(id), s.cacheTTL, func() (interface{}, error) {
		fetched, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return fetched, nil
	}, &lot)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

func (s *service) GetAllLots(ctx context.Context) ([]ParkingLot, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) UpdateLot(ctx context.Context, id int64, req UpdateLotRequest) (*ParkingLot, error) {
	lot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Location != nil {
		lot.Location = *req.Location
	}
	if req.Address != nil {
		lot.Address = *req.Address
	}
	if req.Capacity != nil {
		if *req.Capacity < lot.Reserved {
			return nil, fmt.Errorf("capacity %d is below the current reserved count %d", *req.Capacity, lot.Reserved)
		}
		lot.Capacity = *req.Capacity
	}
	if req.Tariff != nil {
		if req.Tariff.IsNegative() {
			return nil, errors.New("tariff must not be negative")
		}
		lot.Tariff = *req.Tariff
	}
	if req.DayTariff != nil {
		if req.DayTariff.IsNegative() {
			return nil, errors.New("day tariff must not be negative")
		}
		lot.DayTariff = req.DayTariff
	}

	if err := s.repo.Update(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to update parking lot: %w", err)
	}
	s.invalidate(ctx, id)
	return lot, nil
}

func (s *service) DeleteLot(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) ReserveSpot(ctx context.Context, id int64) error {
	if err := s.repo.ReserveSpot(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) ReleaseSpot(ctx context.Context, id int64) error {
	if err := s.repo.ReleaseSpot(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	// Best-effort: a stale cached lot only affects the capacity precheck, the
	// authoritative guard is the atomic UPDATE in the repository.
	_ = s.cache.Delete(ctx, lotCacheKey(id))
}
