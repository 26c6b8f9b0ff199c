package passes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mobypark/internal/shared/validation"
)

type Service interface {
	CreatePass(ctx context.Context, req CreatePassRequest) (*HotelPass, error)
	GetPass(ctx context.Context, id int64) (*HotelPass, error)
	GetAllPasses(ctx context.Context) ([]HotelPass, error)
	UpdatePass(ctx context.Context, id int64, req UpdatePassRequest) (*HotelPass, error)
	DeletePass(ctx context.Context, id int64) error

	// FindActivePass returns the covering pass for a plate at a lot, or nil when
	// the vehicle has no coverage. A missing pass is not an error here.
	FindActivePass(ctx context.Context, lotID int64, licensePlate string, at time.Time) (*HotelPass, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreatePass(ctx context.Context, req CreatePassRequest) (*HotelPass, error) {
	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, errors.New("valid_until must be after valid_from")
	}

	pass := &HotelPass{
		LicensePlate: validation.NormalizePlate(req.LicensePlate),
		ParkingLotID: req.ParkingLotID,
		HotelName:    req.HotelName,
		ValidFrom:    req.ValidFrom,
		ValidUntil:   req.ValidUntil,
		ExtraMinutes: req.ExtraMinutes,
	}

	if err := s.repo.Create(ctx, pass); err != nil {
		return nil, fmt.Errorf("failed to create hotel pass: %w", err)
	}
	return pass, nil
}

func (s *service) GetPass(ctx context.Context, id int64) (*HotelPass, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAllPasses(ctx context.Context) ([]HotelPass, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) UpdatePass(ctx context.Context, id int64, req UpdatePassRequest) (*HotelPass, error) {
	pass, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HotelName != nil {
		pass.HotelName = *req.HotelName
	}
	if req.ValidFrom != nil {
		pass.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		pass.ValidUntil = *req.ValidUntil
	}
	if req.ExtraMinutes != nil {
		pass.ExtraMinutes = *req.ExtraMinutes
	}

	if !pass.ValidUntil.After(pass.ValidFrom) {
		return nil, errors.New("valid_until must be after valid_from")
	}

	if err := s.repo.Update(ctx, pass); err != nil {
		return nil, fmt.Errorf("failed to update hotel pass: %w", err)
	}
	return pass, nil
}

func (s *service) DeletePass(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) FindActivePass(ctx context.Context, lotID int64, licensePlate string, at time.Time) (*HotelPass, error) {
	pass, err := s.repo.GetActivePass(ctx, lotID, validation.NormalizePlate(licensePlate), at)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pass, nil
}
