package passes

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no hotel pass matches the lookup.
var ErrNotFound = errors.New("hotel pass not found")

type Repository interface {
	Create(ctx context.Context, pass *HotelPass) error
	GetByID(ctx context.Context, id int64) (*HotelPass, error)
	GetAll(ctx context.Context) ([]HotelPass, error)
	Update(ctx context.Context, pass *HotelPass) error
	Delete(ctx context.Context, id int64) error

	// GetActivePass returns the pass covering the plate at the given lot and
	// instant, or ErrNotFound when none applies.
	GetActivePass(ctx context.Context, lotID int64, licensePlate string, at time.Time) (*HotelPass, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, pass *HotelPass) error {
	return r.db.WithContext(ctx).Create(pass).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*HotelPass, error) {
	var pass HotelPass
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pass).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pass, nil
}

func (r *repository) GetAll(ctx context.Context) ([]HotelPass, error) {
	var passes []HotelPass
	err := r.db.WithContext(ctx).Order("valid_until DESC").Find(&passes).Error
	return passes, err
}

func (r *repository) Update(ctx context.Context, pass *HotelPass) error {
	return r.db.WithContext(ctx).Save(pass).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&HotelPass{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GetActivePass(ctx context.Context, lotID int64, licensePlate string, at time.Time) (*HotelPass, error) {
	var pass HotelPass
	err := r.db.WithContext(ctx).
		Where("parking_lot_id = ? AND license_plate = ?", lotID, licensePlate).
		Where("valid_from <= ? AND valid_until + (extra_minutes * interval '1 minute') >= ?", at, at).
		Order("valid_until DESC").
		First(&pass).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pass, nil
}
