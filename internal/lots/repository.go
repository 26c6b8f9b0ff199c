package lots

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no lot exists for the given id.
	ErrNotFound = errors.New("parking lot not found")
	// ErrLotFull is returned when a reservation would exceed the lot capacity.
	ErrLotFull = errors.New("parking lot is full")
	// ErrNoReservations is returned when a release would drop the counter below zero.
	ErrNoReservations = errors.New("parking lot has no reserved spots")
)

type Repository interface {
	Create(ctx context.Context, lot *ParkingLot) error
	GetByID(ctx context.Context, id int64) (*ParkingLot, error)
	GetAll(ctx context.Context) ([]ParkingLot, error)
	Update(ctx context.Context, lot *ParkingLot) error
	Delete(ctx context.Context, id int64) error

	// Atomic capacity counter mutations. The guard lives in the UPDATE statement so
	// concurrent entries/exits on the same lot never lose updates.
	ReserveSpot(ctx context.Context, id int64) error
	ReleaseSpot(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lot *ParkingLot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*ParkingLot, error) {
	var lot ParkingLot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&lot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

func (r *repository) GetAll(ctx context.Context) ([]ParkingLot, error) {
	var lots []ParkingLot
	err := r.db.WithContext(ctx).Order("name ASC").Find(&lots).Error
	return lots, err
}

func (r *repository) Update(ctx context.Context, lot *ParkingLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ParkingLot{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReserveSpot increments the reserved counter, guarded by capacity. Zero affected
// rows means either the lot is unknown or it is already full.
func (r *repository) ReserveSpot(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&ParkingLot{}).
		Where("id = ? AND reserved < capacity", id).
		UpdateColumn("reserved", gorm.Expr("reserved + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to reserve spot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish "full" from "missing" so callers can map the outcome.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrLotFull
	}
	return nil
}

// ReleaseSpot decrements the reserved counter, never below zero.
func (r *repository) ReleaseSpot(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&ParkingLot{}).
		Where("id = ? AND reserved > 0", id).
		UpdateColumn("reserved", gorm.Expr("reserved - 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to release spot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNoReservations
	}
	return nil
}
