package sessions

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no session matches the lookup.
	ErrNotFound = errors.New("parking session not found")
	// ErrActiveSessionExists is returned when an insert collides with the
	// one-active-session-per-plate constraint.
	ErrActiveSessionExists = errors.New("an active session already exists for this plate")
)

type Repository interface {
	Create(ctx context.Context, session *ParkingSession) error
	GetByID(ctx context.Context, id int64) (*ParkingSession, error)
	GetActiveByPlate(ctx context.Context, licensePlate string) (*ParkingSession, error)
	GetMostRecentByPlate(ctx context.Context, licensePlate string) (*ParkingSession, error)
	Update(ctx context.Context, session *ParkingSession) error
	Delete(ctx context.Context, id int64) error

	ListByLot(ctx context.Context, lotID int64) ([]ParkingSession, error)
	ListByPlate(ctx context.Context, licensePlate string) ([]ParkingSession, error)
	ListByStatus(ctx context.Context, status PaymentStatus) ([]ParkingSession, error)
	ListActive(ctx context.Context) ([]ParkingSession, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the session. The partial unique index on active plates makes
// the lookup-then-create race safe: the loser gets ErrActiveSessionExists.
func (r *repository) Create(ctx context.Context, session *ParkingSession) error {
	err := r.db.WithContext(ctx).Create(session).Error
	if err != nil {
		if isUniqueViolation(err) {
			return ErrActiveSessionExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*ParkingSession, error) {
	var session ParkingSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) GetActiveByPlate(ctx context.Context, licensePlate string) (*ParkingSession, error) {
	var session ParkingSession
	err := r.db.WithContext(ctx).
		Where("license_plate = ? AND stopped IS NULL", licensePlate).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) GetMostRecentByPlate(ctx context.Context, licensePlate string) (*ParkingSession, error) {
	var session ParkingSession
	err := r.db.WithContext(ctx).
		Where("license_plate = ?", licensePlate).
		Order("started DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) Update(ctx context.Context, session *ParkingSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ParkingSession{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListByLot(ctx context.Context, lotID int64) ([]ParkingSession, error) {
	var results []ParkingSession
	err := r.db.WithContext(ctx).
		Where("parking_lot_id = ?", lotID).
		Order("started DESC").
		Find(&results).Error
	return results, err
}

func (r *repository) ListByPlate(ctx context.Context, licensePlate string) ([]ParkingSession, error) {
	var results []ParkingSession
	err := r.db.WithContext(ctx).
		Where("license_plate = ?", licensePlate).
		Order("started DESC").
		Find(&results).Error
	return results, err
}

func (r *repository) ListByStatus(ctx context.Context, status PaymentStatus) ([]ParkingSession, error) {
	var results []ParkingSession
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", status).
		Order("started DESC").
		Find(&results).Error
	return results, err
}

func (r *repository) ListActive(ctx context.Context) ([]ParkingSession, error) {
	var results []ParkingSession
	err := r.db.WithContext(ctx).
		Where("stopped IS NULL").
		Order("started DESC").
		Find(&results).Error
	return results, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers gorm does not translate.
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
