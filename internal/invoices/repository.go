package invoices

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("invoice not found")

type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, id int64) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	ListByPlate(ctx context.Context, licensePlate string) ([]Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, invoice *Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Invoice, error) {
	var invoice Invoice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	var invoice Invoice
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) ListByPlate(ctx context.Context, licensePlate string) ([]Invoice, error) {
	var results []Invoice
	err := r.db.WithContext(ctx).
		Where("license_plate = ?", licensePlate).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	result := r.db.WithContext(ctx).
		Model(&Invoice{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
