package lots

import (
	"time"

	"github.com/shopspring/decimal"

	"mobypark/internal/pricing"
)

// ParkingLot defines a physical parking location and its pricing.
type ParkingLot struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"not null;size:255"`
	Location string `json:"location" gorm:"size:255"`
	Address  string `json:"address" gorm:"size:255"`

	Capacity int `json:"capacity" gorm:"not null;check:capacity >= 0"`
	Reserved int `json:"reserved" gorm:"not null;default:0;check:reserved >= 0"`

	Tariff    decimal.Decimal  `json:"tariff" gorm:"type:decimal(12,2);not null"`
	DayTariff *decimal.Decimal `json:"day_tariff,omitempty" gorm:"type:decimal(12,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for ParkingLot
func (ParkingLot) TableName() string {
	return "parking_lots"
}

// AvailableSpots returns the number of unreserved spots.
func (l *ParkingLot) AvailableSpots() int {
	available := l.Capacity - l.Reserved
	if available < 0 {
		return 0
	}
	return available
}

// IsFull reports whether the lot has no free spots left.
func (l *ParkingLot) IsFull() bool {
	return l.Reserved >= l.Capacity
}

// PricingTariffs returns the lot's rates in the shape the pricing engine consumes.
func (l *ParkingLot) PricingTariffs() pricing.Tariffs {
	return pricing.Tariffs{
		Hourly: l.Tariff,
		Daily:  l.DayTariff,
	}
}

// CreateLotRequest represents a lot creation request
type CreateLotRequest struct {
	Name      string           `json:"name" binding:"required,min=2,max=255"`
	Location  string           `json:"location" binding:"max=255"`
	Address   string           `json:"address" binding:"max=255"`
	Capacity  int              `json:"capacity" binding:"required,min=0"`
	Tariff    decimal.Decimal  `json:"tariff" binding:"required"`
	DayTariff *decimal.Decimal `json:"day_tariff"`
}

// UpdateLotRequest represents a partial lot update
type UpdateLotRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Location  *string          `json:"location" binding:"omitempty,max=255"`
	Address   *string          `json:"address" binding:"omitempty,max=255"`
	Capacity  *int             `json:"capacity" binding:"omitempty,min=0"`
	Tariff    *decimal.Decimal `json:"tariff"`
	DayTariff *decimal.Decimal `json:"day_tariff"`
}

// LotResponse represents a lot in API responses
type LotResponse struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Location       string           `json:"location"`
	Address        string           `json:"address"`
	Capacity       int              `json:"capacity"`
	Reserved       int              `json:"reserved"`
	AvailableSpots int              `json:"available_spots"`
	Tariff         decimal.Decimal  `json:"tariff"`
	DayTariff      *decimal.Decimal `json:"day_tariff,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToResponse converts a ParkingLot to its API representation.
func (l *ParkingLot) ToResponse() LotResponse {
	return LotResponse{
		ID:             l.ID,
		Name:           l.Name,
		Location:       l.Location,
		Address:        l.Address,
		Capacity:       l.Capacity,
		Reserved:       l.Reserved,
		AvailableSpots: l.AvailableSpots(),
		Tariff:         l.Tariff,
		DayTariff:      l.DayTariff,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
