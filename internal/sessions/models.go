package sessions

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParkingSession tracks one vehicle from gate entry to gate exit. A nil
// Stopped timestamp means the vehicle is still inside.
type ParkingSession struct {
	ID            int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	ParkingLotID  int64            `json:"parking_lot_id" gorm:"not null;index"`
	LicensePlate  string           `json:"license_plate" gorm:"size:16;not null;index"`
	Started       time.Time        `json:"started" gorm:"not null"`
	Stopped       *time.Time       `json:"stopped"`
	Cost          *decimal.Decimal `json:"cost" gorm:"type:decimal(12,2)"`
	PaymentStatus PaymentStatus    `json:"payment_status" gorm:"size:32;not null"`
	HotelPassID   *int64           `json:"hotel_pass_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (ParkingSession) TableName() string {
	return "parking_sessions"
}

// IsActive reports whether the vehicle is still inside the lot.
func (s *ParkingSession) IsActive() bool {
	return s.Stopped == nil
}

type SessionResponse struct {
	ID            int64            `json:"id"`
	ParkingLotID  int64            `json:"parking_lot_id"`
	LicensePlate  string           `json:"license_plate"`
	Started       time.Time        `json:"started"`
	Stopped       *time.Time       `json:"stopped"`
	Cost          *decimal.Decimal `json:"cost"`
	PaymentStatus PaymentStatus    `json:"payment_status"`
	HotelPassID   *int64           `json:"hotel_pass_id"`
	Active        bool             `json:"active"`
}

func (s *ParkingSession) ToResponse() SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		ParkingLotID:  s.ParkingLotID,
		LicensePlate:  s.LicensePlate,
		Started:       s.Started,
		Stopped:       s.Stopped,
		Cost:          s.Cost,
		PaymentStatus: s.PaymentStatus,
		HotelPassID:   s.HotelPassID,
		Active:        s.IsActive(),
	}
}
