package passes

import (
	"time"
)

// HotelPass exempts a vehicle from parking charges at one lot for a date range.
// Hotels buy these for their guests; the gate flow checks them before any money
// is touched.
type HotelPass struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	LicensePlate string    `json:"license_plate" gorm:"size:16;not null;index:idx_hotel_passes_plate_lot"`
	ParkingLotID int64     `json:"parking_lot_id" gorm:"not null;index:idx_hotel_passes_plate_lot"`
	HotelName    string    `json:"hotel_name" gorm:"size:255"`
	ValidFrom    time.Time `json:"valid_from" gorm:"not null"`
	ValidUntil   time.Time `json:"valid_until" gorm:"not null"`
	ExtraMinutes int       `json:"extra_minutes" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (HotelPass) TableName() string {
	return "hotel_passes"
}

// CoversAt reports whether the pass is valid at the given instant. The grace
// window extends validity past ValidUntil so a guest checking out at 11:00
// is not charged for the walk to the car.
func (p *HotelPass) CoversAt(at time.Time) bool {
	if at.Before(p.ValidFrom) {
		return false
	}
	deadline := p.ValidUntil.Add(time.Duration(p.ExtraMinutes) * time.Minute)
	return !at.After(deadline)
}

type CreatePassRequest struct {
	LicensePlate string    `json:"license_plate" binding:"required,plate"`
	ParkingLotID int64     `json:"parking_lot_id" binding:"required"`
	HotelName    string    `json:"hotel_name"`
	ValidFrom    time.Time `json:"valid_from" binding:"required"`
	ValidUntil   time.Time `json:"valid_until" binding:"required"`
	ExtraMinutes int       `json:"extra_minutes" binding:"omitempty,min=0"`
}

type UpdatePassRequest struct {
	HotelName    *string    `json:"hotel_name"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidUntil   *time.Time `json:"valid_until"`
	ExtraMinutes *int       `json:"extra_minutes" binding:"omitempty,min=0"`
}

type PassResponse struct {
	ID           int64     `json:"id"`
	LicensePlate string    `json:"license_plate"`
	ParkingLotID int64     `json:"parking_lot_id"`
	HotelName    string    `json:"hotel_name"`
	ValidFrom    time.Time `json:"valid_from"`
	ValidUntil   time.Time `json:"valid_until"`
	ExtraMinutes int       `json:"extra_minutes"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *HotelPass) ToResponse() PassResponse {
	return PassResponse{
		ID:           p.ID,
		LicensePlate: p.LicensePlate,
		ParkingLotID: p.ParkingLotID,
		HotelName:    p.HotelName,
		ValidFrom:    p.ValidFrom,
		ValidUntil:   p.ValidUntil,
		ExtraMinutes: p.ExtraMinutes,
		CreatedAt:    p.CreatedAt,
	}
}
