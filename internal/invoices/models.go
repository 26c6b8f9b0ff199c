package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPaid    Status = "PAID"
	StatusPending Status = "PENDING"
)

// Invoice is the billing record cut when a parking session ends. Covered
// sessions never produce one.
type Invoice struct {
	ID               int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Number           string          `json:"number" gorm:"size:64;uniqueIndex;not null"`
	LicensePlate     string          `json:"license_plate" gorm:"size:16;not null;index"`
	ParkingSessionID int64           `json:"parking_session_id" gorm:"not null;index"`
	BillableHours    int             `json:"billable_hours"`
	BillableDays     int             `json:"billable_days"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status           Status          `json:"status" gorm:"size:16;not null;default:'PENDING'"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceResponse struct {
	ID               int64           `json:"id"`
	Number           string          `json:"number"`
	LicensePlate     string          `json:"license_plate"`
	ParkingSessionID int64           `json:"parking_session_id"`
	BillableHours    int             `json:"billable_hours"`
	BillableDays     int             `json:"billable_days"`
	Amount           decimal.Decimal `json:"amount"`
	Status           Status          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (i *Invoice) ToResponse() InvoiceResponse {
	return InvoiceResponse{
		ID:               i.ID,
		Number:           i.Number,
		LicensePlate:     i.LicensePlate,
		ParkingSessionID: i.ParkingSessionID,
		BillableHours:    i.BillableHours,
		BillableDays:     i.BillableDays,
		Amount:           i.Amount,
		Status:           i.Status,
		CreatedAt:        i.CreatedAt,
	}
}
