package sessions

import "time"

// StartSessionRequest is what the entry terminal sends when a vehicle pulls up.
type StartSessionRequest struct {
	LicensePlate    string `json:"license_plate" binding:"required,plate"`
	ParkingLotID    int64  `json:"parking_lot_id" binding:"required"`
	CardToken       string `json:"card_token"`
	SimulateFailure bool   `json:"simulate_failure"`
}

// StopSessionRequest is what the exit terminal sends.
type StopSessionRequest struct {
	LicensePlate    string `json:"license_plate" binding:"required,plate"`
	CardToken       string `json:"card_token"`
	SimulateFailure bool   `json:"simulate_failure"`
}

// UpdateSessionRequest is the administrative correction surface. Only the
// fields present are touched.
type UpdateSessionRequest struct {
	Stopped       *time.Time `json:"stopped"`
	PaymentStatus *string    `json:"payment_status"`
}
