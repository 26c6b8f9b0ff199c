package gates

import (
	"encoding/json"
	"time"
)

type Direction string

const (
	DirectionEntry Direction = "ENTRY"
	DirectionExit  Direction = "EXIT"
)

// GateCommand is the message the barrier controllers consume. One command
// opens one gate for one vehicle.
type GateCommand struct {
	ParkingLotID int64     `json:"parking_lot_id"`
	LicensePlate string    `json:"license_plate"`
	Direction    Direction `json:"direction"`
	IssuedAt     time.Time `json:"issued_at"`
}

func (g *GateCommand) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}
