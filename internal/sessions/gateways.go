package sessions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"mobypark/internal/gates"
	"mobypark/internal/invoices"
	"mobypark/internal/lots"
	"mobypark/internal/passes"
)

// Collaborator contracts the lifecycle flows depend on. The concrete module
// services satisfy these directly; tests swap in fakes.

// LotGateway resolves lots and mutates their capacity counter.
type LotGateway interface {
	GetLot(ctx context.Context, id int64) (*lots.ParkingLot, error)
	ReserveSpot(ctx context.Context, id int64) error
	ReleaseSpot(ctx context.Context, id int64) error
}

// PassGateway answers hotel pass coverage questions.
type PassGateway interface {
	FindActivePass(ctx context.Context, lotID int64, licensePlate string, at time.Time) (*passes.HotelPass, error)
	GetPass(ctx context.Context, id int64) (*passes.HotelPass, error)
}

// GateController opens a lot's physical barrier.
type GateController interface {
	OpenGate(ctx context.Context, lotID int64, licensePlate string, direction gates.Direction) error
}

// InvoiceWriter records the billing outcome of a finished session.
type InvoiceWriter interface {
	RecordStop(ctx context.Context, sessionID int64, licensePlate string, amount decimal.Decimal, billableHours, billableDays int, paid bool) (*invoices.Invoice, error)
}
