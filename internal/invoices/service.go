package invoices

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	// RecordStop writes the invoice for a finished session. Paid is true when
	// the exit pre-authorization went through.
	RecordStop(ctx context.Context, sessionID int64, licensePlate string, amount decimal.Decimal, billableHours, billableDays int, paid bool) (*Invoice, error)

	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	ListByPlate(ctx context.Context, licensePlate string) ([]Invoice, error)
	MarkPaid(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RecordStop(ctx context.Context, sessionID int64, licensePlate string, amount decimal.Decimal, billableHours, billableDays int, paid bool) (*Invoice, error) {
	status := StatusPending
	if paid {
		status = StatusPaid
	}

	invoice := &Invoice{
		Number:           newInvoiceNumber(),
		LicensePlate:     licensePlate,
		ParkingSessionID: sessionID,
		BillableHours:    billableHours,
		BillableDays:     billableDays,
		Amount:           amount,
		Status:           status,
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to record invoice: %w", err)
	}
	return invoice, nil
}

func (s *service) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByPlate(ctx context.Context, licensePlate string) ([]Invoice, error) {
	return s.repo.ListByPlate(ctx, licensePlate)
}

func (s *service) MarkPaid(ctx context.Context, id int64) error {
	return s.repo.UpdateStatus(ctx, id, StatusPaid)
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}
