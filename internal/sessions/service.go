package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mobypark/internal/gates"
	"mobypark/internal/lots"
	"mobypark/internal/payments"
	"mobypark/internal/pricing"
	"mobypark/internal/shared/validation"
	"mobypark/pkg/logger"
)

// Service drives the session lifecycle: admit a vehicle, price its stay,
// charge it, and open gates, leaving consistent state behind whichever
// external step fails.
type Service interface {
	StartSession(ctx context.Context, req StartSessionRequest) StartResult
	StopSession(ctx context.Context, req StopSessionRequest) StopResult
	UpdateSession(ctx context.Context, id int64, req UpdateSessionRequest) UpdateResult

	GetSession(ctx context.Context, id int64) (*ParkingSession, error)
	ListByLot(ctx context.Context, lotID int64) ([]ParkingSession, error)
	ListByPlate(ctx context.Context, licensePlate string) ([]ParkingSession, error)
	ListByStatus(ctx context.Context, status PaymentStatus) ([]ParkingSession, error)
	ListActive(ctx context.Context) ([]ParkingSession, error)
}

type service struct {
	repo         Repository
	lots         LotGateway
	passes       PassGateway
	payments     payments.Gateway
	gate         GateController
	invoices     InvoiceWriter
	logger       *logger.Logger
	preAuthHours int
	now          func() time.Time
}

func NewService(
	repo Repository,
	lotGateway LotGateway,
	passGateway PassGateway,
	paymentGateway payments.Gateway,
	gateController GateController,
	invoiceWriter InvoiceWriter,
	log *logger.Logger,
	preAuthHours int,
) Service {
	if preAuthHours <= 0 {
		preAuthHours = 1
	}
	return &service{
		repo:         repo,
		lots:         lotGateway,
		passes:       passGateway,
		payments:     paymentGateway,
		gate:         gateController,
		invoices:     invoiceWriter,
		logger:       log,
		preAuthHours: preAuthHours,
		now:          time.Now,
	}
}

// StartSession admits a vehicle. Side effects run in a fixed order so that
// everything before the physical gate action can be undone: capacity is
// reserved, then the session row is written, then the gate opens. The gate
// goes last because a car that has physically entered cannot be rolled back.
func (s *service) StartSession(ctx context.Context, req StartSessionRequest) StartResult {
	plate := validation.NormalizePlate(req.LicensePlate)
	now := s.now()

	// 1. Resolve the lot.
	lot, err := s.lots.GetLot(ctx, req.ParkingLotID)
	if err != nil {
		if errors.Is(err, lots.ErrNotFound) {
			return StartLotNotFound{}
		}
		return StartError{Message: fmt.Sprintf("failed to resolve parking lot: %v", err)}
	}

	// 2. Capacity precheck. The authoritative guard is the atomic reserve in
	// step 6; this just rejects the obvious case before any gateway calls.
	if lot.IsFull() {
		return StartLotFull{}
	}

	// 3. One active session per plate.
	existing, err := s.repo.GetActiveByPlate(ctx, plate)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return StartError{Message: fmt.Sprintf("failed to look up active session: %v", err)}
	}
	if existing != nil {
		return StartAlreadyActive{Existing: existing}
	}

	// 4. Hotel pass coverage skips payment entirely.
	pass, err := s.passes.FindActivePass(ctx, lot.ID, plate, now)
	if err != nil {
		return StartError{Message: fmt.Sprintf("failed to check hotel pass: %v", err)}
	}

	status := PaymentStatusHotelPass
	var passID *int64
	if pass != nil {
		passID = &pass.ID
	} else {
		// 5. Pre-authorize an estimated amount before letting the car in.
		// Free lots (zero tariff) skip the hold.
		estimate := s.entryEstimate(lot)
		if estimate.GreaterThan(decimal.Zero) {
			result, err := s.payments.Preauthorize(ctx, req.CardToken, estimate, req.SimulateFailure)
			if err != nil {
				return StartError{Message: fmt.Sprintf("payment gateway error: %v", err)}
			}
			if !result.Approved {
				s.logger.LogPreAuthDeclined(ctx, plate, result.Reason)
				return StartPreAuthFailed{Reason: result.Reason}
			}
		}
		status = PaymentStatusPreAuthorized
	}

	// 6. Reserve capacity before creating the row. Two concurrent entries on
	// the last spot race here, the loser sees ErrLotFull.
	if err := s.lots.ReserveSpot(ctx, lot.ID); err != nil {
		if errors.Is(err, lots.ErrLotFull) {
			return StartLotFull{}
		}
		if errors.Is(err, lots.ErrNotFound) {
			return StartLotNotFound{}
		}
		return StartError{Message: fmt.Sprintf("failed to reserve spot: %v", err)}
	}

	// 7. Persist the session. On failure, give the spot back.
	session := &ParkingSession{
		ParkingLotID:  lot.ID,
		LicensePlate:  plate,
		Started:       now,
		PaymentStatus: status,
		HotelPassID:   passID,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		s.releaseSpot(ctx, lot.ID)
		if errors.Is(err, ErrActiveSessionExists) {
			return StartAlreadyActive{}
		}
		return StartError{Message: fmt.Sprintf("failed to persist session: %v", err)}
	}

	// 8. Open the entry gate. On failure, undo the row and the reservation.
	if err := s.gate.OpenGate(ctx, lot.ID, plate, gates.DirectionEntry); err != nil {
		if delErr := s.repo.Delete(ctx, session.ID); delErr != nil {
			s.logger.ErrorWithContext(ctx, "failed to delete session after gate failure", delErr,
				map[string]interface{}{"session_id": session.ID})
		}
		s.releaseSpot(ctx, lot.ID)
		return StartError{Message: fmt.Sprintf("gate failed to open: %v", err)}
	}

	s.logger.LogSessionStarted(ctx, session.ID, lot.ID, plate)
	return StartSuccess{Session: session}
}

// StopSession prices the stay and lets the vehicle out. A declined payment
// leaves the session active so the driver can retry; a gate failure after
// payment flags the session for operator follow-up instead of reversing
// the charge.
func (s *service) StopSession(ctx context.Context, req StopSessionRequest) StopResult {
	plate := validation.NormalizePlate(req.LicensePlate)
	now := s.now()

	// 1. Find the active session for the plate.
	session, err := s.repo.GetActiveByPlate(ctx, plate)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return StopError{Message: fmt.Sprintf("failed to look up session: %v", err)}
		}
		recent, recentErr := s.repo.GetMostRecentByPlate(ctx, plate)
		if recentErr == nil && recent.Stopped != nil {
			return StopAlreadyStopped{Session: recent}
		}
		return StopPlateNotFound{}
	}

	// 2. Resolve the lot for its tariffs.
	lot, err := s.lots.GetLot(ctx, session.ParkingLotID)
	if err != nil {
		return StopError{Message: fmt.Sprintf("failed to resolve parking lot: %v", err)}
	}

	// 3/4. Price the stay. A pass still inside its grace window makes the
	// whole stay free; an expired pass bills the full duration at tariff.
	cost := decimal.Zero
	quote := pricing.Quote{}
	covered := false
	if session.HotelPassID != nil {
		pass, err := s.passes.GetPass(ctx, *session.HotelPassID)
		if err != nil {
			return StopError{Message: fmt.Sprintf("failed to resolve hotel pass: %v", err)}
		}
		covered = pass.CoversAt(now)
	}
	if !covered {
		q, err := pricing.Calculate(lot.PricingTariffs(), session.Started, now)
		if err != nil {
			return StopError{Message: fmt.Sprintf("pricing failed: %v", err)}
		}
		quote = q
		cost = q.Cost
	}

	// 5. Charge when anything is owed.
	if cost.GreaterThan(decimal.Zero) {
		result, err := s.payments.Preauthorize(ctx, req.CardToken, cost, req.SimulateFailure)
		if err != nil {
			return StopError{Message: fmt.Sprintf("payment gateway error: %v", err)}
		}
		if !result.Approved {
			s.logger.LogPreAuthDeclined(ctx, plate, result.Reason)
			return StopPaymentFailed{Reason: result.Reason}
		}
	}

	// 6. Mark the session stopped and paid.
	stoppedAt := now
	session.Stopped = &stoppedAt
	session.Cost = &cost
	session.PaymentStatus = PaymentStatusPaid
	if err := s.repo.Update(ctx, session); err != nil {
		return StopError{Message: fmt.Sprintf("failed to update session after payment: %v", err)}
	}

	// 7. Open the exit gate. The charge is not reversed on failure; the
	// session goes back to active with its cost retained so an operator can
	// see a paid vehicle still inside.
	if err := s.gate.OpenGate(ctx, lot.ID, plate, gates.DirectionExit); err != nil {
		session.Stopped = nil
		if updErr := s.repo.Update(ctx, session); updErr != nil {
			s.logger.ErrorWithContext(ctx, "failed to flag irregular session", updErr,
				map[string]interface{}{"session_id": session.ID})
		}
		s.logger.LogIrregularSession(ctx, session.ID, "payment successful but gate error")
		return StopError{Message: "payment successful but gate error"}
	}

	// 8. Free the spot and record the invoice.
	s.releaseSpot(ctx, lot.ID)
	if !covered && s.invoices != nil {
		if _, err := s.invoices.RecordStop(ctx, session.ID, plate, cost, quote.BillableHours, quote.BillableDays, true); err != nil {
			s.logger.ErrorWithContext(ctx, "failed to record invoice", err,
				map[string]interface{}{"session_id": session.ID})
		}
	}

	s.logger.LogSessionStopped(ctx, session.ID, lot.ID, cost.StringFixed(2))
	return StopSuccess{Session: session, AmountCharged: cost}
}

// UpdateSession applies an administrative correction. Changing the stop time
// reprices the stay; changing only the payment status does not.
func (s *service) UpdateSession(ctx context.Context, id int64, req UpdateSessionRequest) UpdateResult {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UpdateNotFound{}
		}
		return UpdateError{Message: fmt.Sprintf("failed to load session: %v", err)}
	}

	updated := *session

	if req.PaymentStatus != nil {
		if !IsValidPaymentStatus(*req.PaymentStatus) {
			return UpdateError{Message: fmt.Sprintf("invalid payment status: %s", *req.PaymentStatus)}
		}
		updated.PaymentStatus = PaymentStatus(*req.PaymentStatus)
	}

	if req.Stopped != nil {
		if req.Stopped.Before(session.Started) {
			return UpdateError{Message: "stopped time cannot be before started time"}
		}
		stopChanged := session.Stopped == nil || !session.Stopped.Equal(*req.Stopped)
		updated.Stopped = req.Stopped
		if stopChanged {
			lot, err := s.lots.GetLot(ctx, session.ParkingLotID)
			if err != nil {
				return UpdateError{Message: fmt.Sprintf("failed to resolve parking lot: %v", err)}
			}
			quote, err := pricing.Calculate(lot.PricingTariffs(), session.Started, *req.Stopped)
			if err != nil {
				return UpdateError{Message: fmt.Sprintf("pricing failed: %v", err)}
			}
			updated.Cost = &quote.Cost
		}
	}

	if sessionsEqual(session, &updated) {
		return UpdateNoChanges{Session: session}
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return UpdateError{Message: fmt.Sprintf("failed to update session: %v", err)}
	}
	return UpdateSuccess{Session: &updated}
}

func (s *service) GetSession(ctx context.Context, id int64) (*ParkingSession, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByLot(ctx context.Context, lotID int64) ([]ParkingSession, error) {
	return s.repo.ListByLot(ctx, lotID)
}

func (s *service) ListByPlate(ctx context.Context, licensePlate string) ([]ParkingSession, error) {
	return s.repo.ListByPlate(ctx, validation.NormalizePlate(licensePlate))
}

func (s *service) ListByStatus(ctx context.Context, status PaymentStatus) ([]ParkingSession, error) {
	return s.repo.ListByStatus(ctx, status)
}

func (s *service) ListActive(ctx context.Context) ([]ParkingSession, error) {
	return s.repo.ListActive(ctx)
}

// entryEstimate is the hold amount requested before a car enters. A few hours
// at the hourly rate, capped at the day tariff when one exists.
func (s *service) entryEstimate(lot *lots.ParkingLot) decimal.Decimal {
	estimate := lot.Tariff.Mul(decimal.NewFromInt(int64(s.preAuthHours)))
	if lot.DayTariff != nil && estimate.GreaterThan(*lot.DayTariff) {
		estimate = *lot.DayTariff
	}
	return estimate
}

func (s *service) releaseSpot(ctx context.Context, lotID int64) {
	if err := s.lots.ReleaseSpot(ctx, lotID); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to release spot", err,
			map[string]interface{}{"parking_lot_id": lotID})
	}
}

func sessionsEqual(a, b *ParkingSession) bool {
	if a.PaymentStatus != b.PaymentStatus {
		return false
	}
	if (a.Stopped == nil) != (b.Stopped == nil) {
		return false
	}
	if a.Stopped != nil && !a.Stopped.Equal(*b.Stopped) {
		return false
	}
	if (a.Cost == nil) != (b.Cost == nil) {
		return false
	}
	if a.Cost != nil && !a.Cost.Equal(*b.Cost) {
		return false
	}
	return true
}
