package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobypark/internal/gates"
	"mobypark/internal/invoices"
	"mobypark/internal/lots"
	"mobypark/internal/passes"
	"mobypark/internal/payments"
	"mobypark/pkg/logger"
)

// --- fakes ---

type fakeRepo struct {
	sessions  map[int64]*ParkingSession
	nextID    int64
	createErr   error
	updateErr   error
	updateCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[int64]*ParkingSession), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, s *ParkingSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.sessions {
		if existing.LicensePlate == s.LicensePlate && existing.Stopped == nil {
			return ErrActiveSessionExists
		}
	}
	s.ID = f.nextID
	f.nextID++
	copied := *s
	f.sessions[s.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*ParkingSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeRepo) GetActiveByPlate(_ context.Context, plate string) (*ParkingSession, error) {
	for _, s := range f.sessions {
		if s.LicensePlate == plate && s.Stopped == nil {
			copied := *s
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) GetMostRecentByPlate(_ context.Context, plate string) (*ParkingSession, error) {
	var latest *ParkingSession
	for _, s := range f.sessions {
		if s.LicensePlate != plate {
			continue
		}
		if latest == nil || s.Started.After(latest.Started) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeRepo) Update(_ context.Context, s *ParkingSession) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	copied := *s
	f.sessions[s.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeRepo) ListByLot(_ context.Context, lotID int64) ([]ParkingSession, error) {
	var out []ParkingSession
	for _, s := range f.sessions {
		if s.ParkingLotID == lotID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByPlate(_ context.Context, plate string) ([]ParkingSession, error) {
	var out []ParkingSession
	for _, s := range f.sessions {
		if s.LicensePlate == plate {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByStatus(_ context.Context, status PaymentStatus) ([]ParkingSession, error) {
	var out []ParkingSession
	for _, s := range f.sessions {
		if s.PaymentStatus == status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActive(_ context.Context) ([]ParkingSession, error) {
	var out []ParkingSession
	for _, s := range f.sessions {
		if s.Stopped == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeLots struct {
	lot        *lots.ParkingLot
	reserveErr error
	releaseErr error
	reserved   int
	released   int
}

func (f *fakeLots) GetLot(_ context.Context, id int64) (*lots.ParkingLot, error) {
	if f.lot == nil || f.lot.ID != id {
		return nil, lots.ErrNotFound
	}
	copied := *f.lot
	return &copied, nil
}

func (f *fakeLots) ReserveSpot(_ context.Context, id int64) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	if f.lot == nil || f.lot.ID != id {
		return lots.ErrNotFound
	}
	if f.lot.Reserved >= f.lot.Capacity {
		return lots.ErrLotFull
	}
	f.lot.Reserved++
	f.reserved++
	return nil
}

func (f *fakeLots) ReleaseSpot(_ context.Context, id int64) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	if f.lot == nil || f.lot.ID != id {
		return lots.ErrNotFound
	}
	f.lot.Reserved--
	f.released++
	return nil
}

type fakePasses struct {
	active *passes.HotelPass
	byID   map[int64]*passes.HotelPass
}

func (f *fakePasses) FindActivePass(_ context.Context, lotID int64, plate string, _ time.Time) (*passes.HotelPass, error) {
	if f.active != nil && f.active.ParkingLotID == lotID && f.active.LicensePlate == plate {
		return f.active, nil
	}
	return nil, nil
}

func (f *fakePasses) GetPass(_ context.Context, id int64) (*passes.HotelPass, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, passes.ErrNotFound
}

type fakePayments struct {
	decline bool
	reason  string
	err     error
	calls   int
	lastAmt decimal.Decimal
}

func (f *fakePayments) Preauthorize(_ context.Context, _ string, amount decimal.Decimal, simulateDecline bool) (payments.Result, error) {
	f.calls++
	f.lastAmt = amount
	if f.err != nil {
		return payments.Result{}, f.err
	}
	if f.decline || simulateDecline {
		reason := f.reason
		if reason == "" {
			reason = payments.DeclineReasonInsufficientFunds
		}
		return payments.Result{Approved: false, Reason: reason, Amount: amount}, nil
	}
	return payments.Result{Approved: true, Reference: "ref", Amount: amount}, nil
}

type fakeGate struct {
	err   error
	calls []gates.Direction
}

func (f *fakeGate) OpenGate(_ context.Context, _ int64, _ string, direction gates.Direction) error {
	f.calls = append(f.calls, direction)
	return f.err
}

type fakeInvoices struct {
	recorded []invoices.Invoice
}

func (f *fakeInvoices) RecordStop(_ context.Context, sessionID int64, plate string, amount decimal.Decimal, hours, days int, paid bool) (*invoices.Invoice, error) {
	inv := invoices.Invoice{
		ParkingSessionID: sessionID,
		LicensePlate:     plate,
		Amount:           amount,
		BillableHours:    hours,
		BillableDays:     days,
	}
	f.recorded = append(f.recorded, inv)
	return &inv, nil
}

// --- harness ---

type harness struct {
	repo     *fakeRepo
	lots     *fakeLots
	passes   *fakePasses
	payments *fakePayments
	gate     *fakeGate
	invoices *fakeInvoices
	service  *service
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		repo: newFakeRepo(),
		lots: &fakeLots{
			lot: &lots.ParkingLot{
				ID:        1,
				Name:      "Central Garage",
				Capacity:  10,
				Reserved:  0,
				Tariff:    decimal.RequireFromString("5"),
				DayTariff: decimalPtr("20"),
			},
		},
		passes:   &fakePasses{byID: make(map[int64]*passes.HotelPass)},
		payments: &fakePayments{},
		gate:     &fakeGate{},
		invoices: &fakeInvoices{},
	}

	svc := NewService(h.repo, h.lots, h.passes, h.payments, h.gate, h.invoices, logger.New(), 3)
	h.service = svc.(*service)
	return h
}

func (h *harness) atTime(t time.Time) {
	h.service.now = func() time.Time { return t }
}

var baseTime = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

// --- start flow ---

func TestStartSessionSuccess(t *testing.T) {
	h := newHarness(t)
	h.atTime(baseTime)

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "ab-12-cd",
		ParkingLotID: 1,
		CardToken:    "tok_123",
	})

	success, ok := result.(StartSuccess)
	require.True(t, ok, "expected StartSuccess, got %T", result)
	assert.Equal(t, "AB-12-CD", success.Session.LicensePlate)
	assert.Equal(t, PaymentStatusPreAuthorized, success.Session.PaymentStatus)
	assert.True(t, success.Session.IsActive())
	assert.Equal(t, 1, h.lots.reserved)
	assert.Equal(t, []gates.Direction{gates.DirectionEntry}, h.gate.calls)
	assert.Equal(t, 1, h.payments.calls)
	// Entry hold: 3h x 5 = 15, below the 20 day cap.
	assert.True(t, h.payments.lastAmt.Equal(decimal.RequireFromString("15")))
}

func TestStartSessionLotNotFound(t *testing.T) {
	h := newHarness(t)

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "AB-12-CD",
		ParkingLotID: 99,
	})

	assert.IsType(t, StartLotNotFound{}, result)
	assert.Equal(t, 0, h.lots.reserved)
}

func TestStartSessionLotFull(t *testing.T) {
	h := newHarness(t)
	h.lots.lot.Reserved = h.lots.lot.Capacity

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "AB-12-CD",
		ParkingLotID: 1,
	})

	assert.IsType(t, StartLotFull{}, result)
	assert.Equal(t, 0, h.lots.reserved)
	assert.Equal(t, 0, h.payments.calls)
	assert.Empty(t, h.gate.calls)
}

func TestStartSessionAlreadyActive(t *testing.T) {
	h := newHarness(t)
	h.atTime(baseTime)

	first := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "AB-12-CD", ParkingLotID: 1, CardToken: "tok",
	})
	require.IsType(t, StartSuccess{}, first)

	second := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "ab-12-cd", ParkingLotID: 1, CardToken: "tok",
	})
	assert.IsType(t, StartAlreadyActive{}, second)
	assert.Equal(t, 1, h.lots.reserved)
}

func TestStartSessionPreAuthDeclined(t *testing.T) {
	h := newHarness(t)
	h.payments.decline = true
	h.payments.reason = payments.DeclineReasonInsufficientFunds

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "AB-12-CD", ParkingLotID: 1, CardToken: "tok",
	})

	failed, ok := result.(StartPreAuthFailed)
	require.True(t, ok, "expected StartPreAuthFailed, got %T", result)
	assert.Equal(t, payments.DeclineReasonInsufficientFunds, failed.Reason)
	assert.Equal(t, 0, h.lots.reserved)
	assert.Empty(t, h.repo.sessions)
}

func TestStartSessionHotelPassSkipsPayment(t *testing.T) {
	h := newHarness(t)
	h.atTime(baseTime)
	h.passes.active = &passes.HotelPass{
		ID:           7,
		LicensePlate: "AB-12-CD",
		ParkingLotID: 1,
		ValidFrom:    baseTime.Add(-time.Hour),
		ValidUntil:   baseTime.Add(48 * time.Hour),
	}

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "ab-12-cd", ParkingLotID: 1,
	})

	success, ok := result.(StartSuccess)
	require.True(t, ok, "expected StartSuccess, got %T", result)
	assert.Equal(t, PaymentStatusHotelPass, success.Session.PaymentStatus)
	require.NotNil(t, success.Session.HotelPassID)
	assert.Equal(t, int64(7), *success.Session.HotelPassID)
	assert.Equal(t, 0, h.payments.calls)
}

func TestStartSessionGateFailureCompensates(t *testing.T) {
	h := newHarness(t)
	h.gate.err = errors.New("barrier jammed")

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "AB-12-CD", ParkingLotID: 1, CardToken: "tok",
	})

	assert.IsType(t, StartError{}, result)
	// Session row deleted, reservation released.
	assert.Empty(t, h.repo.sessions)
	assert.Equal(t, 0, h.lots.lot.Reserved)
	assert.Equal(t, 1, h.lots.released)
}

func TestStartSessionPersistFailureReleasesSpot(t *testing.T) {
	h := newHarness(t)
	h.repo.createErr = errors.New("db down")

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "AB-12-CD", ParkingLotID: 1, CardToken: "tok",
	})

	assert.IsType(t, StartError{}, result)
	assert.Equal(t, 0, h.lots.lot.Reserved)
	assert.Empty(t, h.gate.calls)
}

func TestStartSessionReserveRaceMapsToLotFull(t *testing.T) {
	h := newHarness(t)
	h.lots.reserveErr = lots.ErrLotFull

	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: "AB-12-CD", ParkingLotID: 1, CardToken: "tok",
	})

	assert.IsType(t, StartLotFull{}, result)
	assert.Empty(t, h.repo.sessions)
}

// --- stop flow ---

func startActive(t *testing.T, h *harness, plate string, startedAt time.Time) *ParkingSession {
	t.Helper()
	h.atTime(startedAt)
	result := h.service.StartSession(context.Background(), StartSessionRequest{
		LicensePlate: plate, ParkingLotID: 1, CardToken: "tok",
	})
	success, ok := result.(StartSuccess)
	require.True(t, ok, "expected StartSuccess, got %T", result)
	return success.Session
}

func TestStopSessionSuccess(t *testing.T) {
	h := newHarness(t)
	startActive(t, h, "AB-12-CD", baseTime)
	h.payments.calls = 0
	h.atTime(baseTime.Add(3 * time.Hour))

	result := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "ab-12-cd", CardToken: "tok",
	})

	success, ok := result.(StopSuccess)
	require.True(t, ok, "expected StopSuccess, got %T", result)
	// 3h x 5 = 15, below the 20 day cap.
	assert.True(t, success.AmountCharged.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, PaymentStatusPaid, success.Session.PaymentStatus)
	require.NotNil(t, success.Session.Stopped)
	require.NotNil(t, success.Session.Cost)
	assert.Equal(t, 1, h.payments.calls)
	assert.Equal(t, 0, h.lots.lot.Reserved)
	require.Len(t, h.invoices.recorded, 1)
	assert.True(t, h.invoices.recorded[0].Amount.Equal(decimal.RequireFromString("15")))
}

func TestStopSessionPlateNotFound(t *testing.T) {
	h := newHarness(t)

	result := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "ZZ-99-ZZ",
	})

	assert.IsType(t, StopPlateNotFound{}, result)
}

func TestStopSessionAlreadyStopped(t *testing.T) {
	h := newHarness(t)
	startActive(t, h, "AB-12-CD", baseTime)
	h.atTime(baseTime.Add(2 * time.Hour))

	first := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "AB-12-CD", CardToken: "tok",
	})
	require.IsType(t, StopSuccess{}, first)

	second := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "AB-12-CD", CardToken: "tok",
	})
	assert.IsType(t, StopAlreadyStopped{}, second)
}

func TestStopSessionPaymentDeclinedKeepsSessionActive(t *testing.T) {
	h := newHarness(t)
	session := startActive(t, h, "AB-12-CD", baseTime)
	h.payments.decline = true
	h.atTime(baseTime.Add(2 * time.Hour))

	result := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "AB-12-CD", CardToken: "tok",
	})

	assert.IsType(t, StopPaymentFailed{}, result)

	stored, err := h.repo.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Stopped, "session must stay active after a declined payment")
	assert.Equal(t, 1, h.lots.lot.Reserved)
	assert.Empty(t, h.invoices.recorded)
}

func TestStopSessionHotelPassCoverage(t *testing.T) {
	h := newHarness(t)
	h.passes.active = &passes.HotelPass{
		ID:           7,
		LicensePlate: "AB-12-CD",
		ParkingLotID: 1,
		ValidFrom:    baseTime.Add(-time.Hour),
		ValidUntil:   baseTime.Add(48 * time.Hour),
		ExtraMinutes: 30,
	}
	h.passes.byID[7] = h.passes.active
	startActive(t, h, "AB-12-CD", baseTime)
	h.atTime(baseTime.Add(5 * time.Hour))

	result := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "AB-12-CD",
	})

	success, ok := result.(StopSuccess)
	require.True(t, ok, "expected StopSuccess, got %T", result)
	assert.True(t, success.AmountCharged.IsZero())
	assert.Equal(t, PaymentStatusPaid, success.Session.PaymentStatus)
	assert.Equal(t, 0, h.payments.calls, "covered stay must never touch the payment gateway")
	assert.Empty(t, h.invoices.recorded, "covered stay produces no invoice")
}

func TestStopSessionExpiredPassBillsFullDuration(t *testing.T) {
	h := newHarness(t)
	h.passes.active = &passes.HotelPass{
		ID:           7,
		LicensePlate: "AB-12-CD",
		ParkingLotID: 1,
		ValidFrom:    baseTime.Add(-time.Hour),
		ValidUntil:   baseTime.Add(time.Hour),
		ExtraMinutes: 15,
	}
	h.passes.byID[7] = h.passes.active
	startActive(t, h, "AB-12-CD", baseTime)
	h.atTime(baseTime.Add(3 * time.Hour))

	result := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "AB-12-CD", CardToken: "tok",
	})

	success, ok := result.(StopSuccess)
	require.True(t, ok, "expected StopSuccess, got %T", result)
	// Full 3 hours billed, not just the uncovered tail.
	assert.True(t, success.AmountCharged.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, 1, h.payments.calls)
}

func TestStopSessionGateFailureFlagsIrregular(t *testing.T) {
	h := newHarness(t)
	session := startActive(t, h, "AB-12-CD", baseTime)
	h.atTime(baseTime.Add(2 * time.Hour))
	h.gate.err = errors.New("barrier jammed")
	h.repo.updateCalls = 0

	result := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "AB-12-CD", CardToken: "tok",
	})

	stopErr, ok := result.(StopError)
	require.True(t, ok, "expected StopError, got %T", result)
	assert.Contains(t, stopErr.Message, "payment successful but gate error")
	assert.Equal(t, 2, h.repo.updateCalls, "exactly two updates: paid, then irregular")

	stored, err := h.repo.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Stopped, "irregular exit leaves the session active")
	assert.Equal(t, PaymentStatusPaid, stored.PaymentStatus, "the charge is not reversed")
	require.NotNil(t, stored.Cost)
	assert.Equal(t, 1, h.lots.lot.Reserved, "the spot is not released")
}

func TestStopSessionUpdateFailureAfterPayment(t *testing.T) {
	h := newHarness(t)
	startActive(t, h, "AB-12-CD", baseTime)
	h.atTime(baseTime.Add(2 * time.Hour))
	h.repo.updateErr = errors.New("db down")

	result := h.service.StopSession(context.Background(), StopSessionRequest{
		LicensePlate: "AB-12-CD", CardToken: "tok",
	})

	stopErr, ok := result.(StopError)
	require.True(t, ok, "expected StopError, got %T", result)
	assert.Contains(t, stopErr.Message, "failed to update session after payment")
	assert.Len(t, h.gate.calls, 1, "only the entry gate opened; exit must not open when the update fails")
}

// --- administrative update ---

func TestUpdateSessionNoChanges(t *testing.T) {
	h := newHarness(t)
	session := startActive(t, h, "AB-12-CD", baseTime)
	status := string(PaymentStatusPreAuthorized)
	h.repo.updateCalls = 0

	result := h.service.UpdateSession(context.Background(), session.ID, UpdateSessionRequest{
		PaymentStatus: &status,
	})

	assert.IsType(t, UpdateNoChanges{}, result)
	assert.Equal(t, 0, h.repo.updateCalls, "identical patch must not write")
}

func TestUpdateSessionStatusOnlySkipsRepricing(t *testing.T) {
	h := newHarness(t)
	session := startActive(t, h, "AB-12-CD", baseTime)
	status := string(PaymentStatusFailed)

	result := h.service.UpdateSession(context.Background(), session.ID, UpdateSessionRequest{
		PaymentStatus: &status,
	})

	success, ok := result.(UpdateSuccess)
	require.True(t, ok, "expected UpdateSuccess, got %T", result)
	assert.Equal(t, PaymentStatusFailed, success.Session.PaymentStatus)
	assert.Nil(t, success.Session.Cost, "status-only edits must not recalculate cost")
}

func TestUpdateSessionStopRecalculatesCost(t *testing.T) {
	h := newHarness(t)
	session := startActive(t, h, "AB-12-CD", baseTime)
	stoppedAt := baseTime.Add(3 * time.Hour)

	result := h.service.UpdateSession(context.Background(), session.ID, UpdateSessionRequest{
		Stopped: &stoppedAt,
	})

	success, ok := result.(UpdateSuccess)
	require.True(t, ok, "expected UpdateSuccess, got %T", result)
	require.NotNil(t, success.Session.Cost)
	assert.True(t, success.Session.Cost.Equal(decimal.RequireFromString("15")))
}

func TestUpdateSessionStopBeforeStart(t *testing.T) {
	h := newHarness(t)
	session := startActive(t, h, "AB-12-CD", baseTime)
	stoppedAt := baseTime.Add(-time.Hour)
	h.repo.updateCalls = 0

	result := h.service.UpdateSession(context.Background(), session.ID, UpdateSessionRequest{
		Stopped: &stoppedAt,
	})

	updateErr, ok := result.(UpdateError)
	require.True(t, ok, "expected UpdateError, got %T", result)
	assert.Contains(t, updateErr.Message, "stopped time cannot be before started time")
	assert.Equal(t, 0, h.repo.updateCalls)
}

func TestUpdateSessionNotFound(t *testing.T) {
	h := newHarness(t)

	result := h.service.UpdateSession(context.Background(), 404, UpdateSessionRequest{})

	assert.IsType(t, UpdateNotFound{}, result)
}
