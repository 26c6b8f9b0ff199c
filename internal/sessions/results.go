package sessions

import (
	"github.com/shopspring/decimal"
)

// Every lifecycle operation returns a closed set of outcomes instead of a
// bare error. Controllers type-switch on the concrete variant to pick a
// status code; services never leak half-distinguished errors upward.

// StartResult is the outcome of starting a session.
type StartResult interface {
	isStartResult()
}

type StartSuccess struct {
	Session *ParkingSession
}

type StartLotNotFound struct{}

type StartLotFull struct{}

type StartAlreadyActive struct {
	Existing *ParkingSession
}

type StartPreAuthFailed struct {
	Reason string
}

type StartError struct {
	Message string
}

func (StartSuccess) isStartResult()       {}
func (StartLotNotFound) isStartResult()   {}
func (StartLotFull) isStartResult()       {}
func (StartAlreadyActive) isStartResult() {}
func (StartPreAuthFailed) isStartResult() {}
func (StartError) isStartResult()         {}

// StopResult is the outcome of stopping a session.
type StopResult interface {
	isStopResult()
}

type StopSuccess struct {
	Session       *ParkingSession
	AmountCharged decimal.Decimal
}

type StopPlateNotFound struct{}

type StopAlreadyStopped struct {
	Session *ParkingSession
}

type StopPaymentFailed struct {
	Reason string
}

type StopError struct {
	Message string
}

func (StopSuccess) isStopResult()        {}
func (StopPlateNotFound) isStopResult()  {}
func (StopAlreadyStopped) isStopResult() {}
func (StopPaymentFailed) isStopResult()  {}
func (StopError) isStopResult()          {}

// UpdateResult is the outcome of an administrative session edit.
type UpdateResult interface {
	isUpdateResult()
}

type UpdateSuccess struct {
	Session *ParkingSession
}

// UpdateNoChanges means the patch matched current state field for field, so
// no write was issued.
type UpdateNoChanges struct {
	Session *ParkingSession
}

type UpdateNotFound struct{}

type UpdateError struct {
	Message string
}

func (UpdateSuccess) isUpdateResult()   {}
func (UpdateNoChanges) isUpdateResult() {}
func (UpdateNotFound) isUpdateResult()  {}
func (UpdateError) isUpdateResult()     {}
