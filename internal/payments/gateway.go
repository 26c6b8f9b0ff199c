package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the outcome of a pre-authorization attempt. A decline is not an
// error, the gateway answered, the answer was no.
type Result struct {
	Approved  bool            `json:"approved"`
	Reason    string          `json:"reason,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// Gateway places holds on a payment card before a vehicle is let in or out.
type Gateway interface {
	Preauthorize(ctx context.Context, cardToken string, amount decimal.Decimal, simulateDecline bool) (Result, error)
}

const (
	DeclineReasonInsufficientFunds = "Insufficient funds"
	DeclineReasonInvalidAmount     = "Invalid amount"
	DeclineReasonMissingCard       = "Missing card token"
)

// simulatedGateway approves or declines locally. Stands in for a PSP
// integration in development and test environments.
type simulatedGateway struct {
	delay time.Duration
}

func NewSimulatedGateway() Gateway {
	return &simulatedGateway{}
}

// NewSimulatedGatewayWithDelay adds an artificial response delay for load tests.
func NewSimulatedGatewayWithDelay(delay time.Duration) Gateway {
	return &simulatedGateway{delay: delay}
}

func (g *simulatedGateway) Preauthorize(ctx context.Context, cardToken string, amount decimal.Decimal, simulateDecline bool) (Result, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return Result{}, fmt.Errorf("preauthorization cancelled: %w", ctx.Err())
		}
	}

	if cardToken == "" {
		return Result{Approved: false, Reason: DeclineReasonMissingCard, Amount: amount}, nil
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Result{Approved: false, Reason: DeclineReasonInvalidAmount, Amount: amount}, nil
	}
	if simulateDecline {
		return Result{Approved: false, Reason: DeclineReasonInsufficientFunds, Amount: amount}, nil
	}

	return Result{
		Approved:  true,
		Reference: ValidationReference(),
		Amount:    amount,
	}, nil
}

// ErrGatewayUnavailable is returned by gateways that cannot reach their backend.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")
