package payments

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreauthorizeApproves(t *testing.T) {
	gateway := NewSimulatedGateway()

	result, err := gateway.Preauthorize(context.Background(), "tok_123", decimal.RequireFromString("15"), false)
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.NotEmpty(t, result.Reference)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("15")))
}

func TestPreauthorizeDeclines(t *testing.T) {
	gateway := NewSimulatedGateway()

	tests := []struct {
		name       string
		token      string
		amount     string
		simulate   bool
		wantReason string
	}{
		{"simulated decline", "tok_123", "15", true, DeclineReasonInsufficientFunds},
		{"missing card token", "", "15", false, DeclineReasonMissingCard},
		{"zero amount", "tok_123", "0", false, DeclineReasonInvalidAmount},
		{"negative amount", "tok_123", "-5", false, DeclineReasonInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := gateway.Preauthorize(context.Background(), tc.token, decimal.RequireFromString(tc.amount), tc.simulate)
			require.NoError(t, err)
			assert.False(t, result.Approved)
			assert.Equal(t, tc.wantReason, result.Reason)
			assert.Empty(t, result.Reference)
		})
	}
}

func TestPaymentReferenceIsStable(t *testing.T) {
	first := PaymentReference(42, "AB-12-CD")
	second := PaymentReference(42, "AB-12-CD")
	other := PaymentReference(43, "AB-12-CD")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 32)
}

func TestValidationReferenceIsOpaque(t *testing.T) {
	ref := ValidationReference()

	assert.Len(t, ref, 32)
	assert.NotContains(t, ref, "-")
	assert.NotEqual(t, ref, ValidationReference())
}
