package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tariffs(hourly string, daily string) Tariffs {
	t := Tariffs{Hourly: decimal.RequireFromString(hourly)}
	if daily != "" {
		d := decimal.RequireFromString(daily)
		t.Daily = &d
	}
	return t
}

func TestCalculate(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tariffs   Tariffs
		duration  time.Duration
		wantCost  string
		wantHours int
		wantDays  int
	}{
		{
			name:      "hourly only, partial hour rounds up",
			tariffs:   tariffs("5", ""),
			duration:  3*time.Hour + 12*time.Minute,
			wantCost:  "20",
			wantHours: 4,
			wantDays:  0,
		},
		{
			name:      "hourly only, half hour bills one hour",
			tariffs:   tariffs("5", ""),
			duration:  30 * time.Minute,
			wantCost:  "5",
			wantHours: 1,
			wantDays:  0,
		},
		{
			name:      "day tariff not reached",
			tariffs:   tariffs("5", "20"),
			duration:  3 * time.Hour,
			wantCost:  "15",
			wantHours: 3,
			wantDays:  0,
		},
		{
			name:      "day tariff reached exactly counts one day",
			tariffs:   tariffs("5", "20"),
			duration:  4 * time.Hour,
			wantCost:  "20",
			wantHours: 4,
			wantDays:  1,
		},
		{
			name:      "long same-day stay capped at day tariff",
			tariffs:   tariffs("5", "20"),
			duration:  23*time.Hour + 30*time.Minute,
			wantCost:  "20",
			wantHours: 24,
			wantDays:  1,
		},
		{
			name:      "partial second block billed as full day",
			tariffs:   tariffs("5", "20"),
			duration:  25 * time.Hour,
			wantCost:  "40",
			wantHours: 25,
			wantDays:  2,
		},
		{
			name:      "exactly two days",
			tariffs:   tariffs("5", "20"),
			duration:  48 * time.Hour,
			wantCost:  "40",
			wantHours: 48,
			wantDays:  2,
		},
		{
			name:      "just over two days starts a third block",
			tariffs:   tariffs("5", "20"),
			duration:  48*time.Hour + 6*time.Minute,
			wantCost:  "60",
			wantHours: 49,
			wantDays:  3,
		},
		{
			name:      "multi-day stay at a cheap lot",
			tariffs:   tariffs("2", "10"),
			duration:  72*time.Hour + 30*time.Minute,
			wantCost:  "40",
			wantHours: 73,
			wantDays:  4,
		},
		{
			name:      "zero duration bills the minimum hour",
			tariffs:   tariffs("5", "20"),
			duration:  0,
			wantCost:  "5",
			wantHours: 1,
			wantDays:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := Calculate(tc.tariffs, start, start.Add(tc.duration))
			require.NoError(t, err)

			assert.True(t, quote.Cost.Equal(decimal.RequireFromString(tc.wantCost)),
				"cost: got %s, want %s", quote.Cost, tc.wantCost)
			assert.Equal(t, tc.wantHours, quote.BillableHours)
			assert.Equal(t, tc.wantDays, quote.BillableDays)
		})
	}
}

func TestCalculateEndBeforeStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	_, err := Calculate(tariffs("5", "20"), start, start.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestCalculateDeterministic(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(37*time.Hour + 13*time.Minute)

	first, err := Calculate(tariffs("3.50", "15"), start, end)
	require.NoError(t, err)
	second, err := Calculate(tariffs("3.50", "15"), start, end)
	require.NoError(t, err)

	assert.True(t, first.Cost.Equal(second.Cost))
	assert.Equal(t, first.BillableHours, second.BillableHours)
	assert.Equal(t, first.BillableDays, second.BillableDays)
}

func TestCalculateDayTariffBoundary(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	// One hour short of the trigger: 3h x 5 = 15 < 20, billed hourly.
	below, err := Calculate(tariffs("5", "20"), start, start.Add(3*time.Hour))
	require.NoError(t, err)
	assert.True(t, below.Cost.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, 0, below.BillableDays)

	// At the trigger the hourly total equals the day tariff, which counts as a day.
	at, err := Calculate(tariffs("5", "20"), start, start.Add(4*time.Hour))
	require.NoError(t, err)
	assert.True(t, at.Cost.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, 1, at.BillableDays)
}

func TestCalculateNegativeTariffClampsToZero(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	quote, err := Calculate(tariffs("-5", ""), start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, quote.Cost.IsZero())
}
