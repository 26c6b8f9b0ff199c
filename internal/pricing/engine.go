package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEndBeforeStart is returned when the billing window is negative.
var ErrEndBeforeStart = errors.New("end time must not be before start time")

// Tariffs carries the rates used to price a stay. Daily is optional; when nil the
// stay is billed purely by the hour.
type Tariffs struct {
	Hourly decimal.Decimal
	Daily  *decimal.Decimal
}

// Quote is the result of pricing one stay. BillableDays counts the 24-hour blocks
// that were billed at the day rate; BillableHours is the stay rounded up to whole
// hours regardless of how the cost was capped.
type Quote struct {
	Cost          decimal.Decimal `json:"cost"`
	BillableHours int             `json:"billable_hours"`
	BillableDays  int             `json:"billable_days"`
}

// Calculate prices a parking stay between start and end.
//
// Billing rules:
//   - Any partial hour counts as a full billable hour. A zero-length stay is still
//     billed at the minimum of one hour.
//   - Without a day tariff the cost is billableHours x hourly.
//   - With a day tariff, a stay of at most 24 hours is charged the lesser of the
//     hourly total and the day tariff; reaching the day tariff counts as one
//     billable day.
//   - A stay longer than 24 hours is charged per started 24-hour block at the day
//     tariff.
//
// Calculate is pure: identical inputs always produce identical quotes.
func Calculate(t Tariffs, start, end time.Time) (Quote, error) {
	if end.Before(start) {
		return Quote{}, ErrEndBeforeStart
	}

	duration := end.Sub(start)
	billableHours := ceilHours(duration)
	billableDays := 0

	hourlyTotal := decimal.NewFromInt(int64(billableHours)).Mul(t.Hourly)
	cost := hourlyTotal

	if t.Daily != nil {
		if duration > 24*time.Hour {
			billableDays = ceilDays(duration)
			cost = decimal.NewFromInt(int64(billableDays)).Mul(*t.Daily)
		} else if hourlyTotal.GreaterThanOrEqual(*t.Daily) {
			cost = *t.Daily
			billableDays = 1
		}
	}

	if cost.IsNegative() {
		cost = decimal.Zero
	}

	return Quote{
		Cost:          cost,
		BillableHours: billableHours,
		BillableDays:  billableDays,
	}, nil
}

// ceilHours rounds a duration up to whole hours, with a minimum of one.
func ceilHours(d time.Duration) int {
	hours := int(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours == 0 {
		hours = 1
	}
	return hours
}

// ceilDays rounds a duration up to whole 24-hour blocks.
func ceilDays(d time.Duration) int {
	const day = 24 * time.Hour
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	return days
}
