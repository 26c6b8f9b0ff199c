package passes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoversAt(t *testing.T) {
	validFrom := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	validUntil := time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)

	pass := &HotelPass{
		LicensePlate: "AB-12-CD",
		ParkingLotID: 1,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
		ExtraMinutes: 30,
	}

	assert.False(t, pass.CoversAt(validFrom.Add(-time.Minute)), "before check-in")
	assert.True(t, pass.CoversAt(validFrom), "at check-in")
	assert.True(t, pass.CoversAt(validUntil), "at check-out")
	assert.True(t, pass.CoversAt(validUntil.Add(30*time.Minute)), "end of grace window")
	assert.False(t, pass.CoversAt(validUntil.Add(31*time.Minute)), "past grace window")
}

func TestCoversAtWithoutGrace(t *testing.T) {
	validUntil := time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)
	pass := &HotelPass{
		ValidFrom:  validUntil.Add(-24 * time.Hour),
		ValidUntil: validUntil,
	}

	assert.True(t, pass.CoversAt(validUntil))
	assert.False(t, pass.CoversAt(validUntil.Add(time.Second)))
}
