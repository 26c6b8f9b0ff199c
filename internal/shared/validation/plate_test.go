package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "AB-12-CD", NormalizePlate(" ab-12-cd "))
	assert.Equal(t, "XYZ123", NormalizePlate("xyz123"))
}

func TestIsValidPlate(t *testing.T) {
	valid := []string{"AB-12-CD", "ab-12-cd", "X1", "ABC123", "1-ABC-23"}
	for _, plate := range valid {
		assert.True(t, IsValidPlate(plate), "expected %q to be valid", plate)
	}

	invalid := []string{"", "A", "-AB12", "AB12-", "AB 12", "AB_12", "ABCDEFGHIJKLM"}
	for _, plate := range invalid {
		assert.False(t, IsValidPlate(plate), "expected %q to be invalid", plate)
	}
}
