package validation

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// License plates are stored normalized: upper-case alphanumerics with optional dashes,
// between 2 and 12 characters. Validation is case-insensitive; normalization happens
// in the service layer.
var platePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{0,10}[A-Z0-9]$`)

// NormalizePlate upper-cases and trims a license plate for storage and lookups.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// IsValidPlate reports whether the (normalized) plate matches the accepted format.
func IsValidPlate(plate string) bool {
	return platePattern.MatchString(NormalizePlate(plate))
}

// plateValidator adapts IsValidPlate for go-playground/validator.
func plateValidator(fl validator.FieldLevel) bool {
	return IsValidPlate(fl.Field().String())
}

// RegisterValidators registers custom binding validators with gin's validator engine.
func RegisterValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("plate", plateValidator)
	}
	return nil
}
