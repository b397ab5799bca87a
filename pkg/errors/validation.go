package errors

import (
	"math"
	"regexp"
	"unicode"
)

// maxIdentifierLength bounds node identifiers accepted from tables and requests.
const maxIdentifierLength = 256

// ValidateIdentifier validates a node identifier read from an input table or
// request body.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	return nil
}

// subnetworkNameRegex matches registry entry names.
var subnetworkNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// ValidateSubnetworkName validates a registry entry name such as
// "subnetwork1" or "module3".
func ValidateSubnetworkName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "subnetwork name cannot be empty")
	}
	if !subnetworkNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid subnetwork name: %q", name)
	}
	return nil
}

// ValidateThreshold checks that a numeric filter threshold is finite and not
// negative. Zero means "not set".
func ValidateThreshold(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative", name)
	}
	return nil
}

// ValidateBand checks that a coefficient band [lo, hi) is well formed.
// A band with lo == hi is inactive and always valid; lo > hi is rejected.
func ValidateBand(name string, lo, hi float64) error {
	for _, v := range []float64{lo, hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "%s bounds must be finite", name)
		}
	}
	if lo > hi {
		return New(ErrCodeInvalidInput, "%s lower bound %g exceeds upper bound %g", name, lo, hi)
	}
	return nil
}
