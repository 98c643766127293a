package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateLiteral checks that lit can name a literal.
// Literal 0 is reserved: variables are numbered from 1 and a negative value
// denotes the negated variable.
func ValidateLiteral(lit int) error {
	if lit == 0 {
		return New(ErrCodeInvalidLiteral, "literal 0 is not a valid literal")
	}
	return nil
}

// ValidateWeight checks that w is a finite real number.
// Negative weights are accepted; they appear in some probabilistic encodings.
func ValidateWeight(lit int, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWeight, "weight for literal %d must be finite, got %v", lit, w)
	}
	return nil
}

// ValidateFormatName validates a circuit format name such as "nnf" or "sdd".
// It only checks the shape of the name; callers decide which names they support.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators
//   - Maximum length of 16 characters
func ValidateFormatName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "format name cannot be empty")
	}
	if len(name) > 16 {
		return New(ErrCodeInvalidInput, "format name too long (max 16 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "format name contains invalid characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "format name cannot contain path separators")
	}
	return nil
}
