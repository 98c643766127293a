package errors

import (
	"math"
	"testing"
)

func TestValidateLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"positive", 1, false},
		{"negative", -7, false},
		{"large", 1 << 20, false},

		{"zero", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLiteral(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLiteral(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLiteral) {
				t.Errorf("ValidateLiteral(%d) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLiteral)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"fraction", 0.25, false},
		{"negative", -0.5, false},

		{"nan", math.NaN(), true},
		{"+inf", math.Inf(1), true},
		{"-inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeight(3, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormatName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"nnf", "nnf", false},
		{"sdd", "sdd", false},
		{"unknown but well formed", "cnf", false},

		{"empty", "", true},
		{"too long", "abcdefghijklmnopq", true},
		{"space", "n nf", true},
		{"newline", "nnf\n", true},
		{"slash", "../sdd", true},
		{"backslash", "a\\b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormatName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormatName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
