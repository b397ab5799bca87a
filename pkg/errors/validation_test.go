package errors

import (
	"math"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"kegg compound", "C00031", false},
		{"entrez", "7157", false},
		{"ensembl", "ENSG00000141510", false},
		{"with space", "glucose 6-phosphate", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubnetworkName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"subnetwork1", false},
		{"module12", false},
		{"my_module-2", false},
		{"", true},
		{"1subnetwork", true},
		{"../etc", true},
		{"sub network", true},
	}

	for _, tt := range tests {
		err := ValidateSubnetworkName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSubnetworkName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidName) {
			t.Errorf("ValidateSubnetworkName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
		}
	}
}

func TestValidateThreshold(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{0, false},
		{0.05, false},
		{-1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := ValidateThreshold("pvalue", tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateThreshold(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
	}
}

func TestValidateBand(t *testing.T) {
	tests := []struct {
		lo, hi  float64
		wantErr bool
	}{
		{-1, -0.3, false},
		{0, 0, false},
		{0.5, 0.3, true},
		{math.NaN(), 1, true},
	}

	for _, tt := range tests {
		err := ValidateBand("positive band", tt.lo, tt.hi)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBand(%v, %v) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
		}
	}
}
