package display

import (
	"testing"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

func TestCoordinateValidator(t *testing.T) {
	mode := string(domain.ModeSpecific)
	check := coordinateValidator("Coordinate X", &mode)

	tests := []struct {
		input   string
		wantErr string
	}{
		{"12.5", ""},
		{"0", ""},
		{"", "Coordinate X is required in Specific mode."},
		{"abc", "Coordinate X is required in Specific mode."},
		{"-1", "Coordinate X cannot be negative."},
		{"inf", "Coordinate X is required in Specific mode."},
		{"NaN", "Coordinate X is required in Specific mode."},
	}
	for _, tt := range tests {
		err := check(tt.input)
		got := ""
		if err != nil {
			got = err.Error()
		}
		if got != tt.wantErr {
			t.Fatalf("check(%q) = %q, want %q", tt.input, got, tt.wantErr)
		}
	}

	// The discriminant is read at validation time.
	mode = string(domain.ModeAutomatic)
	if err := check(""); err != nil {
		t.Fatalf("automatic mode should not require coordinates: %v", err)
	}
}
