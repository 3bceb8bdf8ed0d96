// Package validation holds the field-level rules for recipe drafts. All
// functions are pure; callers re-run them whenever a field or the
// discriminant it depends on changes.
package validation

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

// Coordinate labels used in messages.
const (
	LabelCenterX     = "Center X"
	LabelCenterY     = "Center Y"
	LabelCoordinateX = "Coordinate X"
	LabelCoordinateY = "Coordinate Y"
)

// requiresCoordinate lists the discriminant values under which
// coordinates must be supplied.
var requiresCoordinate = map[string]bool{
	string(domain.ModeSpecific): true,
	string(domain.ScopeSection): true,
}

// ValidateCoordinate checks a coordinate against the discriminant that
// controls it. It returns true and an empty message when the value is
// acceptable. Under any discriminant other than Specific or Section the
// coordinate is unconstrained.
func ValidateCoordinate(label, discriminant string, value *float64) (bool, string) {
	if !requiresCoordinate[discriminant] {
		return true, ""
	}
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return false, fmt.Sprintf("%s is required in %s mode.", label, discriminant)
	}
	if *value < 0 {
		return false, fmt.Sprintf("%s cannot be negative.", label)
	}
	return true, ""
}

// RequiresCoordinates reports whether the discriminant makes the
// coordinate fields visible and required.
func RequiresCoordinates(discriminant string) bool {
	return requiresCoordinate[discriminant]
}
