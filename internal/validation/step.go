package validation

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

// Messages shared with the editors.
const (
	MsgNameRequired  = "Recipe name is required"
	MsgStepsRequired = "At least one step is required"
	MsgScopeRequired = "Scope required"
	MsgModeRequired  = "Mode required"
)

// StepFields returns the failures of a single step keyed by field name
// (e.g. "scope", "centerY").
func StepFields(step *domain.Step) map[string]string {
	if !step.WellFormed() {
		return map[string]string{"type": fmt.Sprintf("Unknown step type %q", step.Type)}
	}
	return domain.MatchStep(step, takeImageFields, unscrewingFields)
}

func takeImageFields(s *domain.TakeImageStep) map[string]string {
	out := map[string]string{}
	switch {
	case s.Scope == "":
		out["scope"] = MsgScopeRequired
	case !s.Scope.IsValid():
		out["scope"] = fmt.Sprintf("Unknown scope %q", s.Scope)
	}
	scope := string(s.Scope)
	if ok, msg := ValidateCoordinate(LabelCenterX, scope, s.CenterX); !ok {
		out["centerX"] = msg
	}
	if ok, msg := ValidateCoordinate(LabelCenterY, scope, s.CenterY); !ok {
		out["centerY"] = msg
	}
	return out
}

func unscrewingFields(s *domain.UnscrewingStep) map[string]string {
	out := map[string]string{}
	switch {
	case s.Mode == "":
		out["mode"] = MsgModeRequired
	case !s.Mode.IsValid():
		out["mode"] = fmt.Sprintf("Unknown mode %q", s.Mode)
	}
	mode := string(s.Mode)
	if ok, msg := ValidateCoordinate(LabelCoordinateX, mode, s.CoordinateX); !ok {
		out["coordinateX"] = msg
	}
	if ok, msg := ValidateCoordinate(LabelCoordinateY, mode, s.CoordinateY); !ok {
		out["coordinateY"] = msg
	}
	return out
}

// StepFieldOrder is the order step failures are reported in. It keeps
// error output stable across map iteration.
var StepFieldOrder = []string{"type", "includePointcloud", "scope", "centerX", "centerY", "mode", "coordinateX", "coordinateY"}

// ValidateStep returns the failures of the step at index with full
// paths such as "steps.0.centerY".
func ValidateStep(step *domain.Step, index int) domain.FieldErrors {
	fields := StepFields(step)
	var out domain.FieldErrors
	for _, name := range StepFieldOrder {
		if msg, ok := fields[name]; ok {
			out = append(out, domain.FieldError{Path: StepPath(index, name), Message: msg})
		}
	}
	return out
}

// ValidateName checks the recipe name.
func ValidateName(name string) (bool, string) {
	if strings.TrimSpace(name) == "" {
		return false, MsgNameRequired
	}
	return true, ""
}

// ValidateDraft checks a whole draft and collects every failure.
func ValidateDraft(draft domain.RecipeFormData) domain.FieldErrors {
	var out domain.FieldErrors
	if ok, msg := ValidateName(draft.Name); !ok {
		out = append(out, domain.FieldError{Path: "name", Message: msg})
	}
	if len(draft.Steps) == 0 {
		out = append(out, domain.FieldError{Path: "steps", Message: MsgStepsRequired})
	}
	for i := range draft.Steps {
		out = append(out, ValidateStep(&draft.Steps[i], i)...)
	}
	return out
}

// StepPath builds the field path for a step field.
func StepPath(index int, field string) string {
	return fmt.Sprintf("steps.%d.%s", index, field)
}
