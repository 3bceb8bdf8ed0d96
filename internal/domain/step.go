package domain

import "fmt"

// StepType is the discriminant of the Step union.
type StepType string

const (
	StepTakeImage  StepType = "TakeImage"
	StepUnscrewing StepType = "Unscrewing"
)

// IsValid reports whether t names a known step variant.
func (t StepType) IsValid() bool {
	switch t {
	case StepTakeImage, StepUnscrewing:
		return true
	}
	return false
}

func (t StepType) String() string { return string(t) }

// AllStepTypes lists the step variants in display order.
func AllStepTypes() []StepType {
	return []StepType{StepTakeImage, StepUnscrewing}
}

// ImageScope selects how much of the battery an image step captures.
// The empty value is allowed only while a step is being drafted.
type ImageScope string

const (
	ScopeFullBattery ImageScope = "FullBattery"
	ScopeSection     ImageScope = "Section"
)

// IsValid reports whether s is a selectable scope. Empty is not.
func (s ImageScope) IsValid() bool {
	return s == ScopeFullBattery || s == ScopeSection
}

func (s ImageScope) String() string { return string(s) }

// AllImageScopes lists the selectable scopes.
func AllImageScopes() []ImageScope {
	return []ImageScope{ScopeFullBattery, ScopeSection}
}

// ImageScopeOptions returns AllImageScopes as select option values.
func ImageScopeOptions() []string {
	var out []string
	for _, s := range AllImageScopes() {
		out = append(out, string(s))
	}
	return out
}

// UnscrewingMode selects how screws are located.
// The empty value is allowed only while a step is being drafted.
type UnscrewingMode string

const (
	ModeAutomatic UnscrewingMode = "Automatic"
	ModeSpecific  UnscrewingMode = "Specific"
)

// IsValid reports whether m is a selectable mode. Empty is not.
func (m UnscrewingMode) IsValid() bool {
	return m == ModeAutomatic || m == ModeSpecific
}

func (m UnscrewingMode) String() string { return string(m) }

// AllUnscrewingModes lists the selectable modes.
func AllUnscrewingModes() []UnscrewingMode {
	return []UnscrewingMode{ModeAutomatic, ModeSpecific}
}

// UnscrewingModeOptions returns AllUnscrewingModes as select option values.
func UnscrewingModeOptions() []string {
	var out []string
	for _, m := range AllUnscrewingModes() {
		out = append(out, string(m))
	}
	return out
}

// TakeImageStep captures an image, optionally with a pointcloud.
// CenterX/CenterY only matter when Scope is Section.
type TakeImageStep struct {
	IncludePointcloud bool
	Scope             ImageScope
	CenterX           *float64
	CenterY           *float64
}

// UnscrewingStep removes screws. CoordinateX/CoordinateY only matter
// when Mode is Specific.
type UnscrewingStep struct {
	Mode        UnscrewingMode
	CoordinateX *float64
	CoordinateY *float64
}

// Step is one unit of work in a recipe. Type selects which payload is set;
// exactly one of TakeImage and Unscrewing is non-nil. ID is absent while
// the step is being drafted and assigned when the recipe is committed.
type Step struct {
	ID         *int64
	Type       StepType
	TakeImage  *TakeImageStep
	Unscrewing *UnscrewingStep
}

// NewTakeImageStep returns an image step with default values.
func NewTakeImageStep() Step {
	return Step{
		Type:      StepTakeImage,
		TakeImage: &TakeImageStep{Scope: ScopeFullBattery},
	}
}

// NewUnscrewingStep returns an unscrewing step with default values.
func NewUnscrewingStep() Step {
	return Step{
		Type:       StepUnscrewing,
		Unscrewing: &UnscrewingStep{Mode: ModeAutomatic},
	}
}

// NewStep returns a defaulted step of the given type.
func NewStep(t StepType) (Step, error) {
	switch t {
	case StepTakeImage:
		return NewTakeImageStep(), nil
	case StepUnscrewing:
		return NewUnscrewingStep(), nil
	default:
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownStep, t)
	}
}

// MatchStep dispatches on the step variant. It is the single switch over
// step types; a new variant adds a parameter here and breaks every caller
// until they handle it. It panics on a malformed step whose payload does
// not match its type.
func MatchStep[T any](s *Step, takeImage func(*TakeImageStep) T, unscrewing func(*UnscrewingStep) T) T {
	switch {
	case s.Type == StepTakeImage && s.TakeImage != nil:
		return takeImage(s.TakeImage)
	case s.Type == StepUnscrewing && s.Unscrewing != nil:
		return unscrewing(s.Unscrewing)
	default:
		panic(fmt.Sprintf("domain: malformed step (type=%q)", s.Type))
	}
}

// WellFormed reports whether the payload matches the type tag.
func (s *Step) WellFormed() bool {
	switch s.Type {
	case StepTakeImage:
		return s.TakeImage != nil && s.Unscrewing == nil
	case StepUnscrewing:
		return s.Unscrewing != nil && s.TakeImage == nil
	}
	return false
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := Step{ID: copyInt(s.ID), Type: s.Type}
	if s.TakeImage != nil {
		ti := *s.TakeImage
		ti.CenterX = copyFloat(ti.CenterX)
		ti.CenterY = copyFloat(ti.CenterY)
		out.TakeImage = &ti
	}
	if s.Unscrewing != nil {
		u := *s.Unscrewing
		u.CoordinateX = copyFloat(u.CoordinateX)
		u.CoordinateY = copyFloat(u.CoordinateY)
		out.Unscrewing = &u
	}
	return out
}

// Float returns a pointer to v. Handy for coordinates.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v. Handy for step ids.
func Int(v int64) *int64 { return &v }

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
