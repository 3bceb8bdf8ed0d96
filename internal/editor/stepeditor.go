// Package editor holds the draft-editing logic of the recipe form: the
// per-variant step editors, the ordered step list and the form controller
// that ties them to a recipe store.
package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/validation"
)

// FieldKind tells a front end which input to render.
type FieldKind int

const (
	KindToggle FieldKind = iota
	KindSelect
	KindNumber
)

// Field is one visible input of a step editor.
type Field struct {
	Name    string
	Label   string
	Kind    FieldKind
	Value   string
	Options []string
}

// StepEditor edits one step in place. Only the fields relevant to the
// current discriminant are exposed.
type StepEditor interface {
	Type() domain.StepType
	// Fields returns the visible fields in display order.
	Fields() []Field
	// Set parses raw and stores it in the named field.
	Set(name, raw string) error
	// Validate returns current failures keyed by field name.
	Validate() map[string]string
}

// For returns the editor for the step's variant.
func For(step *domain.Step) StepEditor {
	return domain.MatchStep(step,
		func(ti *domain.TakeImageStep) StepEditor { return &TakeImageEditor{step: step, data: ti} },
		func(u *domain.UnscrewingStep) StepEditor { return &UnscrewingEditor{step: step, data: u} },
	)
}

// ── TakeImage ────────────────────────────────────────────────────

// TakeImageEditor edits an image-capture step. Center coordinates are
// shown only for the Section scope.
type TakeImageEditor struct {
	step *domain.Step
	data *domain.TakeImageStep
}

func (e *TakeImageEditor) Type() domain.StepType { return domain.StepTakeImage }

func (e *TakeImageEditor) Fields() []Field {
	fields := []Field{
		{Name: "includePointcloud", Label: "Include Pointcloud", Kind: KindToggle, Value: strconv.FormatBool(e.data.IncludePointcloud)},
		{Name: "scope", Label: "Scope", Kind: KindSelect, Value: string(e.data.Scope), Options: domain.ImageScopeOptions()},
	}
	if validation.RequiresCoordinates(string(e.data.Scope)) {
		fields = append(fields,
			Field{Name: "centerX", Label: validation.LabelCenterX, Kind: KindNumber, Value: formatNumber(e.data.CenterX)},
			Field{Name: "centerY", Label: validation.LabelCenterY, Kind: KindNumber, Value: formatNumber(e.data.CenterY)},
		)
	}
	return fields
}

func (e *TakeImageEditor) Set(name, raw string) error {
	switch name = canonicalField(name); name {
	case "includePointcloud":
		v, err := parseBool(raw)
		if err != nil {
			return err
		}
		e.data.IncludePointcloud = v
	case "scope":
		scope := domain.ImageScope(strings.TrimSpace(raw))
		if scope != "" && !scope.IsValid() {
			return fmt.Errorf("%w: scope %q", domain.ErrInvalidValue, raw)
		}
		// Coordinates entered under Section are kept while hidden.
		e.data.Scope = scope
	case "centerX", "centerY":
		if !validation.RequiresCoordinates(string(e.data.Scope)) {
			return fmt.Errorf("%w: %s", domain.ErrFieldHidden, name)
		}
		if name == "centerX" {
			e.data.CenterX = parseNumber(raw)
		} else {
			e.data.CenterY = parseNumber(raw)
		}
	default:
		return fmt.Errorf("%w: %q on %s step", domain.ErrUnknownField, name, domain.StepTakeImage)
	}
	return nil
}

func (e *TakeImageEditor) Validate() map[string]string {
	return validation.StepFields(e.step)
}

// ── Unscrewing ───────────────────────────────────────────────────

// UnscrewingEditor edits an unscrewing step. Coordinates are shown only
// for the Specific mode.
type UnscrewingEditor struct {
	step *domain.Step
	data *domain.UnscrewingStep
}

func (e *UnscrewingEditor) Type() domain.StepType { return domain.StepUnscrewing }

func (e *UnscrewingEditor) Fields() []Field {
	fields := []Field{
		{Name: "mode", Label: "Mode", Kind: KindSelect, Value: string(e.data.Mode), Options: domain.UnscrewingModeOptions()},
	}
	if validation.RequiresCoordinates(string(e.data.Mode)) {
		fields = append(fields,
			Field{Name: "coordinateX", Label: validation.LabelCoordinateX, Kind: KindNumber, Value: formatNumber(e.data.CoordinateX)},
			Field{Name: "coordinateY", Label: validation.LabelCoordinateY, Kind: KindNumber, Value: formatNumber(e.data.CoordinateY)},
		)
	}
	return fields
}

func (e *UnscrewingEditor) Set(name, raw string) error {
	switch name = canonicalField(name); name {
	case "mode":
		mode := domain.UnscrewingMode(strings.TrimSpace(raw))
		if mode != "" && !mode.IsValid() {
			return fmt.Errorf("%w: mode %q", domain.ErrInvalidValue, raw)
		}
		e.data.Mode = mode
	case "coordinateX", "coordinateY":
		if !validation.RequiresCoordinates(string(e.data.Mode)) {
			return fmt.Errorf("%w: %s", domain.ErrFieldHidden, name)
		}
		if name == "coordinateX" {
			e.data.CoordinateX = parseNumber(raw)
		} else {
			e.data.CoordinateY = parseNumber(raw)
		}
	default:
		return fmt.Errorf("%w: %q on %s step", domain.ErrUnknownField, name, domain.StepUnscrewing)
	}
	return nil
}

func (e *UnscrewingEditor) Validate() map[string]string {
	return validation.StepFields(e.step)
}

// ── Helpers ──────────────────────────────────────────────────────

var canonicalNames = map[string]string{}

func init() {
	for _, n := range []string{"includePointcloud", "scope", "centerX", "centerY", "mode", "coordinateX", "coordinateY"} {
		canonicalNames[strings.ToLower(n)] = n
	}
}

// canonicalField accepts field names in any case.
func canonicalField(name string) string {
	if n, ok := canonicalNames[strings.ToLower(name)]; ok {
		return n
	}
	return name
}

// parseNumber mirrors a numeric input: blank, unparseable or non-finite
// text leaves the coordinate absent.
func parseNumber(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "on", "1":
		return true, nil
	case "false", "no", "n", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a yes/no value", domain.ErrInvalidValue, raw)
}
