package document

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/validation"
)

// recipeDoc is the wire shape of a recipe. ID is optional here; callers
// that need it check it separately.
type recipeDoc struct {
	ID          *int64    `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string    `json:"name" yaml:"name" validate:"notblank"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []stepDoc `json:"steps" yaml:"steps" validate:"required,min=1,dive"`
}

// stepDoc is the flattened wire shape of both step variants. The
// excluded_unless rules make each step match exactly one variant.
type stepDoc struct {
	ID                *int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Type              string   `json:"type" yaml:"type" validate:"required,oneof=TakeImage Unscrewing"`
	IncludePointcloud *bool    `json:"includePointcloud,omitempty" yaml:"includePointcloud,omitempty" validate:"required_if=Type TakeImage,excluded_unless=Type TakeImage"`
	Scope             string   `json:"scope,omitempty" yaml:"scope,omitempty" validate:"required_if=Type TakeImage,excluded_unless=Type TakeImage,imagescope"`
	CenterX           *float64 `json:"centerX,omitempty" yaml:"centerX,omitempty" validate:"omitnil,excluded_unless=Type TakeImage,finite"`
	CenterY           *float64 `json:"centerY,omitempty" yaml:"centerY,omitempty" validate:"omitnil,excluded_unless=Type TakeImage,finite"`
	Mode              string   `json:"mode,omitempty" yaml:"mode,omitempty" validate:"required_if=Type Unscrewing,excluded_unless=Type Unscrewing,unscrewmode"`
	CoordinateX       *float64 `json:"coordinateX,omitempty" yaml:"coordinateX,omitempty" validate:"omitnil,excluded_unless=Type Unscrewing,finite"`
	CoordinateY       *float64 `json:"coordinateY,omitempty" yaml:"coordinateY,omitempty" validate:"omitnil,excluded_unless=Type Unscrewing,finite"`
}

// docValidate is the validator instance for documents.
// Initialized in init() with custom validators.
var docValidate *validator.Validate

func init() {
	docValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names so failures carry the same paths as the form.
	docValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = docValidate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = docValidate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return !math.IsInf(v, 0) && !math.IsNaN(v)
	})
	_ = docValidate.RegisterValidation("imagescope", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || domain.ImageScope(s).IsValid()
	})
	_ = docValidate.RegisterValidation("unscrewmode", func(fl validator.FieldLevel) bool {
		m := fl.Field().String()
		return m == "" || domain.UnscrewingMode(m).IsValid()
	})
}

// validate runs the schema rules and converts failures to field errors.
func (d *recipeDoc) validate() domain.FieldErrors {
	err := docValidate.Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.FieldErrors{{Path: "", Message: err.Error()}}
	}
	out := make(domain.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{
			Path:    fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath turns "recipeDoc.steps[0].scope" into "steps.0.scope".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "notblank":
		return validation.MsgNameRequired
	case "required", "min":
		switch field {
		case "steps":
			return validation.MsgStepsRequired
		case "type":
			return "Step type is required"
		}
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("Unknown step type %q", fe.Value())
	case "required_if":
		switch field {
		case "scope":
			return validation.MsgScopeRequired
		case "mode":
			return validation.MsgModeRequired
		}
		return fmt.Sprintf("%s is required", field)
	case "excluded_unless":
		return fmt.Sprintf("%s does not belong to this step type", field)
	case "finite":
		return fmt.Sprintf("%s must be a finite number", field)
	case "imagescope":
		return fmt.Sprintf("Unknown scope %q", fe.Value())
	case "unscrewmode":
		return fmt.Sprintf("Unknown mode %q", fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
