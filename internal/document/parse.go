package document

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

// ParseDraft decodes and validates an import document. The top-level id
// is ignored; step ids are kept when present.
func ParseDraft(data []byte, format Format) (*domain.RecipeFormData, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if errs := doc.validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, errs)
	}
	draft := doc.formData()
	return &draft, nil
}

// ParseRecipe decodes and validates a full recipe document, which must
// carry its id.
func ParseRecipe(data []byte, format Format) (*domain.Recipe, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	errs := doc.validate()
	if doc.ID == nil {
		errs = append(domain.FieldErrors{{Path: "id", Message: "id is required"}}, errs...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, errs)
	}
	draft := doc.formData()
	return &domain.Recipe{
		ID:          *doc.ID,
		Name:        draft.Name,
		Description: draft.Description,
		Steps:       draft.Steps,
	}, nil
}

func decode(data []byte, format Format) (*recipeDoc, error) {
	var doc recipeDoc
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", domain.ErrInvalidDocument, format, err)
	}
	return &doc, nil
}

// formData converts a validated document to a draft.
func (d *recipeDoc) formData() domain.RecipeFormData {
	steps := make([]domain.Step, len(d.Steps))
	for i, s := range d.Steps {
		steps[i] = s.step()
	}
	return domain.RecipeFormData{
		Name:        d.Name,
		Description: d.Description,
		Steps:       steps,
	}
}

func (s stepDoc) step() domain.Step {
	switch domain.StepType(s.Type) {
	case domain.StepTakeImage:
		ti := &domain.TakeImageStep{
			Scope:   domain.ImageScope(s.Scope),
			CenterX: s.CenterX,
			CenterY: s.CenterY,
		}
		if s.IncludePointcloud != nil {
			ti.IncludePointcloud = *s.IncludePointcloud
		}
		return domain.Step{ID: s.ID, Type: domain.StepTakeImage, TakeImage: ti}
	default:
		return domain.Step{
			ID:   s.ID,
			Type: domain.StepUnscrewing,
			Unscrewing: &domain.UnscrewingStep{
				Mode:        domain.UnscrewingMode(s.Mode),
				CoordinateX: s.CoordinateX,
				CoordinateY: s.CoordinateY,
			},
		}
	}
}
