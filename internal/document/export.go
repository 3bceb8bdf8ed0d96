package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

// Marshal renders a recipe as an indented, human-readable document.
func Marshal(r *domain.Recipe, format Format) ([]byte, error) {
	return encode(fromRecipe(r), format)
}

// MarshalDraft renders a draft, which has no recipe id, in the same
// layout as Marshal.
func MarshalDraft(d domain.RecipeFormData, format Format) ([]byte, error) {
	doc := fromRecipe(&domain.Recipe{Name: d.Name, Description: d.Description, Steps: d.Steps})
	doc.ID = nil
	return encode(doc, format)
}

func encode(doc recipeDoc, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(out, '\n'), nil
	}
}

// Filename returns the download name for a recipe: its name plus the
// format extension. Path separators are replaced so the name stays a
// single file.
func Filename(r *domain.Recipe, format Format) string {
	name := strings.TrimSpace(r.Name)
	name = strings.NewReplacer("/", "_", "\\", "_", "\x00", "").Replace(name)
	if name == "" || name == "." || name == ".." {
		name = fmt.Sprintf("recipe-%d", r.ID)
	}
	return name + format.Ext()
}

func fromRecipe(r *domain.Recipe) recipeDoc {
	id := r.ID
	doc := recipeDoc{
		ID:          &id,
		Name:        r.Name,
		Description: r.Description,
		Steps:       make([]stepDoc, 0, len(r.Steps)),
	}
	for i := range r.Steps {
		doc.Steps = append(doc.Steps, fromStep(&r.Steps[i]))
	}
	return doc
}

func fromStep(s *domain.Step) stepDoc {
	return domain.MatchStep(s,
		func(ti *domain.TakeImageStep) stepDoc {
			include := ti.IncludePointcloud
			return stepDoc{
				ID:                s.ID,
				Type:              string(domain.StepTakeImage),
				IncludePointcloud: &include,
				Scope:             string(ti.Scope),
				CenterX:           ti.CenterX,
				CenterY:           ti.CenterY,
			}
		},
		func(u *domain.UnscrewingStep) stepDoc {
			return stepDoc{
				ID:          s.ID,
				Type:        string(domain.StepUnscrewing),
				Mode:        string(u.Mode),
				CoordinateX: u.CoordinateX,
				CoordinateY: u.CoordinateY,
			}
		},
	)
}
