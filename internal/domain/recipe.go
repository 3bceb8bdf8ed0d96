// Package domain defines the core types and interfaces for the recipe editor.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is a committed recipe. Once inside a store it always has a
// non-empty name and at least one step.
type Recipe struct {
	ID          int64
	Name        string
	Description string
	Steps       []Step
}

// RecipeFormData is the draft shape of a recipe: everything but the id.
type RecipeFormData struct {
	Name        string
	Description string
	Steps       []Step
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID        int64
	Name      string
	StepCount int
}

// Clone returns a deep copy of the recipe.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	return &Recipe{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Steps:       cloneSteps(r.Steps),
	}
}

// FormData returns the draft view of the recipe, without its id.
func (r *Recipe) FormData() RecipeFormData {
	return RecipeFormData{
		Name:        r.Name,
		Description: r.Description,
		Steps:       cloneSteps(r.Steps),
	}
}

// Summary returns the listing view of the recipe.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{ID: r.ID, Name: r.Name, StepCount: len(r.Steps)}
}

// Clone returns a deep copy of the draft.
func (d RecipeFormData) Clone() RecipeFormData {
	return RecipeFormData{
		Name:        d.Name,
		Description: d.Description,
		Steps:       cloneSteps(d.Steps),
	}
}

func cloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s.Clone()
	}
	return out
}
