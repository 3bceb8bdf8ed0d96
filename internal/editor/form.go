package editor

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/validation"
)

// State is the lifecycle position of a Form.
type State int

const (
	Closed State = iota
	Creating
	Editing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Committer persists a validated draft. domain.RecipeStore satisfies it.
type Committer interface {
	Commit(ctx context.Context, draft domain.RecipeFormData, target *domain.Recipe) (*domain.Recipe, error)
}

// Form drives one create or edit session. It is not safe for concurrent
// use; the engine serialises access.
type Form struct {
	committer Committer

	state       State
	target      *domain.Recipe
	name        string
	description string
	steps       *StepList

	nameErr  string
	stepsErr string
	stepErrs map[string]map[string]string
}

// NewForm returns a closed form that commits through c.
func NewForm(c Committer) *Form {
	f := &Form{committer: c}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.target = nil
	f.name = ""
	f.description = ""
	f.steps = NewStepList()
	f.clearErrors()
}

func (f *Form) clearErrors() {
	f.nameErr = ""
	f.stepsErr = ""
	f.stepErrs = map[string]map[string]string{}
}

// State returns the current state.
func (f *Form) State() State { return f.state }

// IsOpen reports whether a draft is being edited.
func (f *Form) IsOpen() bool { return f.state != Closed }

// Open starts a new, empty draft.
func (f *Form) Open() error {
	if f.state != Closed {
		return domain.ErrFormOpen
	}
	f.reset()
	f.state = Creating
	return nil
}

// Edit starts a draft pre-filled from recipe. The recipe itself is not
// touched until Submit.
func (f *Form) Edit(recipe *domain.Recipe) error {
	if f.state != Closed {
		return domain.ErrFormOpen
	}
	if recipe == nil {
		return fmt.Errorf("edit: %w", domain.ErrNotFound)
	}
	f.reset()
	f.target = recipe.Clone()
	f.name = recipe.Name
	f.description = recipe.Description
	f.steps.Replace(recipe.Steps)
	f.state = Editing
	return nil
}

// Cancel discards the draft.
func (f *Form) Cancel() {
	f.reset()
	f.state = Closed
}

// Target returns a copy of the recipe being edited, or nil when creating.
func (f *Form) Target() *domain.Recipe {
	if f.target == nil {
		return nil
	}
	return f.target.Clone()
}

// Draft returns a deep copy of the current draft.
func (f *Form) Draft() domain.RecipeFormData {
	return domain.RecipeFormData{
		Name:        f.name,
		Description: f.description,
		Steps:       f.steps.Steps(),
	}
}

// Steps returns the keyed steps in order.
func (f *Form) Steps() []Item { return f.steps.Items() }

// Editor returns the step editor for key. Mutations through it bypass
// live validation; prefer SetStepField.
func (f *Form) Editor(key string) (StepEditor, error) {
	if f.state == Closed {
		return nil, domain.ErrFormClosed
	}
	step, ok := f.steps.Get(key)
	if !ok {
		return nil, fmt.Errorf("step %s: %w", key, domain.ErrNotFound)
	}
	return For(step), nil
}

// KeyAt returns the key of the step at position i.
func (f *Form) KeyAt(i int) (string, error) {
	if f.state == Closed {
		return "", domain.ErrFormClosed
	}
	key, ok := f.steps.KeyAt(i)
	if !ok {
		return "", fmt.Errorf("step %d: %w", i+1, domain.ErrNotFound)
	}
	return key, nil
}

// SetName updates the recipe name and revalidates it.
func (f *Form) SetName(name string) error {
	if f.state == Closed {
		return domain.ErrFormClosed
	}
	f.name = name
	_, f.nameErr = validation.ValidateName(name)
	return nil
}

// SetDescription updates the free-form description.
func (f *Form) SetDescription(desc string) error {
	if f.state == Closed {
		return domain.ErrFormClosed
	}
	f.description = desc
	return nil
}

// AddStep appends a defaulted step of type t.
func (f *Form) AddStep(t domain.StepType) (string, error) {
	if f.state == Closed {
		return "", domain.ErrFormClosed
	}
	step, err := domain.NewStep(t)
	if err != nil {
		return "", err
	}
	key := f.steps.Append(step)
	f.stepsErr = ""
	f.revalidateStep(key)
	return key, nil
}

// RemoveStep deletes the step with key.
func (f *Form) RemoveStep(key string) error {
	if f.state == Closed {
		return domain.ErrFormClosed
	}
	if !f.steps.Remove(key) {
		return fmt.Errorf("step %s: %w", key, domain.ErrNotFound)
	}
	delete(f.stepErrs, key)
	return nil
}

// MoveStep moves the step to index. Out-of-range or same-position moves
// leave the order unchanged.
func (f *Form) MoveStep(key string, index int) error {
	if f.state == Closed {
		return domain.ErrFormClosed
	}
	f.steps.MoveTo(key, index)
	return nil
}

// MoveStepTo drops the step src onto the position held by dst.
func (f *Form) MoveStepTo(src, dst string) error {
	if f.state == Closed {
		return domain.ErrFormClosed
	}
	f.steps.MoveToTarget(src, dst)
	return nil
}

// SetStepField sets a field on one step and revalidates the whole step,
// so a discriminant change updates its dependent coordinates too.
func (f *Form) SetStepField(key, field, raw string) error {
	ed, err := f.Editor(key)
	if err != nil {
		return err
	}
	if err := ed.Set(field, raw); err != nil {
		return err
	}
	f.revalidateStep(key)
	return nil
}

func (f *Form) revalidateStep(key string) {
	step, ok := f.steps.Get(key)
	if !ok {
		return
	}
	errs := validation.StepFields(step)
	if len(errs) == 0 {
		delete(f.stepErrs, key)
		return
	}
	f.stepErrs[key] = errs
}

// Errors reports the current failures. Step paths use the current
// position, so they follow reorders.
func (f *Form) Errors() domain.FieldErrors {
	var out domain.FieldErrors
	if f.nameErr != "" {
		out = append(out, domain.FieldError{Path: "name", Message: f.nameErr})
	}
	if f.stepsErr != "" {
		out = append(out, domain.FieldError{Path: "steps", Message: f.stepsErr})
	}
	for i, it := range f.steps.items {
		errs := f.stepErrs[it.Key]
		if len(errs) == 0 {
			continue
		}
		for _, name := range validation.StepFieldOrder {
			if msg, ok := errs[name]; ok {
				out = append(out, domain.FieldError{Path: validation.StepPath(i, name), Message: msg})
			}
		}
	}
	return out
}

// Submit validates the whole draft and commits it. On failure the form
// stays open and Errors holds the complete set.
func (f *Form) Submit(ctx context.Context) (*domain.Recipe, error) {
	if f.state == Closed {
		return nil, domain.ErrFormClosed
	}

	f.clearErrors()
	_, f.nameErr = validation.ValidateName(f.name)
	if f.steps.Len() == 0 {
		f.stepsErr = validation.MsgStepsRequired
	}
	for _, it := range f.steps.items {
		f.revalidateStep(it.Key)
	}
	if errs := f.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDraft, errs)
	}

	saved, err := f.committer.Commit(ctx, f.Draft(), f.target)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	f.reset()
	f.state = Closed
	return saved, nil
}

// Import replaces the draft with a parsed document. The form stays in its
// current state and, when editing, keeps its target. A document that
// fails to parse leaves the draft untouched.
func (f *Form) Import(data []byte, format document.Format) error {
	if f.state == Closed {
		return domain.ErrFormClosed
	}
	draft, err := document.ParseDraft(data, format)
	if err != nil {
		return err
	}
	f.name = draft.Name
	f.description = draft.Description
	f.steps.Replace(draft.Steps)
	f.clearErrors()
	return nil
}
