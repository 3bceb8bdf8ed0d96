package display

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/editor"
	"github.com/hammamikhairi/recipedit/internal/validation"
)

// Compile-time interface check.
var _ domain.Confirmer = (*HuhConfirmer)(nil)

// HuhConfirmer asks yes/no questions with a huh confirm prompt.
type HuhConfirmer struct {
	theme *huh.Theme
}

// NewHuhConfirmer creates a confirmer. A nil theme uses huh's default.
func NewHuhConfirmer(theme *huh.Theme) *HuhConfirmer {
	return &HuhConfirmer{theme: theme}
}

// Confirm shows prompt and reports the answer. Aborting counts as no.
func (c *HuhConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Delete").
			Negative("Keep").
			Value(&ok),
	))
	if c.theme != nil {
		form = form.WithTheme(c.theme)
	}
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// ErrComposeAborted is returned when the user quits a compose session.
var ErrComposeAborted = errors.New("compose aborted")

const doneChoice = "done"

// Composer walks the user through an open editor form with huh prompts:
// name and description first, then one step at a time until they choose
// to finish.
type Composer struct {
	form  *editor.Form
	theme *huh.Theme
}

// NewComposer creates a composer for an open form.
func NewComposer(form *editor.Form, theme *huh.Theme) *Composer {
	if theme == nil {
		theme = huh.ThemeDracula()
	}
	return &Composer{form: form, theme: theme}
}

// Run collects the draft. It does not submit.
func (c *Composer) Run(ctx context.Context) error {
	draft := c.form.Draft()
	name, desc := draft.Name, draft.Description

	err := c.run(ctx, huh.NewGroup(
		huh.NewInput().
			Title("Recipe name").
			Value(&name).
			Validate(func(s string) error {
				if ok, msg := validation.ValidateName(s); !ok {
					return errors.New(msg)
				}
				return nil
			}),
		huh.NewText().
			Title("Description").
			Description("Optional").
			CharLimit(2000).
			Value(&desc),
	))
	if err != nil {
		return err
	}
	if err := c.form.SetName(name); err != nil {
		return err
	}
	if err := c.form.SetDescription(desc); err != nil {
		return err
	}

	for {
		choice := doneChoice
		if len(c.form.Steps()) == 0 {
			choice = string(domain.StepTakeImage)
		}
		err := c.run(ctx, huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Step %d", len(c.form.Steps())+1)).
				Options(
					huh.NewOption("Take image", string(domain.StepTakeImage)),
					huh.NewOption("Unscrewing", string(domain.StepUnscrewing)),
					huh.NewOption("Finish recipe", doneChoice),
				).
				Value(&choice),
		))
		if err != nil {
			return err
		}
		if choice == doneChoice {
			return nil
		}
		if err := c.addStep(ctx, domain.StepType(choice)); err != nil {
			return err
		}
	}
}

// fieldValue is one field write, applied in order so discriminants are
// set before the coordinates they reveal.
type fieldValue struct {
	name, raw string
}

func (c *Composer) addStep(ctx context.Context, t domain.StepType) error {
	var (
		values []fieldValue
		err    error
	)
	switch t {
	case domain.StepTakeImage:
		values, err = c.takeImage(ctx)
	case domain.StepUnscrewing:
		values, err = c.unscrewing(ctx)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownStep, t)
	}
	if err != nil {
		return err
	}

	key, err := c.form.AddStep(t)
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := c.form.SetStepField(key, v.name, v.raw); err != nil {
			return fmt.Errorf("setting %s: %w", v.name, err)
		}
	}
	return nil
}

func (c *Composer) takeImage(ctx context.Context) ([]fieldValue, error) {
	var pointcloud bool
	scope := string(domain.ScopeFullBattery)
	var x, y string

	err := c.run(ctx,
		huh.NewGroup(
			huh.NewConfirm().Title("Include pointcloud?").Value(&pointcloud),
			huh.NewSelect[string]().Title("Scope").Options(huh.NewOptions(domain.ImageScopeOptions()...)...).Value(&scope),
		),
		coordinateGroup(validation.LabelCenterX, validation.LabelCenterY, &scope, &x, &y),
	)
	if err != nil {
		return nil, err
	}

	values := []fieldValue{
		{"includePointcloud", strconv.FormatBool(pointcloud)},
		{"scope", scope},
	}
	if validation.RequiresCoordinates(scope) {
		values = append(values, fieldValue{"centerX", x}, fieldValue{"centerY", y})
	}
	return values, nil
}

func (c *Composer) unscrewing(ctx context.Context) ([]fieldValue, error) {
	mode := string(domain.ModeAutomatic)
	var x, y string

	err := c.run(ctx,
		huh.NewGroup(
			huh.NewSelect[string]().Title("Mode").Options(huh.NewOptions(domain.UnscrewingModeOptions()...)...).Value(&mode),
		),
		coordinateGroup(validation.LabelCoordinateX, validation.LabelCoordinateY, &mode, &x, &y),
	)
	if err != nil {
		return nil, err
	}

	values := []fieldValue{{"mode", mode}}
	if validation.RequiresCoordinates(mode) {
		values = append(values, fieldValue{"coordinateX", x}, fieldValue{"coordinateY", y})
	}
	return values, nil
}

// coordinateGroup asks for an X/Y pair and is hidden unless the
// discriminant calls for coordinates.
func coordinateGroup(labelX, labelY string, discriminant, x, y *string) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title(labelX).Value(x).Validate(coordinateValidator(labelX, discriminant)),
		huh.NewInput().Title(labelY).Value(y).Validate(coordinateValidator(labelY, discriminant)),
	).WithHideFunc(func() bool {
		return !validation.RequiresCoordinates(*discriminant)
	})
}

// coordinateValidator checks typed text with the same rule the form
// applies on submit. Text that is not a number counts as empty.
func coordinateValidator(label string, discriminant *string) func(string) error {
	return func(s string) error {
		var value *float64
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			value = &v
		}
		if ok, msg := validation.ValidateCoordinate(label, *discriminant, value); !ok {
			return errors.New(msg)
		}
		return nil
	}
}

func (c *Composer) run(ctx context.Context, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithTheme(c.theme).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrComposeAborted
	}
	return err
}
