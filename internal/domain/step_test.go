package domain

import (
	"errors"
	"testing"
)

func TestNewStepDefaults(t *testing.T) {
	img, err := NewStep(StepTakeImage)
	if err != nil {
		t.Fatalf("new take image: %v", err)
	}
	if !img.WellFormed() {
		t.Fatal("take image step is not well formed")
	}
	if img.TakeImage.IncludePointcloud {
		t.Fatal("expected includePointcloud=false")
	}
	if img.TakeImage.Scope != ScopeFullBattery {
		t.Fatalf("expected scope FullBattery, got %q", img.TakeImage.Scope)
	}
	if img.TakeImage.CenterX != nil || img.TakeImage.CenterY != nil {
		t.Fatal("expected no coordinates")
	}
	if img.ID != nil {
		t.Fatal("drafted step should have no id")
	}

	u, err := NewStep(StepUnscrewing)
	if err != nil {
		t.Fatalf("new unscrewing: %v", err)
	}
	if u.Unscrewing.Mode != ModeAutomatic {
		t.Fatalf("expected mode Automatic, got %q", u.Unscrewing.Mode)
	}
	if u.Unscrewing.CoordinateX != nil || u.Unscrewing.CoordinateY != nil {
		t.Fatal("expected no coordinates")
	}

	if _, err := NewStep("Welding"); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
}

func TestStepCloneIsDeep(t *testing.T) {
	s := NewTakeImageStep()
	s.ID = Int(7)
	s.TakeImage.Scope = ScopeSection
	s.TakeImage.CenterX = Float(1)

	c := s.Clone()
	*c.ID = 8
	*c.TakeImage.CenterX = 2
	c.TakeImage.Scope = ScopeFullBattery

	if *s.ID != 7 {
		t.Fatalf("id leaked through clone: %d", *s.ID)
	}
	if *s.TakeImage.CenterX != 1 {
		t.Fatalf("centerX leaked through clone: %v", *s.TakeImage.CenterX)
	}
	if s.TakeImage.Scope != ScopeSection {
		t.Fatal("scope leaked through clone")
	}
}

func TestMatchStep(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{NewTakeImageStep(), "image"},
		{NewUnscrewingStep(), "unscrew"},
	}
	for _, tt := range tests {
		t.Run(tt.step.Type.String(), func(t *testing.T) {
			got := MatchStep(&tt.step,
				func(*TakeImageStep) string { return "image" },
				func(*UnscrewingStep) string { return "unscrew" },
			)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecipeFormDataDropsID(t *testing.T) {
	r := &Recipe{ID: 42, Name: "Cell Swap", Steps: []Step{NewUnscrewingStep()}}
	d := r.FormData()
	if d.Name != r.Name || len(d.Steps) != 1 {
		t.Fatalf("unexpected form data: %+v", d)
	}
	d.Steps[0].Unscrewing.Mode = ModeSpecific
	if r.Steps[0].Unscrewing.Mode != ModeAutomatic {
		t.Fatal("form data shares steps with the recipe")
	}
}

func TestFieldErrors(t *testing.T) {
	var none FieldErrors
	if none.Err() != nil {
		t.Fatal("empty FieldErrors should not be an error")
	}
	fe := FieldErrors{
		{Path: "name", Message: "Recipe name is required"},
		{Path: "steps.0.centerY", Message: "Center Y cannot be negative."},
	}
	if !fe.Has("steps.0.centerY") {
		t.Fatal("expected centerY failure")
	}
	if msg, _ := fe.Get("name"); msg != "Recipe name is required" {
		t.Fatalf("unexpected message %q", msg)
	}
	var target FieldErrors
	if !errors.As(error(fe), &target) || len(target) != 2 {
		t.Fatal("errors.As should recover FieldErrors")
	}
}

func TestOptionValues(t *testing.T) {
	if got := ImageScopeOptions(); len(got) != 2 || got[0] != "FullBattery" || got[1] != "Section" {
		t.Fatalf("scope options %v", got)
	}
	if got := UnscrewingModeOptions(); len(got) != 2 || got[0] != "Automatic" || got[1] != "Specific" {
		t.Fatalf("mode options %v", got)
	}
}
