package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

// frozenClock always reports the same instant, forcing the id bump path.
func frozenClock() time.Time { return time.UnixMilli(1700000000000) }

func newStore() *MemoryStore {
	return NewMemoryStore(logger.Nop(), WithClock(frozenClock))
}

func cellSwap() domain.RecipeFormData {
	img := domain.NewTakeImageStep()
	img.TakeImage.Scope = domain.ScopeSection
	img.TakeImage.CenterX = domain.Float(120)
	img.TakeImage.CenterY = domain.Float(85.5)
	return domain.RecipeFormData{
		Name:  "Cell Swap",
		Steps: []domain.Step{img, domain.NewUnscrewingStep()},
	}
}

func TestCommitCreatesRecipe(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	r, err := s.Commit(ctx, cellSwap(), nil)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if r.ID != 1700000000000 {
		t.Fatalf("expected clock-derived id, got %d", r.ID)
	}
	for i, step := range r.Steps {
		if step.ID == nil {
			t.Fatalf("step %d has no id", i)
		}
	}

	list, _ := s.List(ctx)
	if len(list) != 1 || list[0].Name != "Cell Swap" || list[0].StepCount != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestCommitIDsStrictlyIncrease(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	seen := map[int64]bool{}
	var last int64
	for i := 0; i < 5; i++ {
		r, err := s.Commit(ctx, cellSwap(), nil)
		if err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
		if r.ID <= last {
			t.Fatalf("id %d not greater than %d", r.ID, last)
		}
		last = r.ID
		for _, st := range r.Steps {
			if seen[*st.ID] {
				t.Fatalf("duplicate step id %d", *st.ID)
			}
			seen[*st.ID] = true
		}
	}
}

func TestCommitReplacesInPlace(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	first, _ := s.Commit(ctx, cellSwap(), nil)
	second, _ := s.Commit(ctx, domain.RecipeFormData{Name: "Other", Steps: []domain.Step{domain.NewUnscrewingStep()}}, nil)

	draft := first.FormData()
	draft.Name = "Cell Swap v2"
	draft.Steps = draft.Steps[:1]
	keptStepID := *draft.Steps[0].ID

	updated, err := s.Commit(ctx, draft, first)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != first.ID {
		t.Fatalf("id changed: %d -> %d", first.ID, updated.ID)
	}
	if *updated.Steps[0].ID != keptStepID {
		t.Fatal("existing step id was reassigned")
	}

	list, _ := s.List(ctx)
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("order changed: %+v", list)
	}
	if list[0].Name != "Cell Swap v2" || list[0].StepCount != 1 {
		t.Fatalf("fields not replaced: %+v", list[0])
	}
}

func TestCommitRejectsInvalidDraft(t *testing.T) {
	s := newStore()
	_, err := s.Commit(context.Background(), domain.RecipeFormData{Name: " "}, nil)
	if !errors.Is(err, domain.ErrInvalidDraft) {
		t.Fatalf("expected ErrInvalidDraft, got %v", err)
	}
	list, _ := s.List(context.Background())
	if len(list) != 0 {
		t.Fatal("invalid draft was stored")
	}
}

func TestCommitMissingTarget(t *testing.T) {
	s := newStore()
	_, err := s.Commit(context.Background(), cellSwap(), &domain.Recipe{ID: 99})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	a, _ := s.Commit(ctx, cellSwap(), nil)
	b, _ := s.Commit(ctx, cellSwap(), nil)
	c, _ := s.Commit(ctx, cellSwap(), nil)

	if err := s.Remove(ctx, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}

	list, _ := s.List(ctx)
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != c.ID {
		t.Fatalf("unexpected list after remove: %+v", list)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	r, _ := s.Commit(ctx, cellSwap(), nil)

	got, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Name = "mutated"
	*got.Steps[0].TakeImage.CenterX = -1

	again, _ := s.Get(ctx, r.ID)
	if again.Name != "Cell Swap" || *again.Steps[0].TakeImage.CenterX != 120 {
		t.Fatal("store state leaked through Get")
	}
}

func TestExport(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	r, _ := s.Commit(ctx, cellSwap(), nil)

	data, name, err := s.Export(ctx, r.ID, document.FormatJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "Cell Swap.json" {
		t.Fatalf("unexpected filename %q", name)
	}
	back, err := document.ParseRecipe(data, document.FormatJSON)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.ID != r.ID || len(back.Steps) != 2 {
		t.Fatalf("round trip mismatch: %+v", back)
	}

	if _, _, err := s.Export(ctx, 1, document.FormatYAML); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	s.Commit(ctx, cellSwap(), nil)
	other := domain.RecipeFormData{Name: "Lid removal", Description: "Open the CELL housing", Steps: []domain.Step{domain.NewUnscrewingStep()}}
	s.Commit(ctx, other, nil)

	got, _ := s.Search(ctx, "cell")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	got, _ = s.Search(ctx, "lid")
	if len(got) != 1 || !strings.HasPrefix(got[0].Name, "Lid") {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestIDGeneratorUsesClock(t *testing.T) {
	now := time.UnixMilli(5000)
	g := NewIDGenerator(func() time.Time { return now })
	if id := g.Next(); id != 5000 {
		t.Fatalf("got %d", id)
	}
	now = time.UnixMilli(9000)
	if id := g.Next(); id != 9000 {
		t.Fatalf("got %d", id)
	}
	now = time.UnixMilli(100)
	if id := g.Next(); id != 9001 {
		t.Fatalf("clock went backwards, got %d", id)
	}
}
