// Package recipe holds the recipe collection.
package recipe

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/logger"
	"github.com/hammamikhairi/recipedit/internal/validation"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*MemoryStore)(nil)

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock sets the clock used for recipe and step ids.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.ids = NewIDGenerator(now)
	}
}

// MemoryStore keeps committed recipes in memory, in insertion order.
// Recipes are copied on the way in and out, so callers never share
// state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes []*domain.Recipe
	ids     *IDGenerator
	log     *logger.Logger
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(log *logger.Logger, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		ids: NewIDGenerator(nil),
		log: log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List returns summaries of all recipes in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r.Summary())
	}
	return out, nil
}

// Get returns a copy of the recipe with id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug("recipe not found: %d", id)
		return nil, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	return s.recipes[i].Clone(), nil
}

// Commit stores a validated draft. With a nil target the draft becomes a
// new recipe at the end of the collection; otherwise the target's fields
// are replaced and it keeps its id and position. Steps without an id get
// one.
func (s *MemoryStore) Commit(ctx context.Context, draft domain.RecipeFormData, target *domain.Recipe) (*domain.Recipe, error) {
	if errs := validation.ValidateDraft(draft); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDraft, errs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := draft.Clone()
	for i := range data.Steps {
		if data.Steps[i].ID == nil {
			data.Steps[i].ID = domain.Int(s.ids.Next())
		}
	}

	if target == nil {
		r := &domain.Recipe{
			ID:          s.ids.Next(),
			Name:        data.Name,
			Description: data.Description,
			Steps:       data.Steps,
		}
		s.recipes = append(s.recipes, r)
		s.log.Info("recipe created: %s (id=%d, steps=%d)", r.Name, r.ID, len(r.Steps))
		return r.Clone(), nil
	}

	i := s.indexOf(target.ID)
	if i < 0 {
		return nil, fmt.Errorf("recipe %d: %w", target.ID, domain.ErrNotFound)
	}
	r := s.recipes[i]
	r.Name = data.Name
	r.Description = data.Description
	r.Steps = data.Steps
	s.log.Info("recipe updated: %s (id=%d, steps=%d)", r.Name, r.ID, len(r.Steps))
	return r.Clone(), nil
}

// Remove deletes the recipe with id. Other recipes keep their order.
func (s *MemoryStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	name := s.recipes[i].Name
	s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
	s.log.Info("recipe removed: %s (id=%d)", name, id)
	return nil
}

// Export serialises the recipe with id and suggests a filename for it.
func (s *MemoryStore) Export(ctx context.Context, id int64, format document.Format) ([]byte, string, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := document.Marshal(r, format)
	if err != nil {
		return nil, "", fmt.Errorf("export recipe %d: %w", id, err)
	}
	return data, document.Filename(r, format), nil
}

// Search returns recipes whose name or description contains query,
// ignoring case.
func (s *MemoryStore) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		if matches(r, q) {
			out = append(out, r.Summary())
		}
	}
	return out, nil
}

func matches(r *domain.Recipe, query string) bool {
	return strings.Contains(strings.ToLower(r.Name), query) ||
		strings.Contains(strings.ToLower(r.Description), query)
}

// indexOf must be called with the lock held.
func (s *MemoryStore) indexOf(id int64) int {
	for i, r := range s.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}
