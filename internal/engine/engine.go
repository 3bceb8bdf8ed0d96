// Package engine ties the recipe form to the recipe collection. It is the
// single entry point front ends drive: list, create, edit, remove, export
// and import.
package engine

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/editor"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

// RemovePrompt is the question asked before a recipe is deleted.
const RemovePrompt = "Are you sure you want to delete this recipe?"

// Option configures the engine.
type Option func(*Engine)

// WithExportFormat sets the format used when Export is called without one.
func WithExportFormat(f document.Format) Option {
	return func(e *Engine) {
		e.exportFormat = f
	}
}

// Exporter is an optional interface a RecipeStore can satisfy to
// serialise recipes itself.
type Exporter interface {
	Export(ctx context.Context, id int64, format document.Format) ([]byte, string, error)
}

// Status is a snapshot of the form for status displays.
type Status struct {
	State  editor.State
	Name   string
	Steps  int
	Errors int
}

// Engine owns one recipe form and the store it commits to. It is meant to
// be driven from a single goroutine.
type Engine struct {
	store        domain.RecipeStore
	confirm      domain.Confirmer
	form         *editor.Form
	log          *logger.Logger
	exportFormat document.Format
}

// New creates an engine with the given dependencies and options.
func New(store domain.RecipeStore, confirm domain.Confirmer, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		confirm:      confirm,
		form:         editor.NewForm(store),
		log:          log,
		exportFormat: document.FormatJSON,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ListRecipes returns the collection in insertion order.
func (e *Engine) ListRecipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	return e.store.List(ctx)
}

// GetRecipe returns a full recipe by id.
func (e *Engine) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	return e.store.Get(ctx, id)
}

// Form exposes the draft form for field-level edits.
func (e *Engine) Form() *editor.Form { return e.form }

// Status returns a snapshot of the form.
func (e *Engine) Status() Status {
	draft := e.form.Draft()
	return Status{
		State:  e.form.State(),
		Name:   draft.Name,
		Steps:  len(draft.Steps),
		Errors: len(e.form.Errors()),
	}
}

// StartCreate opens an empty draft.
func (e *Engine) StartCreate() error {
	if err := e.form.Open(); err != nil {
		return err
	}
	e.log.Debug("form opened for a new recipe")
	return nil
}

// StartEdit opens a draft pre-filled from recipe id.
func (e *Engine) StartEdit(ctx context.Context, id int64) error {
	if e.form.IsOpen() {
		return domain.ErrFormOpen
	}
	r, err := e.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting recipe: %w", err)
	}
	if err := e.form.Edit(r); err != nil {
		return err
	}
	e.log.Debug("form opened for recipe %d (%s)", r.ID, r.Name)
	return nil
}

// Submit validates and commits the draft.
func (e *Engine) Submit(ctx context.Context) (*domain.Recipe, error) {
	r, err := e.form.Submit(ctx)
	if err != nil {
		e.log.Debug("submit rejected: %v", err)
		return nil, err
	}
	return r, nil
}

// Cancel discards the draft.
func (e *Engine) Cancel() {
	if e.form.IsOpen() {
		e.log.Debug("form cancelled (%s)", e.form.State())
	}
	e.form.Cancel()
}

// Remove deletes recipe id after the user confirms. A declined prompt
// returns ErrDeclined and changes nothing. A form editing the removed
// recipe is closed.
func (e *Engine) Remove(ctx context.Context, id int64) error {
	r, err := e.store.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := e.confirm.Confirm(ctx, RemovePrompt)
	if err != nil {
		return fmt.Errorf("confirming removal: %w", err)
	}
	if !ok {
		e.log.Debug("removal of recipe %d declined", id)
		return domain.ErrDeclined
	}
	if err := e.store.Remove(ctx, id); err != nil {
		return err
	}
	if t := e.form.Target(); t != nil && t.ID == r.ID {
		e.log.Warn("recipe %d removed while being edited; closing form", id)
		e.form.Cancel()
	}
	return nil
}

// Export serialises recipe id. An empty format uses the configured
// default.
func (e *Engine) Export(ctx context.Context, id int64, format document.Format) ([]byte, string, error) {
	if format == "" {
		format = e.exportFormat
	}
	if ex, ok := e.store.(Exporter); ok {
		return ex.Export(ctx, id, format)
	}
	r, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := document.Marshal(r, format)
	if err != nil {
		return nil, "", err
	}
	return data, document.Filename(r, format), nil
}

// ImportDraft loads a document into the open form.
func (e *Engine) ImportDraft(data []byte, format document.Format) error {
	if err := e.form.Import(data, format); err != nil {
		return err
	}
	e.log.Info("draft imported: %s", e.form.Draft().Name)
	return nil
}
