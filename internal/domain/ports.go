package domain

import "context"

// RecipeStore owns the collection of committed recipes. Implementations
// can be in-memory or backed by anything else; the editor only needs
// this contract.
type RecipeStore interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id int64) (*Recipe, error)
	// Commit stores a draft. With a nil target it creates a recipe with a
	// fresh id; otherwise it replaces the target's fields in place.
	Commit(ctx context.Context, draft RecipeFormData, target *Recipe) (*Recipe, error)
	Remove(ctx context.Context, id int64) error
}

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// CommandParser converts raw user input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
