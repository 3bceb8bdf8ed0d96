package editor

import (
	"github.com/google/uuid"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

// Item is a step plus its session-local identity. Keys survive reorders
// and are unrelated to the step's domain id, so two identical steps stay
// independently addressable.
type Item struct {
	Key  string
	Step domain.Step
}

// StepList is the ordered step collection of one draft.
type StepList struct {
	items  []Item
	newKey func() string
}

// NewStepList returns an empty list that keys items with random UUIDs.
func NewStepList() *StepList {
	return &StepList{newKey: uuid.NewString}
}

// Len returns the number of steps.
func (l *StepList) Len() int { return len(l.items) }

// Append adds a step at the end and returns its key.
func (l *StepList) Append(step domain.Step) string {
	key := l.newKey()
	l.items = append(l.items, Item{Key: key, Step: step})
	return key
}

// Index returns the position of key, or -1.
func (l *StepList) Index(key string) int {
	for i, it := range l.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

// KeyAt returns the key at position i.
func (l *StepList) KeyAt(i int) (string, bool) {
	if i < 0 || i >= len(l.items) {
		return "", false
	}
	return l.items[i].Key, true
}

// Get returns the live step for key. Callers mutate it through an editor.
func (l *StepList) Get(key string) (*domain.Step, bool) {
	i := l.Index(key)
	if i < 0 {
		return nil, false
	}
	return &l.items[i].Step, true
}

// Remove deletes the step with the given key. It reports whether a step
// was removed.
func (l *StepList) Remove(key string) bool {
	i := l.Index(key)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// MoveTo moves the step to newIndex with a single splice: remove from the
// old position, insert at the new one. Unknown keys, out-of-range indexes
// and same-position moves are no-ops.
func (l *StepList) MoveTo(key string, newIndex int) bool {
	from := l.Index(key)
	if from < 0 || newIndex < 0 || newIndex >= len(l.items) || from == newIndex {
		return false
	}
	it := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items, Item{})
	copy(l.items[newIndex+1:], l.items[newIndex:])
	l.items[newIndex] = it
	return true
}

// MoveToTarget handles a drag release: the dragged step takes the
// position currently held by the step it was dropped on.
func (l *StepList) MoveToTarget(srcKey, dstKey string) bool {
	if srcKey == dstKey {
		return false
	}
	to := l.Index(dstKey)
	if to < 0 {
		return false
	}
	return l.MoveTo(srcKey, to)
}

// Items returns a copy of the keyed steps in order.
func (l *StepList) Items() []Item {
	out := make([]Item, len(l.items))
	for i, it := range l.items {
		out[i] = Item{Key: it.Key, Step: it.Step.Clone()}
	}
	return out
}

// Steps returns deep copies of the steps in order.
func (l *StepList) Steps() []domain.Step {
	out := make([]domain.Step, len(l.items))
	for i, it := range l.items {
		out[i] = it.Step.Clone()
	}
	return out
}

// Replace drops every step and loads steps with fresh keys.
func (l *StepList) Replace(steps []domain.Step) {
	l.items = make([]Item, 0, len(steps))
	for _, s := range steps {
		l.Append(s.Clone())
	}
}
