package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

// seqList keys items "k0", "k1", ... so tests can name them.
func seqList(n int) *StepList {
	next := 0
	l := &StepList{newKey: func() string {
		k := fmt.Sprintf("k%d", next)
		next++
		return k
	}}
	for i := 0; i < n; i++ {
		l.Append(domain.NewUnscrewingStep())
	}
	return l
}

func keys(l *StepList) []string {
	var out []string
	for _, it := range l.Items() {
		out = append(out, it.Key)
	}
	return out
}

func TestStepListAppendUniqueKeys(t *testing.T) {
	l := NewStepList()
	a := l.Append(domain.NewTakeImageStep())
	b := l.Append(domain.NewTakeImageStep())

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 0, l.Index(a))
	assert.Equal(t, 1, l.Index(b))
}

func TestStepListMoveTo(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		index int
		moved bool
		want  []string
	}{
		{"forward", "k0", 2, true, []string{"k1", "k2", "k0", "k3"}},
		{"backward", "k3", 1, true, []string{"k0", "k3", "k1", "k2"}},
		{"to front", "k2", 0, true, []string{"k2", "k0", "k1", "k3"}},
		{"to back", "k1", 3, true, []string{"k0", "k2", "k3", "k1"}},
		{"same position", "k1", 1, false, []string{"k0", "k1", "k2", "k3"}},
		{"past end", "k1", 4, false, []string{"k0", "k1", "k2", "k3"}},
		{"negative", "k1", -1, false, []string{"k0", "k1", "k2", "k3"}},
		{"unknown key", "nope", 0, false, []string{"k0", "k1", "k2", "k3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := seqList(4)
			assert.Equal(t, tt.moved, l.MoveTo(tt.key, tt.index))
			assert.Equal(t, tt.want, keys(l))
		})
	}
}

func TestStepListMoveIsPermutation(t *testing.T) {
	for from := 0; from < 5; from++ {
		for to := 0; to < 5; to++ {
			l := seqList(5)
			key, _ := l.KeyAt(from)
			l.MoveTo(key, to)

			assert.Equal(t, 5, l.Len())
			assert.Equal(t, to, l.Index(key))
			assert.ElementsMatch(t, []string{"k0", "k1", "k2", "k3", "k4"}, keys(l))
		}
	}
}

func TestStepListMoveToTarget(t *testing.T) {
	l := seqList(3)
	assert.True(t, l.MoveToTarget("k0", "k2"))
	assert.Equal(t, []string{"k1", "k2", "k0"}, keys(l))

	assert.False(t, l.MoveToTarget("k1", "k1"))
	assert.False(t, l.MoveToTarget("k1", "missing"))
	assert.Equal(t, []string{"k1", "k2", "k0"}, keys(l))
}

func TestStepListRemove(t *testing.T) {
	l := seqList(3)
	assert.True(t, l.Remove("k1"))
	assert.False(t, l.Remove("k1"))
	assert.Equal(t, []string{"k0", "k2"}, keys(l))
}

func TestStepListItemsAreCopies(t *testing.T) {
	l := NewStepList()
	key := l.Append(domain.NewTakeImageStep())

	items := l.Items()
	items[0].Step.TakeImage.Scope = domain.ScopeSection

	step, ok := l.Get(key)
	require.True(t, ok)
	assert.Equal(t, domain.ScopeFullBattery, step.TakeImage.Scope)
}

func TestStepListReplaceAssignsFreshKeys(t *testing.T) {
	l := seqList(2)
	l.Replace([]domain.Step{domain.NewTakeImageStep()})

	assert.Equal(t, []string{"k2"}, keys(l))
	assert.Equal(t, domain.StepTakeImage, l.Steps()[0].Type)
}
