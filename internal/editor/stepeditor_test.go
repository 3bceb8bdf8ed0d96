package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedit/internal/domain"
)

func fieldNames(fields []Field) []string {
	var out []string
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

func TestTakeImageEditorFieldsFollowScope(t *testing.T) {
	step := domain.NewTakeImageStep()
	ed := For(&step)
	assert.Equal(t, domain.StepTakeImage, ed.Type())
	assert.Equal(t, []string{"includePointcloud", "scope"}, fieldNames(ed.Fields()))

	require.NoError(t, ed.Set("scope", "Section"))
	assert.Equal(t, []string{"includePointcloud", "scope", "centerX", "centerY"}, fieldNames(ed.Fields()))
	assert.Equal(t, map[string]string{
		"centerX": "Center X is required in Section mode.",
		"centerY": "Center Y is required in Section mode.",
	}, ed.Validate())
}

func TestTakeImageEditorRetainsHiddenCoordinates(t *testing.T) {
	step := domain.NewTakeImageStep()
	ed := For(&step)
	require.NoError(t, ed.Set("scope", "Section"))
	require.NoError(t, ed.Set("centerX", "120"))
	require.NoError(t, ed.Set("centerY", "85.5"))

	require.NoError(t, ed.Set("scope", "FullBattery"))
	assert.Empty(t, ed.Validate())
	assert.Equal(t, 120.0, *step.TakeImage.CenterX)

	err := ed.Set("centerX", "1")
	assert.ErrorIs(t, err, domain.ErrFieldHidden)
	assert.Equal(t, 120.0, *step.TakeImage.CenterX)
}

func TestTakeImageEditorSetErrors(t *testing.T) {
	step := domain.NewTakeImageStep()
	ed := For(&step)

	assert.ErrorIs(t, ed.Set("scope", "Everything"), domain.ErrInvalidValue)
	assert.ErrorIs(t, ed.Set("includePointcloud", "maybe"), domain.ErrInvalidValue)
	assert.ErrorIs(t, ed.Set("mode", "Automatic"), domain.ErrUnknownField)

	require.NoError(t, ed.Set("includePointcloud", "yes"))
	assert.True(t, step.TakeImage.IncludePointcloud)
}

func TestUnscrewingEditorNumbers(t *testing.T) {
	step := domain.NewUnscrewingStep()
	ed := For(&step)
	assert.Equal(t, []string{"mode"}, fieldNames(ed.Fields()))

	require.NoError(t, ed.Set("mode", "Specific"))
	require.NoError(t, ed.Set("coordinateX", "-4"))
	require.NoError(t, ed.Set("coordinateY", "abc"))

	assert.Nil(t, step.Unscrewing.CoordinateY)
	assert.Equal(t, map[string]string{
		"coordinateX": "Coordinate X cannot be negative.",
		"coordinateY": "Coordinate Y is required in Specific mode.",
	}, ed.Validate())

	fields := ed.Fields()
	assert.Equal(t, "-4", fields[1].Value)
	assert.Equal(t, "", fields[2].Value)
	assert.Equal(t, KindNumber, fields[1].Kind)
}

func TestUnscrewingEditorClearedMode(t *testing.T) {
	step := domain.NewUnscrewingStep()
	ed := For(&step)
	require.NoError(t, ed.Set("mode", ""))
	assert.Equal(t, map[string]string{"mode": "Mode required"}, ed.Validate())
}

func TestEditorFieldNamesIgnoreCase(t *testing.T) {
	step := domain.NewUnscrewingStep()
	ed := For(&step)
	require.NoError(t, ed.Set("MODE", "Specific"))
	require.NoError(t, ed.Set("coordinatex", "3"))
	assert.Equal(t, 3.0, *step.Unscrewing.CoordinateX)
}

func TestEditorNonFiniteNumbersClearCoordinate(t *testing.T) {
	for _, raw := range []string{"inf", "+Inf", "-infinity", "NaN"} {
		t.Run(raw, func(t *testing.T) {
			step := domain.NewTakeImageStep()
			ed := For(&step)
			require.NoError(t, ed.Set("scope", "Section"))
			require.NoError(t, ed.Set("centerX", "5"))
			require.NoError(t, ed.Set("centerX", raw))

			assert.Nil(t, step.TakeImage.CenterX)
			assert.Equal(t, "Center X is required in Section mode.", ed.Validate()["centerX"])
		})
	}
}
