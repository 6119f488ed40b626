package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinShifts(t *testing.T) {
	assert.Equal(t, []string{Shift12x36, Shift6x1, ShiftNight}, BuiltinShiftNames())

	for _, name := range BuiltinShiftNames() {
		tmpl, ok := BuiltinShift(name)
		require.True(t, ok, name)
		assert.NoError(t, tmpl.Validate(), name)
		assert.Equal(t, name, tmpl.Name)
	}

	night, _ := BuiltinShift(ShiftNight)
	assert.True(t, night.IsNightShift())

	day, _ := BuiltinShift(Shift12x36)
	assert.False(t, day.IsNightShift())

	_, ok := BuiltinShift("5x2")
	assert.False(t, ok)
}
