package fixtures

import (
	"slices"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// ==========================================
// BUILT-IN SHIFT TEMPLATES
// ==========================================

// Shift names used on the station rosters.
const (
	Shift12x36 = "12/36"
	Shift6x1   = "6/1"
	ShiftNight = "noturno"
)

var builtinShifts = map[string]timesheet.ShiftTemplate{
	// 07:00 - 12:00 / 13:00 - 19:00
	Shift12x36: {
		Name:                Shift12x36,
		EntryMinute:         7 * 60,
		LunchOutMinute:      12 * 60,
		LunchInMinute:       13 * 60,
		ExitMinute:          19 * 60,
		WorkMinutesExpected: 660,
	},
	// 08:00 - 12:00 / 13:00 - 17:20
	Shift6x1: {
		Name:                Shift6x1,
		EntryMinute:         8 * 60,
		LunchOutMinute:      12 * 60,
		LunchInMinute:       13 * 60,
		ExitMinute:          17*60 + 20,
		WorkMinutesExpected: 500,
	},
	// 19:00 - 07:00, no lunch punches
	ShiftNight: {
		Name:                ShiftNight,
		EntryMinute:         19 * 60,
		ExitMinute:          7 * 60,
		WorkMinutesExpected: 660,
	},
}

// BuiltinShift returns the template shipped with the service for a shift name.
func BuiltinShift(name string) (timesheet.ShiftTemplate, bool) {
	t, ok := builtinShifts[name]
	return t, ok
}

// BuiltinShiftNames lists the built-in shift names in sorted order.
func BuiltinShiftNames() []string {
	names := make([]string, 0, len(builtinShifts))
	for name := range builtinShifts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
