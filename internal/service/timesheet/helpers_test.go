package timesheet

import (
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// brt is a fixed UTC-3 zone so tests do not depend on the host tz database.
var brt = time.FixedZone("BRT", -3*60*60)

var shift1236 = timesheet.ShiftTemplate{
	Name:                "12/36",
	EntryMinute:         7 * 60,
	LunchOutMinute:      12 * 60,
	LunchInMinute:       13 * 60,
	ExitMinute:          19 * 60,
	WorkMinutesExpected: 660,
}

var shiftNight = timesheet.ShiftTemplate{
	Name:                "noturno",
	EntryMinute:         19 * 60,
	ExitMinute:          6 * 60,
	WorkMinutesExpected: 600,
}

func newTestCalculator() *Calculator {
	return NewCalculator(brt)
}

// at returns a local instant on 2025-03-10 (+dayOffset days).
func at(dayOffset, hour, minute int) time.Time {
	return time.Date(2025, 3, 10+dayOffset, hour, minute, 0, 0, brt)
}

func rawPunch(t time.Time) timesheet.RawPunch {
	return timesheet.RawPunch{EmployeeID: "emp-1", Timestamp: t}
}

func absenceMarker(kind string) timesheet.RawPunch {
	return timesheet.RawPunch{
		EmployeeID:   "emp-1",
		Timestamp:    at(0, 12, 0),
		MarkedAbsent: true,
		AbsenceKind:  kind,
	}
}

func grant(slot timesheet.Slot) timesheet.LeaveGrant {
	return timesheet.LeaveGrant{EmployeeID: "emp-1", Date: at(0, 0, 0), ExcusedSlot: slot}
}

func tp(t time.Time) *time.Time {
	return &t
}

// sameInstant compares optional instants by value.
func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameDay(a, b timesheet.ClassifiedDay) bool {
	return sameInstant(a.Entry, b.Entry) &&
		sameInstant(a.LunchOut, b.LunchOut) &&
		sameInstant(a.LunchIn, b.LunchIn) &&
		sameInstant(a.Exit, b.Exit)
}
