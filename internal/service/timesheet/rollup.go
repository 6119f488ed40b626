package timesheet

import "github.com/redeposto/ponto-backend-go/internal/domain/timesheet"

// Accumulate folds one day into the monthly totals. It only adds counters, so
// the order in which days are folded does not matter.
func Accumulate(m timesheet.MonthlyTotals, d timesheet.DailyTotals) timesheet.MonthlyTotals {
	switch {
	case d.IsFullAbsence:
		m.AbsenceCount += 1
	case d.HasObservation(timesheet.ObservationDayExcused):
		m.DaysExcused++
	case d.WorkedMinutes > 0:
		m.WorkedMinutes += d.WorkedMinutes
		m.OvertimeMinutes += d.OvertimeMinutes
		m.LateMinutes += d.LateEntryMinutes + d.LateLunchReturnMinutes
		m.EarlyDepartureMinutes += d.EarlyDepartureMinutes
		m.DaysWorked++
	}

	// Partial absences count as half a day.
	if !d.IsFullAbsence && d.HasObservation(timesheet.ObservationPartialAbsence) {
		m.AbsenceCount += 0.5
	}
	return m
}

// Rollup folds a sequence of days starting from zero totals.
func Rollup(days []timesheet.DailyTotals) timesheet.MonthlyTotals {
	var m timesheet.MonthlyTotals
	for _, d := range days {
		m = Accumulate(m, d)
	}
	return m
}
