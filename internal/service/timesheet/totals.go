package timesheet

import (
	"strings"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// Day-shift exits before this local minute are rejected for review.
const earliestDayExitMinute = 16 * 60

// resolvedSlot is a slot minute after grant substitution.
type resolvedSlot struct {
	minute  int
	present bool
	excused bool
}

// ComputeDailyTotals derives worked, overtime, lateness and early-departure
// minutes for one employee-day. Data-quality problems yield a zeroed result
// with an observation; only an invalid template is an error.
func (c *Calculator) ComputeDailyTotals(
	classified timesheet.ClassifiedDay,
	grants []timesheet.LeaveGrant,
	absence timesheet.AbsenceInfo,
	template timesheet.ShiftTemplate,
	isNightShift bool,
) (timesheet.DailyTotals, error) {
	if err := template.Validate(); err != nil {
		return timesheet.DailyTotals{}, err
	}

	if absence.IsFullAbsence {
		return timesheet.DailyTotals{
			Observations:  []string{timesheet.ObservationFullAbsence},
			IsFullAbsence: true,
		}, nil
	}

	excused := excusedSlots(grants)
	if excused[timesheet.SlotFullDay] {
		return timesheet.DailyTotals{
			WorkedMinutes: template.WorkMinutesExpected,
			Observations:  []string{timesheet.ObservationDayExcused},
		}, nil
	}

	slots := make(map[timesheet.Slot]resolvedSlot, len(timesheet.CanonicalSlots))
	for _, s := range timesheet.CanonicalSlots {
		slots[s] = c.resolveSlot(s, classified, excused, template)
	}

	if isNightShift {
		return nightTotals(slots, absence, template), nil
	}
	return dayTotals(slots, absence, template), nil
}

func excusedSlots(grants []timesheet.LeaveGrant) map[timesheet.Slot]bool {
	excused := make(map[timesheet.Slot]bool, len(grants))
	for _, g := range grants {
		excused[g.ExcusedSlot] = true
	}
	return excused
}

// resolveSlot substitutes the expected minute for excused slots.
func (c *Calculator) resolveSlot(s timesheet.Slot, classified timesheet.ClassifiedDay, excused map[timesheet.Slot]bool, template timesheet.ShiftTemplate) resolvedSlot {
	if excused[s] {
		return resolvedSlot{minute: template.ExpectedMinute(s), present: true, excused: true}
	}
	if t := classified.Get(s); t != nil {
		return resolvedSlot{minute: c.MinutesSinceMidnight(*t), present: true}
	}
	return resolvedSlot{}
}

// resolved follows the day-shift convention that minute 0 means "no value".
func (r resolvedSlot) resolved() bool {
	return r.present && r.minute > 0
}

func flagged(observation string) timesheet.DailyTotals {
	return timesheet.DailyTotals{Observations: []string{observation}}
}

func dayTotals(slots map[timesheet.Slot]resolvedSlot, absence timesheet.AbsenceInfo, template timesheet.ShiftTemplate) timesheet.DailyTotals {
	entry := slots[timesheet.SlotEntry]
	lunchOut := slots[timesheet.SlotLunchOut]
	lunchIn := slots[timesheet.SlotLunchIn]
	exit := slots[timesheet.SlotExit]

	if exit.resolved() && lunchIn.resolved() && exit.minute <= lunchIn.minute {
		return flagged(timesheet.ObservationExitBeforeReturn)
	}
	if exit.resolved() && !exit.excused && exit.minute < earliestDayExitMinute {
		return flagged(timesheet.ObservationExitTooEarly)
	}
	if !entry.resolved() || !exit.resolved() {
		return flagged(timesheet.ObservationMissingPunch)
	}

	morning := 0
	if lunchOut.resolved() {
		morning = max(0, lunchOut.minute-entry.minute)
	}
	afternoon := 0
	if lunchIn.resolved() {
		afternoon = max(0, exit.minute-lunchIn.minute)
	}
	worked := morning + afternoon

	totals := timesheet.DailyTotals{
		WorkedMinutes:   worked,
		OvertimeMinutes: max(0, worked-template.WorkMinutesExpected),
	}
	if !entry.excused {
		totals.LateEntryMinutes = max(0, entry.minute-template.EntryMinute)
	}
	if !lunchIn.excused && lunchIn.resolved() {
		totals.LateLunchReturnMinutes = max(0, lunchIn.minute-template.LunchInMinute)
	}
	if !exit.excused {
		totals.EarlyDepartureMinutes = max(0, template.ExitMinute-exit.minute)
	}

	obs := excusedObservations(slots)
	if len(obs) == 0 {
		obs = append(obs, timesheet.ObservationNormal)
	}
	totals.Observations = appendPartialAbsence(obs, absence)
	return totals
}

// nightTotals rolls the exit over midnight when it is before the entry. Early
// departure compares the template exit with the rolled-over exit, so an exit
// after midnight never counts as leaving early.
func nightTotals(slots map[timesheet.Slot]resolvedSlot, absence timesheet.AbsenceInfo, template timesheet.ShiftTemplate) timesheet.DailyTotals {
	entry := slots[timesheet.SlotEntry]
	exit := slots[timesheet.SlotExit]

	if !entry.present || !exit.present {
		return flagged(timesheet.ObservationMissingPunch)
	}

	exitAdjusted := exit.minute
	if exitAdjusted < entry.minute {
		exitAdjusted += timesheet.MinutesPerDay
	}
	worked := exitAdjusted - entry.minute
	totals := timesheet.DailyTotals{
		WorkedMinutes:   worked,
		OvertimeMinutes: max(0, worked-template.WorkMinutesExpected),
	}
	if !entry.excused {
		totals.LateEntryMinutes = max(0, entry.minute-template.EntryMinute)
	}
	if !exit.excused {
		totals.EarlyDepartureMinutes = max(0, template.ExitMinute-exitAdjusted)
	}

	obs := []string{timesheet.ObservationNightShift}
	for _, s := range []timesheet.Slot{timesheet.SlotEntry, timesheet.SlotExit} {
		if slots[s].excused {
			obs = append(obs, timesheet.ExcusedObservation(s))
		}
	}
	totals.Observations = appendPartialAbsence(obs, absence)
	return totals
}

func excusedObservations(slots map[timesheet.Slot]resolvedSlot) []string {
	obs := make([]string, 0, len(timesheet.CanonicalSlots))
	for _, s := range timesheet.CanonicalSlots {
		if slots[s].excused {
			obs = append(obs, timesheet.ExcusedObservation(s))
		}
	}
	return obs
}

func appendPartialAbsence(obs []string, absence timesheet.AbsenceInfo) []string {
	if !absence.HasAbsence || absence.IsFullAbsence {
		return obs
	}
	return append(obs, timesheet.ObservationPartialAbsence+
		timesheet.ObservationPartialAbsenceDivider+
		strings.Join(absence.PartialSlots, ", "))
}
