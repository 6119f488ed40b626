package timesheet

import (
	"strings"
	"time"
)

// Slot is one of the four daily checkpoints, or the whole day for leave grants.
type Slot string

const (
	SlotEntry    Slot = "ENTRY"
	SlotLunchOut Slot = "LUNCH_OUT"
	SlotLunchIn  Slot = "LUNCH_IN"
	SlotExit     Slot = "EXIT"
	SlotFullDay  Slot = "FULL_DAY"
)

// CanonicalSlots lists the four checkpoints in the order they happen during a day.
var CanonicalSlots = []Slot{SlotEntry, SlotLunchOut, SlotLunchIn, SlotExit}

var SlotValues = []string{
	string(SlotEntry),
	string(SlotLunchOut),
	string(SlotLunchIn),
	string(SlotExit),
	string(SlotFullDay),
}

// Label returns the name used on the station timesheets.
func (s Slot) Label() string {
	switch s {
	case SlotEntry:
		return "Entrada Manhã"
	case SlotLunchOut:
		return "Saída Manhã"
	case SlotLunchIn:
		return "Entrada Tarde"
	case SlotExit:
		return "Saída Tarde"
	case SlotFullDay:
		return "Dia Inteiro"
	}
	return string(s)
}

// RawPunch is one clock event (or absence marker) as read from storage.
// A zero Timestamp means the source value could not be normalized.
type RawPunch struct {
	EmployeeID   string
	Timestamp    time.Time
	MarkedAbsent bool
	AbsenceKind  string
}

// LeaveGrant ("abono") excuses one slot or the whole day.
type LeaveGrant struct {
	EmployeeID  string
	Date        time.Time
	ExcusedSlot Slot
}

// ShiftTemplate holds the expected clock times of a named schedule, in minutes
// since local midnight.
type ShiftTemplate struct {
	Name                string `json:"name"`
	EntryMinute         int    `json:"entry_minute"`
	LunchOutMinute      int    `json:"lunch_out_minute"`
	LunchInMinute       int    `json:"lunch_in_minute"`
	ExitMinute          int    `json:"exit_minute"`
	WorkMinutesExpected int    `json:"work_minutes_expected"`
}

// Validate reports configuration mistakes. The calculator refuses invalid templates.
func (t ShiftTemplate) Validate() error {
	for _, m := range []int{t.EntryMinute, t.LunchOutMinute, t.LunchInMinute, t.ExitMinute} {
		if m < 0 || m >= MinutesPerDay {
			return ErrInvalidShiftTemplate
		}
	}
	if t.WorkMinutesExpected <= 0 {
		return ErrInvalidShiftTemplate
	}
	return nil
}

// IsNightShift reports whether the shift crosses local midnight.
func (t ShiftTemplate) IsNightShift() bool {
	return t.ExitMinute < t.EntryMinute
}

// ExpectedMinute returns the template minute for a canonical slot.
func (t ShiftTemplate) ExpectedMinute(s Slot) int {
	switch s {
	case SlotEntry:
		return t.EntryMinute
	case SlotLunchOut:
		return t.LunchOutMinute
	case SlotLunchIn:
		return t.LunchInMinute
	case SlotExit:
		return t.ExitMinute
	}
	return 0
}

const MinutesPerDay = 1440

// ClassifiedDay is the four-slot schedule derived from a day's punches.
// Ordering between slots is expected but not guaranteed.
type ClassifiedDay struct {
	Entry    *time.Time
	LunchOut *time.Time
	LunchIn  *time.Time
	Exit     *time.Time
}

// Get returns the punch assigned to a canonical slot.
func (c ClassifiedDay) Get(s Slot) *time.Time {
	switch s {
	case SlotEntry:
		return c.Entry
	case SlotLunchOut:
		return c.LunchOut
	case SlotLunchIn:
		return c.LunchIn
	case SlotExit:
		return c.Exit
	}
	return nil
}

// AbsenceInfo summarizes the absence markers of a day.
type AbsenceInfo struct {
	HasAbsence    bool     `json:"has_absence"`
	IsFullAbsence bool     `json:"is_full_absence"`
	PartialSlots  []string `json:"partial_slots"`
	RawCount      int      `json:"raw_count"`
}

// Observation flags attached to DailyTotals.
const (
	ObservationFullAbsence           = "FULL_ABSENCE"
	ObservationDayExcused            = "DAY_EXCUSED"
	ObservationExitBeforeReturn      = "INCONSISTENT_DATA_EXIT_BEFORE_RETURN"
	ObservationExitTooEarly          = "EXIT_TOO_EARLY"
	ObservationMissingPunch          = "MISSING_PUNCH"
	ObservationNormal                = "NORMAL"
	ObservationNightShift            = "NIGHT_SHIFT"
	ObservationPartialAbsence        = "PARTIAL_ABSENCE"
	ObservationExcusedPrefix         = "EXCUSED_"
	ObservationPartialAbsenceDivider = ": "
)

// ExcusedObservation names the flag appended when a slot was covered by a grant.
func ExcusedObservation(s Slot) string {
	return ObservationExcusedPrefix + string(s)
}

// DailyTotals is the computed result for one employee-day.
type DailyTotals struct {
	WorkedMinutes          int      `json:"worked_minutes"`
	OvertimeMinutes        int      `json:"overtime_minutes"`
	LateEntryMinutes       int      `json:"late_entry_minutes"`
	LateLunchReturnMinutes int      `json:"late_lunch_return_minutes"`
	EarlyDepartureMinutes  int      `json:"early_departure_minutes"`
	Observations           []string `json:"observations"`
	IsFullAbsence          bool     `json:"is_full_absence"`
}

// HasObservation reports whether any observation equals flag or starts with "flag: ".
func (d DailyTotals) HasObservation(flag string) bool {
	for _, o := range d.Observations {
		if o == flag || strings.HasPrefix(o, flag+ObservationPartialAbsenceDivider) {
			return true
		}
	}
	return false
}

// IsInconsistent reports whether the day needs manual review.
func (d DailyTotals) IsInconsistent() bool {
	return d.HasObservation(ObservationMissingPunch) ||
		d.HasObservation(ObservationExitTooEarly) ||
		d.HasObservation(ObservationExitBeforeReturn)
}

// MonthlyTotals accumulates DailyTotals of one employee over a period.
type MonthlyTotals struct {
	WorkedMinutes         int     `json:"worked_minutes"`
	OvertimeMinutes       int     `json:"overtime_minutes"`
	LateMinutes           int     `json:"late_minutes"`
	EarlyDepartureMinutes int     `json:"early_departure_minutes"`
	DaysWorked            int     `json:"days_worked"`
	DaysExcused           int     `json:"days_excused"`
	AbsenceCount          float64 `json:"absence_count"`
}
