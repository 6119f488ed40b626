package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

func fullDay(entryH, entryM, outH, outM, inH, inM, exitH, exitM int) timesheet.ClassifiedDay {
	return timesheet.ClassifiedDay{
		Entry:    tp(at(0, entryH, entryM)),
		LunchOut: tp(at(0, outH, outM)),
		LunchIn:  tp(at(0, inH, inM)),
		Exit:     tp(at(0, exitH, exitM)),
	}
}

func TestCalculator_ComputeDay_Scenarios(t *testing.T) {
	c := newTestCalculator()

	cases := []struct {
		name string
		in   DayInput
		want timesheet.DailyTotals
	}{
		{
			name: "regular day with overtime and a late entry",
			in: DayInput{
				Punches: []timesheet.RawPunch{
					rawPunch(at(0, 7, 5)), rawPunch(at(0, 12, 10)), rawPunch(at(0, 13, 0)), rawPunch(at(0, 19, 15)),
				},
				Template: shift1236,
			},
			want: timesheet.DailyTotals{
				WorkedMinutes:    680,
				OvertimeMinutes:  20,
				LateEntryMinutes: 5,
				Observations:     []string{timesheet.ObservationNormal},
			},
		},
		{
			name: "two punches only",
			in: DayInput{
				Punches:  []timesheet.RawPunch{rawPunch(at(0, 7, 0)), rawPunch(at(0, 19, 0))},
				Template: shift1236,
			},
			want: timesheet.DailyTotals{Observations: []string{timesheet.ObservationMissingPunch}},
		},
		{
			name: "night shift across midnight",
			in: DayInput{
				Punches:      []timesheet.RawPunch{rawPunch(at(0, 19, 0)), rawPunch(at(1, 6, 0))},
				Template:     shiftNight,
				IsNightShift: true,
			},
			want: timesheet.DailyTotals{
				WorkedMinutes:   660,
				OvertimeMinutes: 60,
				Observations:    []string{timesheet.ObservationNightShift},
			},
		},
		{
			name: "full-day grant overrides punches",
			in: DayInput{
				Punches:  []timesheet.RawPunch{rawPunch(at(0, 9, 0)), rawPunch(at(0, 10, 0))},
				Grants:   []timesheet.LeaveGrant{grant(timesheet.SlotFullDay)},
				Template: shift1236,
			},
			want: timesheet.DailyTotals{
				WorkedMinutes: 660,
				Observations:  []string{timesheet.ObservationDayExcused},
			},
		},
		{
			name: "full absence beats everything",
			in: DayInput{
				Punches: []timesheet.RawPunch{
					rawPunch(at(0, 7, 0)), rawPunch(at(0, 19, 0)),
					absenceMarker("Entrada Manhã"), absenceMarker("Saída Tarde"), absenceMarker("Entrada Tarde"),
				},
				Grants:   []timesheet.LeaveGrant{grant(timesheet.SlotFullDay)},
				Template: shift1236,
			},
			want: timesheet.DailyTotals{
				Observations:  []string{timesheet.ObservationFullAbsence},
				IsFullAbsence: true,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := c.ComputeDay(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Totals)
		})
	}
}

func TestCalculator_ComputeDailyTotals_DayShift(t *testing.T) {
	c := newTestCalculator()
	noAbsence := timesheet.AbsenceInfo{PartialSlots: []string{}}

	cases := []struct {
		name       string
		classified timesheet.ClassifiedDay
		grants     []timesheet.LeaveGrant
		absence    timesheet.AbsenceInfo
		want       timesheet.DailyTotals
	}{
		{
			name:       "exit before lunch return",
			classified: fullDay(7, 0, 11, 0, 13, 0, 12, 30),
			absence:    noAbsence,
			want:       timesheet.DailyTotals{Observations: []string{timesheet.ObservationExitBeforeReturn}},
		},
		{
			name:       "exit before sixteen hours",
			classified: fullDay(7, 0, 11, 0, 12, 0, 15, 0),
			absence:    noAbsence,
			want:       timesheet.DailyTotals{Observations: []string{timesheet.ObservationExitTooEarly}},
		},
		{
			name: "missing entry",
			classified: timesheet.ClassifiedDay{
				LunchOut: tp(at(0, 12, 0)), LunchIn: tp(at(0, 13, 0)), Exit: tp(at(0, 19, 0)),
			},
			absence: noAbsence,
			want:    timesheet.DailyTotals{Observations: []string{timesheet.ObservationMissingPunch}},
		},
		{
			name: "entry at midnight counts as missing",
			classified: timesheet.ClassifiedDay{
				Entry: tp(at(0, 0, 0)), LunchOut: tp(at(0, 12, 0)), LunchIn: tp(at(0, 13, 0)), Exit: tp(at(0, 19, 0)),
			},
			absence: noAbsence,
			want:    timesheet.DailyTotals{Observations: []string{timesheet.ObservationMissingPunch}},
		},
		{
			name:       "late lunch return and early departure",
			classified: fullDay(7, 0, 12, 0, 13, 20, 18, 30),
			absence:    noAbsence,
			want: timesheet.DailyTotals{
				WorkedMinutes:          610,
				LateLunchReturnMinutes: 20,
				EarlyDepartureMinutes:  30,
				Observations:           []string{timesheet.ObservationNormal},
			},
		},
		{
			name:       "excused entry suppresses lateness",
			classified: fullDay(8, 30, 12, 0, 13, 0, 19, 0),
			grants:     []timesheet.LeaveGrant{grant(timesheet.SlotEntry)},
			absence:    noAbsence,
			want: timesheet.DailyTotals{
				WorkedMinutes: 660,
				Observations:  []string{"EXCUSED_ENTRY"},
			},
		},
		{
			name: "excused exit fills the missing punch",
			classified: timesheet.ClassifiedDay{
				Entry: tp(at(0, 7, 10)), LunchOut: tp(at(0, 12, 0)), LunchIn: tp(at(0, 13, 0)),
			},
			grants:  []timesheet.LeaveGrant{grant(timesheet.SlotExit)},
			absence: noAbsence,
			want: timesheet.DailyTotals{
				WorkedMinutes:    650,
				LateEntryMinutes: 10,
				Observations:     []string{"EXCUSED_EXIT"},
			},
		},
		{
			name:       "excused lunch slots are listed in day order",
			classified: timesheet.ClassifiedDay{Entry: tp(at(0, 7, 0)), Exit: tp(at(0, 19, 0))},
			grants: []timesheet.LeaveGrant{
				grant(timesheet.SlotLunchIn), grant(timesheet.SlotLunchOut),
			},
			absence: noAbsence,
			want: timesheet.DailyTotals{
				WorkedMinutes: 660,
				Observations:  []string{"EXCUSED_LUNCH_OUT", "EXCUSED_LUNCH_IN"},
			},
		},
		{
			name:       "partial absence is appended",
			classified: fullDay(7, 5, 12, 10, 13, 0, 19, 15),
			absence: timesheet.AbsenceInfo{
				HasAbsence:   true,
				PartialSlots: []string{"Saída Manhã", "Consulta"},
				RawCount:     2,
			},
			want: timesheet.DailyTotals{
				WorkedMinutes:    680,
				OvertimeMinutes:  20,
				LateEntryMinutes: 5,
				Observations: []string{
					timesheet.ObservationNormal,
					"PARTIAL_ABSENCE: Saída Manhã, Consulta",
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.ComputeDailyTotals(tc.classified, tc.grants, tc.absence, shift1236, false)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculator_ComputeDailyTotals_NightShift(t *testing.T) {
	c := newTestCalculator()
	noAbsence := timesheet.AbsenceInfo{PartialSlots: []string{}}

	sevenAM := shiftNight
	sevenAM.ExitMinute = 7 * 60
	sevenAM.WorkMinutesExpected = 660

	cases := []struct {
		name       string
		classified timesheet.ClassifiedDay
		grants     []timesheet.LeaveGrant
		absence    timesheet.AbsenceInfo
		template   timesheet.ShiftTemplate
		want       timesheet.DailyTotals
	}{
		{
			name:       "exit after midnight is never an early departure",
			classified: timesheet.ClassifiedDay{Entry: tp(at(0, 19, 0)), Exit: tp(at(1, 5, 0))},
			absence:    noAbsence,
			template:   sevenAM,
			want: timesheet.DailyTotals{
				WorkedMinutes: 600,
				Observations:  []string{timesheet.ObservationNightShift},
			},
		},
		{
			name:       "exit before midnight against the template exit",
			classified: timesheet.ClassifiedDay{Entry: tp(at(0, 18, 0)), Exit: tp(at(0, 23, 0))},
			absence:    noAbsence,
			template:   shiftNight,
			want: timesheet.DailyTotals{
				WorkedMinutes: 300,
				Observations:  []string{timesheet.ObservationNightShift},
			},
		},
		{
			name:       "late entry",
			classified: timesheet.ClassifiedDay{Entry: tp(at(0, 19, 30)), Exit: tp(at(1, 6, 0))},
			absence:    noAbsence,
			template:   shiftNight,
			want: timesheet.DailyTotals{
				WorkedMinutes:    630,
				OvertimeMinutes:  30,
				LateEntryMinutes: 30,
				Observations:     []string{timesheet.ObservationNightShift},
			},
		},
		{
			name:       "missing exit",
			classified: timesheet.ClassifiedDay{Entry: tp(at(0, 19, 0))},
			absence:    noAbsence,
			template:   shiftNight,
			want:       timesheet.DailyTotals{Observations: []string{timesheet.ObservationMissingPunch}},
		},
		{
			name:       "excused exit with partial absence",
			classified: timesheet.ClassifiedDay{Entry: tp(at(0, 19, 0))},
			grants:     []timesheet.LeaveGrant{grant(timesheet.SlotExit)},
			absence: timesheet.AbsenceInfo{
				HasAbsence:   true,
				PartialSlots: []string{"Saída Tarde"},
				RawCount:     1,
			},
			template: shiftNight,
			want: timesheet.DailyTotals{
				WorkedMinutes:   660,
				OvertimeMinutes: 60,
				Observations: []string{
					timesheet.ObservationNightShift,
					"EXCUSED_EXIT",
					"PARTIAL_ABSENCE: Saída Tarde",
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.ComputeDailyTotals(tc.classified, tc.grants, tc.absence, tc.template, true)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculator_ComputeDailyTotals_InvalidTemplate(t *testing.T) {
	c := newTestCalculator()

	broken := []timesheet.ShiftTemplate{
		{Name: "zero", EntryMinute: 420, ExitMinute: 1140},
		{Name: "out of range", EntryMinute: 1440, ExitMinute: 1140, WorkMinutesExpected: 660},
		{Name: "negative", EntryMinute: -1, ExitMinute: 1140, WorkMinutesExpected: 660},
	}

	for _, tmpl := range broken {
		t.Run(tmpl.Name, func(t *testing.T) {
			_, err := c.ComputeDailyTotals(fullDay(7, 0, 12, 0, 13, 0, 19, 0), nil, timesheet.AbsenceInfo{}, tmpl, false)
			assert.ErrorIs(t, err, timesheet.ErrInvalidShiftTemplate)
		})
	}
}

func TestDailyTotals_HasObservation(t *testing.T) {
	d := timesheet.DailyTotals{Observations: []string{
		timesheet.ObservationNormal,
		"PARTIAL_ABSENCE: Saída Manhã",
	}}

	assert.True(t, d.HasObservation(timesheet.ObservationNormal))
	assert.True(t, d.HasObservation(timesheet.ObservationPartialAbsence))
	assert.False(t, d.HasObservation(timesheet.ObservationMissingPunch))
	assert.False(t, d.IsInconsistent())

	bad := timesheet.DailyTotals{Observations: []string{timesheet.ObservationExitTooEarly}}
	assert.True(t, bad.IsInconsistent())
}
