package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/domain/employee"
	"github.com/redeposto/ponto-backend-go/internal/domain/leave"
	"github.com/redeposto/ponto-backend-go/internal/domain/punch"
	"github.com/redeposto/ponto-backend-go/internal/domain/schedule"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
)

type stubEmployees map[string]employee.Employee

func (s stubEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := s[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (s stubEmployees) ListActiveByStation(ctx context.Context, stationID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range s {
		if e.StationID == stationID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s stubEmployees) ListStationIDs(ctx context.Context) ([]string, error) {
	return []string{"st1"}, nil
}

// stubPunches only implements the range read used by reports.
type stubPunches struct {
	punch.PunchRepository
	byEmployee map[string][]punch.Punch
}

func (s stubPunches) ListInRange(ctx context.Context, employeeID string, from, to time.Time) ([]punch.Punch, error) {
	var out []punch.Punch
	for _, p := range s.byEmployee[employeeID] {
		if !p.PunchedAt.Before(from) && p.PunchedAt.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubGrants struct {
	leave.LeaveGrantRepository
	grants []leave.LeaveGrant
}

func (s stubGrants) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveGrant, error) {
	var out []leave.LeaveGrant
	for _, g := range s.grants {
		if g.EmployeeID == employeeID && !g.Date.Before(from) && !g.Date.After(to) {
			out = append(out, g)
		}
	}
	return out, nil
}

type stubShifts struct {
	schedule.ShiftService
}

func (stubShifts) Resolve(ctx context.Context, stationID string, name string) (timesheet.ShiftTemplate, schedule.TemplateSource, error) {
	if name == shiftNight.Name {
		return shiftNight, schedule.SourceBuiltin, nil
	}
	return shift1236, schedule.SourceDefault, nil
}

func stored(employeeID string, t time.Time) punch.Punch {
	return punch.Punch{EmployeeID: employeeID, StationID: "st1", PunchedAt: t.UTC(), Status: punch.StatusPending}
}

func storedAbsence(employeeID string, day int, kind string) punch.Punch {
	p := stored(employeeID, time.Date(2025, 3, day, 12, 0, 0, 0, brt))
	p.MarkedAbsent = true
	p.AbsenceKind = &kind
	p.Status = punch.StatusApproved
	return p
}

func local(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, brt)
}

func newTestService(punches map[string][]punch.Punch, grants []leave.LeaveGrant, now time.Time) *TimesheetServiceImpl {
	employees := stubEmployees{
		"ana":   {ID: "ana", StationID: "st1", FullName: "Ana", EmployeeCode: "001", ShiftName: "12/36", Active: true},
		"bruno": {ID: "bruno", StationID: "st1", FullName: "Bruno", EmployeeCode: "002", ShiftName: "12/36", Active: true},
		"nina":  {ID: "nina", StationID: "st1", FullName: "Nina", ShiftName: "noturno"},
		"zeca":  {ID: "zeca", StationID: "st2", FullName: "Zeca", ShiftName: "12/36", Active: true},
	}
	svc := NewTimesheetService(newTestCalculator(), employees, stubPunches{byEmployee: punches}, stubGrants{grants: grants}, stubShifts{}).(*TimesheetServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func asManager() context.Context {
	return jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u1", StationID: "st1", Role: user.RoleManager})
}

func asEmployee(id string) context.Context {
	return jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u-" + id, EmployeeID: id, StationID: "st1", Role: user.RoleEmployee})
}

func strp(s string) *string { return &s }

func TestTimesheetService_GetDailyTimesheet(t *testing.T) {
	punches := map[string][]punch.Punch{
		"ana": {
			stored("ana", local(10, 7, 5)), stored("ana", local(10, 12, 10)),
			stored("ana", local(10, 13, 0)), stored("ana", local(10, 19, 15)),
			stored("ana", local(11, 7, 0)),
		},
	}
	svc := newTestService(punches, nil, local(20, 0, 0))

	got, err := svc.GetDailyTimesheet(asManager(), timesheet.DailyTimesheetRequest{EmployeeID: "ana", Date: "2025-03-10"})
	require.NoError(t, err)

	assert.Equal(t, "Segunda-feira", got.DayOfWeek)
	assert.Equal(t, "12/36", got.ShiftName)
	assert.False(t, got.IsNightShift)
	assert.Equal(t, timesheet.SlotTimes{
		Entry: strp("07:05"), LunchOut: strp("12:10"), LunchIn: strp("13:00"), Exit: strp("19:15"),
	}, got.Punches)
	assert.Equal(t, timesheet.DailyTotals{
		WorkedMinutes:    680,
		OvertimeMinutes:  20,
		LateEntryMinutes: 5,
		Observations:     []string{timesheet.ObservationNormal},
	}, got.Totals)

	t.Run("employees read their own day only", func(t *testing.T) {
		_, err := svc.GetDailyTimesheet(asEmployee("bruno"), timesheet.DailyTimesheetRequest{EmployeeID: "ana", Date: "2025-03-10"})
		assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

		mine, err := svc.GetMyDailyTimesheet(asEmployee("ana"), "2025-03-11")
		require.NoError(t, err)
		assert.Equal(t, []string{timesheet.ObservationMissingPunch}, mine.Totals.Observations)
		assert.Nil(t, mine.Punches.Exit)
	})

	t.Run("other station", func(t *testing.T) {
		_, err := svc.GetDailyTimesheet(asManager(), timesheet.DailyTimesheetRequest{EmployeeID: "zeca", Date: "2025-03-10"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.GetDailyTimesheet(asManager(), timesheet.DailyTimesheetRequest{EmployeeID: "ana", Date: "10/03/2025"})
		assert.Error(t, err)
	})
}

func TestTimesheetService_EvaluateDay_NightWindow(t *testing.T) {
	punches := map[string][]punch.Punch{
		"nina": {
			// exit of the previous night, outside the window
			stored("nina", local(10, 5, 58)),
			stored("nina", local(10, 19, 0)),
			stored("nina", local(11, 6, 0)),
		},
	}
	svc := newTestService(punches, nil, local(20, 0, 0))

	got, err := svc.EvaluateDay(context.Background(), "st1", "nina", local(10, 0, 0))
	require.NoError(t, err)

	assert.True(t, got.IsNightShift)
	assert.Equal(t, strp("19:00"), got.Punches.Entry)
	assert.Equal(t, strp("06:00"), got.Punches.Exit)
	assert.Nil(t, got.Punches.LunchOut)
	assert.Equal(t, timesheet.DailyTotals{
		WorkedMinutes:   660,
		OvertimeMinutes: 60,
		Observations:    []string{timesheet.ObservationNightShift},
	}, got.Totals)

	_, err = svc.EvaluateDay(context.Background(), "st2", "nina", local(10, 0, 0))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTimesheetService_GetMonthlyTimesheet(t *testing.T) {
	punches := map[string][]punch.Punch{
		"ana": {
			stored("ana", local(1, 7, 0)), stored("ana", local(1, 12, 0)),
			stored("ana", local(1, 13, 0)), stored("ana", local(1, 19, 0)),
			storedAbsence("ana", 3, "Entrada Manhã"),
			storedAbsence("ana", 3, "Saída Manhã"),
			storedAbsence("ana", 3, "Saída Tarde"),
			// after the cutoff
			stored("ana", local(4, 7, 0)),
		},
	}
	grants := []leave.LeaveGrant{
		{EmployeeID: "ana", StationID: "st1", Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), ExcusedSlot: timesheet.SlotFullDay},
	}
	// 2025-03-03 15:00 local
	svc := newTestService(punches, grants, time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC))

	got, err := svc.GetMonthlyTimesheet(asManager(), timesheet.MonthlyTimesheetRequest{Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", got.PeriodStart)
	assert.Equal(t, "2025-03-31", got.PeriodEnd)
	assert.Equal(t, "2025-03-03T18:00:00Z", got.GeneratedAt)

	// Nina is inactive, Zeca belongs to another station.
	require.Len(t, got.Employees, 2)
	ana, bruno := got.Employees[0], got.Employees[1]
	assert.Equal(t, "Ana", ana.EmployeeName)
	assert.Equal(t, "Bruno", bruno.EmployeeName)

	require.Len(t, ana.Days, 3)
	assert.Equal(t, "2025-03-01", ana.Days[0].Date)
	assert.Equal(t, []string{timesheet.ObservationNormal}, ana.Days[0].Totals.Observations)
	assert.Equal(t, []string{timesheet.ObservationDayExcused}, ana.Days[1].Totals.Observations)
	assert.True(t, ana.Days[2].Totals.IsFullAbsence)
	assert.Equal(t, timesheet.MonthlyTotals{
		WorkedMinutes: 660,
		DaysWorked:    1,
		DaysExcused:   1,
		AbsenceCount:  1,
	}, ana.Summary)

	require.Len(t, bruno.Days, 3)
	assert.Equal(t, timesheet.MonthlyTotals{}, bruno.Summary)

	t.Run("single employee", func(t *testing.T) {
		got, err := svc.GetMyMonthlyTimesheet(asEmployee("ana"), timesheet.MonthlyTimesheetRequest{Month: 3, Year: 2025})
		require.NoError(t, err)
		require.Len(t, got.Employees, 1)
		assert.Equal(t, ana.Summary, got.Employees[0].Summary)
	})

	t.Run("employees cannot read the station", func(t *testing.T) {
		_, err := svc.GetMonthlyTimesheet(asEmployee("ana"), timesheet.MonthlyTimesheetRequest{Month: 3, Year: 2025})
		assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
	})

	t.Run("future month has no days", func(t *testing.T) {
		got, err := svc.GetMonthlyTimesheet(asManager(), timesheet.MonthlyTimesheetRequest{Month: 4, Year: 2025})
		require.NoError(t, err)
		for _, e := range got.Employees {
			assert.Empty(t, e.Days)
		}
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := svc.GetMonthlyTimesheet(asManager(), timesheet.MonthlyTimesheetRequest{Month: 13, Year: 2025})
		assert.Error(t, err)
	})
}
