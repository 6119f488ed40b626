package timesheet

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redeposto/ponto-backend-go/internal/domain/employee"
	"github.com/redeposto/ponto-backend-go/internal/domain/leave"
	"github.com/redeposto/ponto-backend-go/internal/domain/punch"
	"github.com/redeposto/ponto-backend-go/internal/domain/schedule"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
)

// Employees computed concurrently by the monthly report.
const monthlyWorkers = 8

var weekdayNames = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

type TimesheetServiceImpl struct {
	calc           *Calculator
	employeeRepo   employee.EmployeeRepository
	punchRepo      punch.PunchRepository
	leaveGrantRepo leave.LeaveGrantRepository
	shiftService   schedule.ShiftService
	now            func() time.Time
}

func NewTimesheetService(
	calc *Calculator,
	employeeRepo employee.EmployeeRepository,
	punchRepo punch.PunchRepository,
	leaveGrantRepo leave.LeaveGrantRepository,
	shiftService schedule.ShiftService,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		calc:           calc,
		employeeRepo:   employeeRepo,
		punchRepo:      punchRepo,
		leaveGrantRepo: leaveGrantRepo,
		shiftService:   shiftService,
		now:            time.Now,
	}
}

// GetDailyTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetDailyTimesheet(ctx context.Context, req timesheet.DailyTimesheetRequest) (timesheet.DailyTimesheetResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, err
	}
	if !principal.IsManager() && req.EmployeeID != principal.EmployeeID {
		return timesheet.DailyTimesheetResponse{}, user.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return timesheet.DailyTimesheetResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.calc.Location())
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, timesheet.ErrInvalidDate
	}

	return s.EvaluateDay(ctx, principal.StationID, req.EmployeeID, date)
}

// GetMyDailyTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMyDailyTimesheet(ctx context.Context, date string) (timesheet.DailyTimesheetResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, err
	}
	if principal.EmployeeID == "" {
		return timesheet.DailyTimesheetResponse{}, timesheet.ErrEmployeeIDRequired
	}

	return s.GetDailyTimesheet(ctx, timesheet.DailyTimesheetRequest{
		EmployeeID: principal.EmployeeID,
		Date:       date,
	})
}

// EvaluateDay implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) EvaluateDay(ctx context.Context, stationID, employeeID string, date time.Time) (timesheet.DailyTimesheetResponse, error) {
	emp, err := s.stationEmployee(ctx, stationID, employeeID)
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, err
	}

	tmpl, err := s.resolveTemplate(ctx, emp)
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, err
	}

	day := s.calc.StartOfDay(date)
	from, to := s.workdayWindow(day, tmpl.IsNightShift())

	punches, err := s.punchRepo.ListInRange(ctx, emp.ID, from, to)
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, fmt.Errorf("failed to load punches: %w", err)
	}

	grants, err := s.leaveGrantRepo.ListByEmployee(ctx, emp.ID, calendarDate(day), calendarDate(day))
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, fmt.Errorf("failed to load leave grants: %w", err)
	}

	return s.buildDay(emp, tmpl, day, punch.ToRawPunches(punches), grants)
}

// GetMonthlyTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMonthlyTimesheet(ctx context.Context, req timesheet.MonthlyTimesheetRequest) (timesheet.MonthlyTimesheetResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}
	if !principal.IsManager() {
		if principal.EmployeeID == "" || req.EmployeeID == nil || *req.EmployeeID != principal.EmployeeID {
			return timesheet.MonthlyTimesheetResponse{}, user.ErrManagerAccessRequired
		}
	}

	if err := req.Validate(); err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}

	var employees []employee.Employee
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		emp, err := s.stationEmployee(ctx, principal.StationID, *req.EmployeeID)
		if err != nil {
			return timesheet.MonthlyTimesheetResponse{}, err
		}
		employees = []employee.Employee{emp}
	} else {
		employees, err = s.employeeRepo.ListActiveByStation(ctx, principal.StationID)
		if err != nil {
			return timesheet.MonthlyTimesheetResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
	}

	loc := s.calc.Location()
	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, loc)
	periodEnd := periodStart.AddDate(0, 1, -1)

	// Days after today have no punches yet.
	lastDay := periodEnd
	if today := s.calc.StartOfDay(s.now()); today.Before(lastDay) {
		lastDay = today
	}

	results := make([]timesheet.MonthlyTimesheetEmployee, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(monthlyWorkers)
	for i, emp := range employees {
		g.Go(func() error {
			res, err := s.monthForEmployee(gctx, emp, periodStart, lastDay)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}

	slices.SortFunc(results, func(a, b timesheet.MonthlyTimesheetEmployee) int {
		return cmp.Or(
			strings.Compare(a.EmployeeName, b.EmployeeName),
			strings.Compare(a.EmployeeID, b.EmployeeID),
		)
	})

	return timesheet.MonthlyTimesheetResponse{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.Format("2006-01-02"),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Employees:   results,
	}, nil
}

// GetMyMonthlyTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMyMonthlyTimesheet(ctx context.Context, req timesheet.MonthlyTimesheetRequest) (timesheet.MonthlyTimesheetResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}
	if principal.EmployeeID == "" {
		return timesheet.MonthlyTimesheetResponse{}, timesheet.ErrEmployeeIDRequired
	}

	req.EmployeeID = &principal.EmployeeID
	return s.GetMonthlyTimesheet(ctx, req)
}

// monthForEmployee loads the whole period once and evaluates each day from memory.
func (s *TimesheetServiceImpl) monthForEmployee(ctx context.Context, emp employee.Employee, first, last time.Time) (timesheet.MonthlyTimesheetEmployee, error) {
	tmpl, err := s.resolveTemplate(ctx, emp)
	if err != nil {
		return timesheet.MonthlyTimesheetEmployee{}, err
	}
	night := tmpl.IsNightShift()

	out := timesheet.MonthlyTimesheetEmployee{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		EmployeeName: emp.FullName,
		ShiftName:    tmpl.Name,
		Days:         []timesheet.DailyTimesheetResponse{},
	}
	if last.Before(first) {
		return out, nil
	}

	from, _ := s.workdayWindow(first, night)
	_, to := s.workdayWindow(last, night)

	stored, err := s.punchRepo.ListInRange(ctx, emp.ID, from, to)
	if err != nil {
		return timesheet.MonthlyTimesheetEmployee{}, fmt.Errorf("failed to load punches: %w", err)
	}
	raw := punch.ToRawPunches(stored)

	grants, err := s.leaveGrantRepo.ListByEmployee(ctx, emp.ID, calendarDate(first), calendarDate(last))
	if err != nil {
		return timesheet.MonthlyTimesheetEmployee{}, fmt.Errorf("failed to load leave grants: %w", err)
	}

	totals := make([]timesheet.DailyTotals, 0, last.Day())
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dayFrom, dayTo := s.workdayWindow(day, night)
		resp, err := s.buildDay(emp, tmpl, day, punchesBetween(raw, dayFrom, dayTo), grants)
		if err != nil {
			return timesheet.MonthlyTimesheetEmployee{}, err
		}
		out.Days = append(out.Days, resp)
		totals = append(totals, resp.Totals)
	}
	out.Summary = Rollup(totals)

	return out, nil
}

func (s *TimesheetServiceImpl) buildDay(
	emp employee.Employee,
	tmpl timesheet.ShiftTemplate,
	day time.Time,
	punches []timesheet.RawPunch,
	grants []leave.LeaveGrant,
) (timesheet.DailyTimesheetResponse, error) {
	res, err := s.calc.ComputeDay(DayInput{
		Punches:      punches,
		Grants:       leave.GrantsOn(grants, day),
		Template:     tmpl,
		IsNightShift: tmpl.IsNightShift(),
	})
	if err != nil {
		return timesheet.DailyTimesheetResponse{}, fmt.Errorf("failed to compute %s: %w", day.Format("2006-01-02"), err)
	}

	return timesheet.DailyTimesheetResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Date:         day.Format("2006-01-02"),
		DayOfWeek:    weekdayNames[day.Weekday()],
		ShiftName:    tmpl.Name,
		IsNightShift: tmpl.IsNightShift(),
		Punches: timesheet.SlotTimes{
			Entry:    s.clock(res.Classified.Entry),
			LunchOut: s.clock(res.Classified.LunchOut),
			LunchIn:  s.clock(res.Classified.LunchIn),
			Exit:     s.clock(res.Classified.Exit),
		},
		Absence: res.Absence,
		Totals:  res.Totals,
	}, nil
}

// workdayWindow returns [from, to) of the punches belonging to day. Night
// shifts run from local noon to the next local noon.
func (s *TimesheetServiceImpl) workdayWindow(day time.Time, night bool) (time.Time, time.Time) {
	loc := s.calc.Location()
	y, m, d := day.Date()
	if night {
		return time.Date(y, m, d, 12, 0, 0, 0, loc), time.Date(y, m, d+1, 12, 0, 0, 0, loc)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

func (s *TimesheetServiceImpl) clock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(s.calc.Location()).Format("15:04")
	return &formatted
}

func (s *TimesheetServiceImpl) resolveTemplate(ctx context.Context, emp employee.Employee) (timesheet.ShiftTemplate, error) {
	tmpl, _, err := s.shiftService.Resolve(ctx, emp.StationID, emp.ShiftName)
	if err != nil {
		return timesheet.ShiftTemplate{}, fmt.Errorf("failed to resolve shift %q: %w", emp.ShiftName, err)
	}
	return tmpl, nil
}

func (s *TimesheetServiceImpl) stationEmployee(ctx context.Context, stationID, employeeID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.StationID != stationID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func punchesBetween(punches []timesheet.RawPunch, from, to time.Time) []timesheet.RawPunch {
	out := make([]timesheet.RawPunch, 0, 4)
	for _, p := range punches {
		if !p.Timestamp.Before(from) && p.Timestamp.Before(to) {
			out = append(out, p)
		}
	}
	return out
}

// calendarDate maps a local day onto the UTC midnight used by DATE columns.
func calendarDate(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
