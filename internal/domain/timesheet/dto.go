package timesheet

import (
	"fmt"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

// ========================================
// DAILY TIMESHEET
// ========================================

type DailyTimesheetRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (r *DailyTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SlotTimes carries the classified punches as local HH:MM strings.
type SlotTimes struct {
	Entry    *string `json:"entry"`
	LunchOut *string `json:"lunch_out"`
	LunchIn  *string `json:"lunch_in"`
	Exit     *string `json:"exit"`
}

type DailyTimesheetResponse struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Date         string      `json:"date"`
	DayOfWeek    string      `json:"day_of_week"`
	ShiftName    string      `json:"shift_name"`
	IsNightShift bool        `json:"is_night_shift"`
	Punches      SlotTimes   `json:"punches"`
	Absence      AbsenceInfo `json:"absence"`
	Totals       DailyTotals `json:"totals"`
}

// ========================================
// MONTHLY TIMESHEET
// ========================================

type MonthlyTimesheetRequest struct {
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *MonthlyTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyTimesheetEmployee struct {
	EmployeeID   string                   `json:"employee_id"`
	EmployeeCode string                   `json:"employee_code"`
	EmployeeName string                   `json:"employee_name"`
	ShiftName    string                   `json:"shift_name"`
	Summary      MonthlyTotals            `json:"summary"`
	Days         []DailyTimesheetResponse `json:"days"`
}

type MonthlyTimesheetResponse struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Employees []MonthlyTimesheetEmployee `json:"employees"`
}
