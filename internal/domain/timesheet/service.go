package timesheet

import (
	"context"
	"time"
)

// TimesheetService turns stored punches, grants and shift templates into
// daily and monthly totals.
type TimesheetService interface {
	// GetDailyTimesheet computes one employee-day of the caller's station (manager)
	GetDailyTimesheet(ctx context.Context, req DailyTimesheetRequest) (DailyTimesheetResponse, error)

	// GetMyDailyTimesheet computes one day for the authenticated employee
	GetMyDailyTimesheet(ctx context.Context, date string) (DailyTimesheetResponse, error)

	// GetMonthlyTimesheet computes the month for the station, or for one employee when EmployeeID is set
	GetMonthlyTimesheet(ctx context.Context, req MonthlyTimesheetRequest) (MonthlyTimesheetResponse, error)

	// GetMyMonthlyTimesheet computes the month for the authenticated employee
	GetMyMonthlyTimesheet(ctx context.Context, req MonthlyTimesheetRequest) (MonthlyTimesheetResponse, error)

	// EvaluateDay is the claim-free entry point used by background jobs
	EvaluateDay(ctx context.Context, stationID, employeeID string, date time.Time) (DailyTimesheetResponse, error)
}
