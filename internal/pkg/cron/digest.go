package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/employee"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// FlaggedDay is one employee-day that needs a manager's review.
type FlaggedDay struct {
	StationID    string
	EmployeeID   string
	EmployeeName string
	Date         string
	Observations []string
}

// DigestReport summarizes one digest run.
type DigestReport struct {
	Date      string
	Evaluated int
	Flagged   []FlaggedDay
}

// Night-shift workdays close at local noon of the following day.
const digestNotBeforeHour = 12

// InconsistencyDigest logs yesterday's inconsistent timesheet days once per
// local day, after digestNotBeforeHour. It persists nothing.
type InconsistencyDigest struct {
	employeeRepo employee.EmployeeRepository
	timesheets   timesheet.TimesheetService
	loc          *time.Location
	now          func() time.Time

	mu      sync.Mutex
	lastRun string
}

func NewInconsistencyDigest(
	employeeRepo employee.EmployeeRepository,
	timesheets timesheet.TimesheetService,
	loc *time.Location,
) *InconsistencyDigest {
	if loc == nil {
		loc = time.UTC
	}
	return &InconsistencyDigest{
		employeeRepo: employeeRepo,
		timesheets:   timesheets,
		loc:          loc,
		now:          time.Now,
	}
}

func (d *InconsistencyDigest) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("inconsistency_digest", interval, d.Run)
}

// Run is the scheduler entry point. Calls before noon, and after the first
// successful run of a local day, are no-ops.
func (d *InconsistencyDigest) Run(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := d.now().In(d.loc)
	key := today.Format("2006-01-02")
	if d.lastRun == key || today.Hour() < digestNotBeforeHour {
		return nil
	}

	yesterday := time.Date(today.Year(), today.Month(), today.Day()-1, 0, 0, 0, 0, d.loc)
	report, err := d.Digest(ctx, yesterday)
	if err != nil {
		return err
	}
	d.lastRun = key

	slog.Info("Cron: inconsistency digest finished",
		"date", report.Date,
		"evaluated", report.Evaluated,
		"flagged", len(report.Flagged),
	)
	return nil
}

// Digest evaluates date for every active employee of every station. Failures
// for a single employee are logged and skipped.
func (d *InconsistencyDigest) Digest(ctx context.Context, date time.Time) (DigestReport, error) {
	report := DigestReport{
		Date:    date.In(d.loc).Format("2006-01-02"),
		Flagged: []FlaggedDay{},
	}

	stations, err := d.employeeRepo.ListStationIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list stations: %w", err)
	}

	var failures []error
	for _, stationID := range stations {
		employees, err := d.employeeRepo.ListActiveByStation(ctx, stationID)
		if err != nil {
			failures = append(failures, fmt.Errorf("station %s: %w", stationID, err))
			continue
		}

		for _, emp := range employees {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			day, err := d.timesheets.EvaluateDay(ctx, stationID, emp.ID, date)
			if err != nil {
				slog.Error("Cron: failed to evaluate timesheet day",
					"station_id", stationID, "employee_id", emp.ID, "date", report.Date, "error", err)
				continue
			}
			report.Evaluated++

			if !day.Totals.IsInconsistent() {
				continue
			}

			flagged := FlaggedDay{
				StationID:    stationID,
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Date:         day.Date,
				Observations: day.Totals.Observations,
			}
			report.Flagged = append(report.Flagged, flagged)

			slog.Warn("Cron: inconsistent timesheet day",
				"station_id", flagged.StationID,
				"employee_id", flagged.EmployeeID,
				"employee_name", flagged.EmployeeName,
				"date", flagged.Date,
				"observations", flagged.Observations,
			)
		}
	}

	return report, errors.Join(failures...)
}
