package timesheet

import (
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// Calculator classifies punches and computes totals in the business timezone.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{loc: loc}
}

// Location returns the business timezone.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// DayInput groups everything known about one employee-day.
type DayInput struct {
	Punches      []timesheet.RawPunch
	Grants       []timesheet.LeaveGrant
	Template     timesheet.ShiftTemplate
	IsNightShift bool
}

type DayResult struct {
	Classified timesheet.ClassifiedDay
	Absence    timesheet.AbsenceInfo
	Totals     timesheet.DailyTotals
}

// ComputeDay runs classification, absence aggregation and the totals calculator.
func (c *Calculator) ComputeDay(in DayInput) (DayResult, error) {
	classified := c.Classify(in.Punches, in.IsNightShift)
	absence := AggregateAbsences(in.Punches)

	totals, err := c.ComputeDailyTotals(classified, in.Grants, absence, in.Template, in.IsNightShift)
	if err != nil {
		return DayResult{}, err
	}

	return DayResult{
		Classified: classified,
		Absence:    absence,
		Totals:     totals,
	}, nil
}
