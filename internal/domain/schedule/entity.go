package schedule

import (
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// ShiftTemplate is a station's stored override of a named shift.
type ShiftTemplate struct {
	StationID           string
	Name                string
	EntryMinute         int
	LunchOutMinute      int
	LunchInMinute       int
	ExitMinute          int
	WorkMinutesExpected int
	UpdatedAt           time.Time
}

func (s ShiftTemplate) ToTemplate() timesheet.ShiftTemplate {
	return timesheet.ShiftTemplate{
		Name:                s.Name,
		EntryMinute:         s.EntryMinute,
		LunchOutMinute:      s.LunchOutMinute,
		LunchInMinute:       s.LunchInMinute,
		ExitMinute:          s.ExitMinute,
		WorkMinutesExpected: s.WorkMinutesExpected,
	}
}

// TemplateSource tells where a resolved template came from.
type TemplateSource string

const (
	SourceStation TemplateSource = "station"
	SourceBuiltin TemplateSource = "builtin"
	SourceDefault TemplateSource = "default"
)
