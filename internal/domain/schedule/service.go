package schedule

import (
	"context"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

type ShiftService interface {
	// ListShiftTemplates merges built-in templates with the caller station's overrides
	ListShiftTemplates(ctx context.Context) ([]ShiftTemplateResponse, error)
	GetShiftTemplate(ctx context.Context, name string) (ShiftTemplateResponse, error)
	UpsertShiftTemplate(ctx context.Context, req UpsertShiftTemplateRequest) (ShiftTemplateResponse, error)

	// Resolve looks up the station template, then the built-in one, then the
	// configured default.
	Resolve(ctx context.Context, stationID string, name string) (timesheet.ShiftTemplate, TemplateSource, error)
}
