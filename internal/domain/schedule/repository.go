package schedule

import "context"

type ShiftTemplateRepository interface {
	// Get returns ErrShiftTemplateNotFound when the station has no override.
	Get(ctx context.Context, stationID string, name string) (ShiftTemplate, error)
	List(ctx context.Context, stationID string) ([]ShiftTemplate, error)
	Upsert(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
}
