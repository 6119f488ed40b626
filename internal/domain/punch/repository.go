package punch

import (
	"context"
	"time"
)

// PunchRepository defines data access for punches.
// Station-scoped methods take stationID to keep stations isolated.
type PunchRepository interface {
	Create(ctx context.Context, p Punch) (Punch, error)

	GetByID(ctx context.Context, id string, stationID string) (Punch, error)

	// UpdateReview persists status, reviewer and rejection reason.
	UpdateReview(ctx context.Context, p Punch) error

	Delete(ctx context.Context, id string, stationID string) error

	List(ctx context.Context, filter PunchFilter, stationID string) ([]Punch, int64, error)

	// ListInRange returns an employee's non-rejected punches with from <= punched_at < to,
	// ordered by punched_at.
	ListInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Punch, error)

	// HasAbsenceMarker checks for an existing marker with the same kind at the given instant.
	HasAbsenceMarker(ctx context.Context, employeeID string, at time.Time, kind string) (bool, error)
}
