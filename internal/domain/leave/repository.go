package leave

import (
	"context"
	"time"
)

type LeaveGrantRepository interface {
	Create(ctx context.Context, g LeaveGrant) (LeaveGrant, error)
	GetByID(ctx context.Context, id string, stationID string) (LeaveGrant, error)
	Delete(ctx context.Context, id string, stationID string) error
	List(ctx context.Context, filter LeaveGrantFilter, stationID string) ([]LeaveGrant, error)

	// ListByEmployee returns grants with from <= date <= to.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveGrant, error)
}
