package leave

import "context"

// LeaveGrantService manages excused slots granted by managers
type LeaveGrantService interface {
	CreateLeaveGrant(ctx context.Context, req CreateLeaveGrantRequest) (LeaveGrantResponse, error)
	ListLeaveGrants(ctx context.Context, filter LeaveGrantFilter) ([]LeaveGrantResponse, error)
	DeleteLeaveGrant(ctx context.Context, id string) error
}
