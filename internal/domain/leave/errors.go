package leave

import "errors"

var (
	ErrLeaveGrantNotFound = errors.New("leave grant not found")
	ErrLeaveGrantExists   = errors.New("a leave grant for this slot and date already exists")
)
