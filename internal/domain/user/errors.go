package user

import "errors"

var (
	ErrOwnerAccessRequired     = errors.New("owner access required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrStationIDRequired       = errors.New("station ID is required")
	ErrEmployeeIDRequired      = errors.New("employee ID is required")
	ErrInvalidRole             = errors.New("invalid role")
)
