package employee

import "context"

type EmployeeService interface {
	// ListStationEmployees lists the active roster of the caller's station
	ListStationEmployees(ctx context.Context) ([]EmployeeResponse, error)
}
