package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActiveByStation(ctx context.Context, stationID string) ([]Employee, error)

	// ListStationIDs returns every station with at least one active employee.
	ListStationIDs(ctx context.Context) ([]string, error)
}
