package employee

import "time"

// Employee is a station attendant as listed on the roster.
type Employee struct {
	ID           string
	StationID    string
	EmployeeCode string
	FullName     string
	ShiftName    string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
