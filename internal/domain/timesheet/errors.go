package timesheet

import "errors"

var (
	ErrInvalidShiftTemplate = errors.New("shift template is invalid")
	ErrInvalidDate          = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidMonth         = errors.New("month must be between 1 and 12")
	ErrInvalidYear          = errors.New("year must be a valid year")
	ErrEmployeeIDRequired   = errors.New("employee_id claim is missing or invalid")
)
