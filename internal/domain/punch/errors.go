package punch

import "errors"

var (
	ErrPunchNotFound        = errors.New("punch record not found")
	ErrPunchAlreadyReviewed = errors.New("punch has already been approved or rejected")
	ErrEmployeeInactive     = errors.New("employee is not active")
	ErrAbsenceAlreadyMarked = errors.New("absence of this kind is already marked for the date")
)
