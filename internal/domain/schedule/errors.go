package schedule

import "errors"

var (
	ErrShiftTemplateNotFound = errors.New("shift template not found")
	ErrUnknownDefaultShift   = errors.New("configured default shift has no built-in template")
)
