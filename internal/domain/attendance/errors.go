package attendance

import "errors"

var (
	ErrInvalidQuery       = errors.New("attendance query needs a date, a date range or an employee")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
