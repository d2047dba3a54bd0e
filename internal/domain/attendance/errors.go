package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidPunchOrder  = errors.New("punch-out must be after punch-in")
)
