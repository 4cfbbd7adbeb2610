package attendance

import "errors"

// Attendance domain errors
var (
	// Transition errors, surfaced verbatim to the caller
	ErrAlreadyCheckedIn = errors.New("employee is already checked in")
	ErrNoOpenCheckIn    = errors.New("no active check-in found for this employee")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
