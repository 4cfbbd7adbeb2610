package attendance

import (
	"time"
)

type Record struct {
	ID           int64
	EmployeeID   int64
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Status       Status
	Notes        *string
	CreatedAt    time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}

type Status string

const (
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
)
