package employee

import (
	"time"
)

type Employee struct {
	ID         int64
	Name       string
	Email      string
	Department *string
	Status     Status
	QRToken    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsActive reports whether the employee may authorize attendance transitions.
func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
