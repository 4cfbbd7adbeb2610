package attendance

import (
	"time"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// ListFilter narrows listings by page and an optional check-in time window.
// From is inclusive, To is exclusive.
type ListFilter struct {
	Page  int
	Limit int
	From  *time.Time
	To    *time.Time
}

type RecordResponse struct {
	ID            int64   `json:"id"`
	EmployeeID    int64   `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeEmail *string `json:"employee_email,omitempty"`
	CheckInTime   string  `json:"check_in_time"`
	CheckOutTime  *string `json:"check_out_time"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}
