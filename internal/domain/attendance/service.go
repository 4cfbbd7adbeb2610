package attendance

import (
	"context"
)

// AttendanceService defines the attendance ledger state machine.
//
// Per employee the ledger is a two-state machine: no open record -> checked-in
// (exactly one open record) -> no open record again after check-out. Both
// transitions are atomic against the backing store.
type AttendanceService interface {
	// CheckIn opens a new record. Fails with ErrAlreadyCheckedIn when the
	// employee already has an open record; no row is created in that case.
	CheckIn(ctx context.Context, employeeID int64) (Record, error)

	// CheckOut closes the single open record, stamping check-out time and the
	// optional note. Fails with ErrNoOpenCheckIn when there is no open record;
	// closed records are never updated again.
	CheckOut(ctx context.Context, employeeID int64, notes *string) (Record, error)

	// Get retrieves a single record with employee name/email attached
	Get(ctx context.Context, id int64) (RecordResponse, error)

	// List retrieves all attendance records (admin dashboard)
	List(ctx context.Context, filter ListFilter) (ListRecordsResponse, error)

	// ListByEmployee retrieves one employee's attendance history
	ListByEmployee(ctx context.Context, employeeID int64, filter ListFilter) (ListRecordsResponse, error)
}
