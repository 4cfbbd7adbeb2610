package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
//
// Transitions (Create, Close) are expected to run inside a transaction started
// with postgresql.WithTransaction so the read-then-write sequence is atomic.
type AttendanceRepository interface {
	// Create inserts a new open record for the employee. The partial unique
	// index on open records rejects a concurrent duplicate; the violation is
	// mapped to ErrAlreadyCheckedIn.
	Create(ctx context.Context, employeeID int64, checkIn time.Time) (Record, error)

	// GetOpenByEmployee returns the employee's open record, or nil when there
	// is none. Latest record wins, ordered by check-in time descending.
	GetOpenByEmployee(ctx context.Context, employeeID int64) (*Record, error)

	// GetOpenByEmployeeForUpdate is GetOpenByEmployee with a row lock. Only
	// meaningful inside a transaction.
	GetOpenByEmployeeForUpdate(ctx context.Context, employeeID int64) (*Record, error)

	// Close stamps check-out time and notes on an open record, exactly once.
	// Returns ErrNoOpenCheckIn if the record is not open anymore.
	Close(ctx context.Context, recordID int64, checkOut time.Time, notes *string) (Record, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id int64) (Record, error)

	// ListByEmployee retrieves an employee's records, newest check-in first
	ListByEmployee(ctx context.Context, employeeID int64, filter ListFilter) ([]Record, int64, error)

	// List retrieves all records joined with employee name/email, newest first
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}
