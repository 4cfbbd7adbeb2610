package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	// Create inserts a new employee. The QR token must already be set.
	Create(ctx context.Context, employee Employee) (Employee, error)

	// GetByID retrieves an employee regardless of status
	GetByID(ctx context.Context, id int64) (Employee, error)

	// GetByToken resolves a QR token to an employee. Only active employees
	// resolve; unknown tokens and inactive employees both return ErrTokenNotFound.
	GetByToken(ctx context.Context, token string) (Employee, error)

	// List retrieves employees with pagination, newest first
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)

	// Update updates name, email, department and status
	Update(ctx context.Context, employee Employee) (Employee, error)

	// Deactivate soft deletes an employee by setting status to inactive
	Deactivate(ctx context.Context, id int64) error
}
