package employee

import (
	"context"
)

// EmployeeService defines business logic for employee lifecycle operations
type EmployeeService interface {
	// Create registers a new employee and issues their QR token
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Get retrieves a single employee by ID
	Get(ctx context.Context, id int64) (EmployeeResponse, error)

	// List retrieves employees with pagination
	List(ctx context.Context, filter ListFilter) (ListEmployeesResponse, error)

	// Update updates an existing employee
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Deactivate soft deletes an employee (terminal state)
	Deactivate(ctx context.Context, id int64) error

	// GetQRToken returns the QR token of an active employee
	GetQRToken(ctx context.Context, id int64) (QRTokenResponse, error)

	// ResolveToken resolves a QR token to an active employee profile
	ResolveToken(ctx context.Context, token string) (EmployeeResponse, error)
}
