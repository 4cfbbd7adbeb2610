package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("an employee with this email already exists")

	// ErrTokenNotFound covers malformed tokens, unknown tokens and tokens of
	// inactive employees. Callers must not be able to tell these apart.
	ErrTokenNotFound = errors.New("employee not found or inactive")
)
