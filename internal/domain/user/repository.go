package user

import (
	"context"
)

// UserRepository defines data access methods for operator accounts
type UserRepository interface {
	// GetByUsername retrieves an active user by username
	GetByUsername(ctx context.Context, username string) (User, error)
}
