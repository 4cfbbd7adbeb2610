package user

import (
	"time"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)
