package domain

import "time"

// UserRole represents the role of a user in the system.
type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleManager UserRole = "MANAGER"
	UserRoleMember  UserRole = "MEMBER"
)

// IsValid checks if the role is one of the allowed values.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleMember:
		return true
	default:
		return false
	}
}

// User represents a person referenced by tasks. Deactivated users are kept
// for audit history but resolve as not found everywhere a live reference is
// required.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      UserRole
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
