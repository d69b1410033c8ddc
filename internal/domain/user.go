package domain

import "time"

// Role enumerates account roles, fixed at creation.
type Role string

const (
	RoleStaff     Role = "staff"
	RoleITSupport Role = "it_support"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleStaff, RoleITSupport, RoleAdmin:
		return true
	}
	return false
}

// UserStatus represents lifecycle states for a directory account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// ValidUserStatus reports whether s is a known account status.
func ValidUserStatus(s UserStatus) bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is the directory record for an account that can sign in and
// author tickets. LastLogin is nil until the first successful login.
type User struct {
	ID             string
	Name           string
	Email          string
	Role           Role
	Status         UserStatus
	LastLogin      *time.Time
	TicketsCreated int
	JoinedDate     time.Time
	Version        int64
}
