package domain

// Principal represents the authenticated actor driving a session.
// It carries only what access decisions need: identity and role.
type Principal struct {
	UserID string
	Name   string
	Role   Role
}
