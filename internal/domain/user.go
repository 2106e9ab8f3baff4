package domain

import "time"

// Role is the closed set of privilege levels governing route access.
type Role string

const (
	RoleStudent    Role = "student"
	RoleFaculty    Role = "faculty"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleStudent, RoleFaculty, RoleAdmin, RoleSuperadmin:
		return Role(raw), true
	default:
		return "", false
	}
}

// User is the domain model for authenticated subjects.
// PasswordHash never appears in any outward response.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
