// Package session provides SQLite-backed persistence for the
// authenticated identity and its role.
package session

import "fmt"

// Role is the closed set of roles a session can hold.
type Role int

const (
	RoleGuest Role = iota
	RoleShopper
	RoleAdmin
)

// String returns the wire/storage representation of the role.
func (r Role) String() string {
	switch r {
	case RoleShopper:
		return "SHOPPER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "GUEST"
	}
}

// ParseRole converts a stored role string back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "GUEST":
		return RoleGuest, nil
	case "SHOPPER", "USER":
		return RoleShopper, nil
	case "ADMIN":
		return RoleAdmin, nil
	}
	return RoleGuest, fmt.Errorf("unknown role %q", s)
}
