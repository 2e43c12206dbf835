package security

import "strings"

// Role is a closed capability level. Keeping it ordered lets callers express
// "manager or above" without comparing strings scattered around handlers.
type Role int

const (
	RoleInconnu Role = iota
	RoleEmploye
	RoleManager
	RoleAdmin
)

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employe":
		return RoleEmploye
	case "manager":
		return RoleManager
	case "admin":
		return RoleAdmin
	}
	return RoleInconnu
}

func (r Role) String() string {
	switch r {
	case RoleEmploye:
		return "employe"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	}
	return "inconnu"
}

// AtLeast reports whether r grants the capabilities of min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}
