package models

import "strings"

// Role is the closed set of account roles carried in the access token.
type Role string

const (
	RoleTourist   Role = "tourist"
	RoleTourGuide Role = "tour guide"
	RoleAdmin     Role = "admin"
)

var AllRoles = []Role{RoleTourist, RoleTourGuide, RoleAdmin}

// ParseRole accepts the stored spelling plus the hyphenated form used in URLs.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tourist":
		return RoleTourist, true
	case "tour guide", "tour-guide", "tourguide":
		return RoleTourGuide, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

func (r Role) Valid() bool {
	switch r {
	case RoleTourist, RoleTourGuide, RoleAdmin:
		return true
	}
	return false
}

// Satisfies reports whether a caller holding r may use an endpoint that requires the given role.
// Unknown roles on either side never match.
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleTourist:
		return r == RoleTourist
	case RoleTourGuide:
		return r == RoleTourGuide
	default:
		return false
	}
}
