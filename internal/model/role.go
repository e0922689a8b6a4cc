package model

import (
	"fmt"
	"strings"
)

// UserRole is the closed set of roles the system recognises.
type UserRole string

const (
	RoleUser    UserRole = "USER"
	RoleOfficer UserRole = "OFFICER"
	RoleAdmin   UserRole = "ADMIN"
)

// RolePrefix is the prefix auth responses carry on role strings ("ROLE_USER").
const RolePrefix = "ROLE_"

// ParseRole resolves a role string into the closed enum. It accepts the bare
// code in any case ("officer", "OFFICER") and the prefixed wire form
// ("ROLE_OFFICER"). Anything else is rejected instead of silently producing
// an unexpected role.
func ParseRole(s string) (UserRole, error) {
	code := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), RolePrefix))
	switch UserRole(code) {
	case RoleUser, RoleOfficer, RoleAdmin:
		return UserRole(code), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// WireName returns the "ROLE_X" form used in auth responses.
func (r UserRole) WireName() string {
	return RolePrefix + string(r)
}

// Lower returns the lowercase form clients display ("user", "officer", "admin").
func (r UserRole) Lower() string {
	return strings.ToLower(string(r))
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}
