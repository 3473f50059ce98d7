// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: every persisted role value is one of the three
// constants below. Authorization decisions use the explicit predicates
// (IsAdmin, IsModerator, IsUser) rather than a numeric ladder, because
// moderator rights are a capability over community content, not a
// superset of admin rights.
type UserRole string

const (
	// Full write access to the catalog and user administration
	RoleAdmin UserRole = "admin"

	// Can edit or delete any review and comment
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// # Capability Predicates

// IsAdmin reports whether the role grants administrative access.
func (r UserRole) IsAdmin() bool { return r == RoleAdmin }

// IsModerator reports whether the role grants content-moderation access.
func (r UserRole) IsModerator() bool { return r == RoleModerator }

// IsUser reports whether the role is the plain registered-user role.
func (r UserRole) IsUser() bool { return r == RoleUser }

// Valid reports whether the value belongs to the closed role set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// RoleStrings returns the closed role set as plain strings, for use in
// validation rules (e.g. OneOf).
func RoleStrings() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}
