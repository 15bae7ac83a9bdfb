// Package models defines the core data structures shared by repositories
// and services.
package models

import "time"

// Role is the authorization level assigned to a user at registration.
// It never changes afterwards.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Username is the login name chosen by the user, at most 10 characters.
	Username string
	// Salt is the per-user random salt for credential hashing.
	Salt []byte
	// Verifier is the stored credential verifier.
	Verifier []byte
	// Role determines whether the user may act on other users' data.
	Role Role
}

// Principal is an authenticated identity resolved from an access token.
// Every inventory operation receives the acting principal explicitly;
// there is no ambient session state.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}

// IsAdmin reports whether the principal holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdministrator
}

// RefreshToken is a server-stored, rotating token used to mint new access
// tokens without re-entering credentials.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
