// Package gameserver implements the campaign, character and combat use cases
// on top of the pure game packages and a pluggable document store.
package gameserver

import "errors"

// Role is the global role of an authenticated user.
type Role string

const (
	RoleGM     Role = "GM"
	RolePlayer Role = "PLAYER"
)

// Identity is the authenticated caller of an operation.
type Identity struct {
	ID   string
	Role Role
}

// IsGM reports whether the caller holds the GM role.
func (id Identity) IsGM() bool { return id.Role == RoleGM }

var (
	// ErrForbidden is returned when the caller may not perform the operation.
	// Nothing is changed.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidReference is returned for a missing character or template id
	// or a combatant index outside the roster.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrCombatNotActive is returned when a combat operation targets a
	// campaign with no encounter running.
	ErrCombatNotActive = errors.New("combat not active")
	// ErrOverburdened is returned when an item would push the carried load
	// past the character's maximum.
	ErrOverburdened = errors.New("overburdened")
)
