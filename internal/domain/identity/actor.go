package identity

import "github.com/google/uuid"

// Actor identifies who performs an operation and with which role.
// It is threaded explicitly through every state-transition call so
// guard checks never depend on ambient request state.
type Actor struct {
	ProfileID uuid.UUID
	Role      Role
}

// IsZero returns true if the actor carries no identity
func (a Actor) IsZero() bool {
	return a.ProfileID == uuid.Nil
}

// CanDecide returns true if the actor may approve, reject, validate or correct
func (a Actor) CanDecide() bool {
	return a.Role.CanDecide()
}

// Is returns true if the actor is the given profile
func (a Actor) Is(profileID uuid.UUID) bool {
	return a.ProfileID == profileID
}
