package identity

import (
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProfile = "Profile"

// Event type constants
const (
	EventTypeProfileCreated     = "ProfileCreated"
	EventTypeProfileDeactivated = "ProfileDeactivated"
)

// ProfileCreatedEvent is raised when a new profile is created
type ProfileCreatedEvent struct {
	shared.BaseDomainEvent
	ProfileID uuid.UUID `json:"profile_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
}

// NewProfileCreatedEvent creates a new ProfileCreatedEvent
func NewProfileCreatedEvent(profile *Profile) *ProfileCreatedEvent {
	return &ProfileCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileCreated, AggregateTypeProfile, profile.ID),
		ProfileID:       profile.ID,
		Email:           profile.Email,
		Role:            profile.Role,
	}
}

// EventType returns the event type name
func (e *ProfileCreatedEvent) EventType() string {
	return EventTypeProfileCreated
}

// ProfileDeactivatedEvent is raised when a profile is deactivated
type ProfileDeactivatedEvent struct {
	shared.BaseDomainEvent
	ProfileID uuid.UUID `json:"profile_id"`
}

// NewProfileDeactivatedEvent creates a new ProfileDeactivatedEvent
func NewProfileDeactivatedEvent(profile *Profile) *ProfileDeactivatedEvent {
	return &ProfileDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileDeactivated, AggregateTypeProfile, profile.ID),
		ProfileID:       profile.ID,
	}
}

// EventType returns the event type name
func (e *ProfileDeactivatedEvent) EventType() string {
	return EventTypeProfileDeactivated
}
