package absence

import (
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeAbsenceRequest = "AbsenceRequest"

// Event type constants
const (
	EventTypeAbsenceRequested = "AbsenceRequested"
	EventTypeAbsenceApproved  = "AbsenceApproved"
	EventTypeAbsenceRejected  = "AbsenceRejected"
)

// AbsenceRequestedEvent is raised when a new absence request is created
type AbsenceRequestedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID   `json:"request_id"`
	RequesterID uuid.UUID   `json:"requester_id"`
	Type        AbsenceType `json:"type"`
	LastMinute  bool        `json:"last_minute"`
}

// NewAbsenceRequestedEvent creates a new AbsenceRequestedEvent
func NewAbsenceRequestedEvent(request *AbsenceRequest) *AbsenceRequestedEvent {
	return &AbsenceRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAbsenceRequested, AggregateTypeAbsenceRequest, request.ID),
		RequestID:       request.ID,
		RequesterID:     request.RequesterID,
		Type:            request.Type,
		LastMinute:      request.LastMinute,
	}
}

// EventType returns the event type name
func (e *AbsenceRequestedEvent) EventType() string {
	return EventTypeAbsenceRequested
}

// AbsenceApprovedEvent is raised when a request is approved
type AbsenceApprovedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ApproverID  uuid.UUID `json:"approver_id"`
}

// NewAbsenceApprovedEvent creates a new AbsenceApprovedEvent
func NewAbsenceApprovedEvent(request *AbsenceRequest) *AbsenceApprovedEvent {
	event := &AbsenceApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAbsenceApproved, AggregateTypeAbsenceRequest, request.ID),
		RequestID:       request.ID,
		RequesterID:     request.RequesterID,
	}
	if request.ApproverID != nil {
		event.ApproverID = *request.ApproverID
	}
	return event
}

// EventType returns the event type name
func (e *AbsenceApprovedEvent) EventType() string {
	return EventTypeAbsenceApproved
}

// AbsenceRejectedEvent is raised when a request is rejected
type AbsenceRejectedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ApproverID  uuid.UUID `json:"approver_id"`
	Reason      string    `json:"reason"`
}

// NewAbsenceRejectedEvent creates a new AbsenceRejectedEvent
func NewAbsenceRejectedEvent(request *AbsenceRequest) *AbsenceRejectedEvent {
	event := &AbsenceRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAbsenceRejected, AggregateTypeAbsenceRequest, request.ID),
		RequestID:       request.ID,
		RequesterID:     request.RequesterID,
		Reason:          request.RejectionReason,
	}
	if request.ApproverID != nil {
		event.ApproverID = *request.ApproverID
	}
	return event
}

// EventType returns the event type name
func (e *AbsenceRejectedEvent) EventType() string {
	return EventTypeAbsenceRejected
}
