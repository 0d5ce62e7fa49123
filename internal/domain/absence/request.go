package absence

import (
	"fmt"
	"strings"
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AbsenceType represents the reason class of an absence request
type AbsenceType string

const (
	AbsenceTypePaidLeave            AbsenceType = "paid_leave"
	AbsenceTypeAnticipatedPaidLeave AbsenceType = "anticipated_paid_leave"
	AbsenceTypeUnpaidLeave          AbsenceType = "unpaid_leave"
	AbsenceTypeSickness             AbsenceType = "sickness"
	AbsenceTypeWorkAccident         AbsenceType = "work_accident"
	AbsenceTypeExceptional          AbsenceType = "exceptional"
)

// IsValid checks if the type is a valid AbsenceType
func (t AbsenceType) IsValid() bool {
	switch t {
	case AbsenceTypePaidLeave, AbsenceTypeAnticipatedPaidLeave, AbsenceTypeUnpaidLeave,
		AbsenceTypeSickness, AbsenceTypeWorkAccident, AbsenceTypeExceptional:
		return true
	}
	return false
}

// String returns the string representation of AbsenceType
func (t AbsenceType) String() string {
	return string(t)
}

// RequestStatus represents the status of an absence request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return target == RequestStatusApproved || target == RequestStatusRejected
	case RequestStatusApproved, RequestStatusRejected:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true once the request has been decided
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// MaxAlternativeRanges limits how many fallback date ranges a request may carry
const MaxAlternativeRanges = 2

// DateRange is an absence window expressed as the last worked day and the
// day the requester returns to work
type DateRange struct {
	LastWorkedDay time.Time `json:"last_worked_day"`
	ReturnDay     time.Time `json:"return_day"`
}

// NewDateRange creates a validated date range
func NewDateRange(lastWorkedDay, returnDay time.Time) (DateRange, error) {
	r := DateRange{LastWorkedDay: lastWorkedDay, ReturnDay: returnDay}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate checks the range invariant
func (r DateRange) Validate() error {
	if r.LastWorkedDay.IsZero() || r.ReturnDay.IsZero() {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Both last worked day and return day are required")
	}
	if r.ReturnDay.Before(r.LastWorkedDay) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Return day cannot precede last worked day")
	}
	return nil
}

// IsZero returns true if the range carries no dates
func (r DateRange) IsZero() bool {
	return r.LastWorkedDay.IsZero() && r.ReturnDay.IsZero()
}

// AbsenceRequest represents a driver's request for time off
// It is created pending and decided exactly once into a terminal state
type AbsenceRequest struct {
	shared.BaseAggregateRoot
	RequesterID     uuid.UUID
	Type            AbsenceType
	Range           DateRange
	Alternatives    []DateRange
	Comment         string
	Status          RequestStatus
	RejectionReason string
	ApproverID      *uuid.UUID
	DecidedAt       *time.Time
	LastMinute      bool
}

// NewAbsenceRequest creates a new pending absence request
func NewAbsenceRequest(requesterID uuid.UUID, absenceType AbsenceType, dateRange DateRange, alternatives []DateRange, comment string, lastMinute bool) (*AbsenceRequest, error) {
	if requesterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester ID cannot be empty")
	}
	if !absenceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ABSENCE_TYPE", "Absence type is not valid")
	}
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}
	if len(alternatives) > MaxAlternativeRanges {
		return nil, shared.NewDomainError("TOO_MANY_ALTERNATIVES", fmt.Sprintf("At most %d alternative ranges are allowed", MaxAlternativeRanges))
	}
	for _, alt := range alternatives {
		if err := alt.Validate(); err != nil {
			return nil, err
		}
	}

	request := &AbsenceRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequesterID:       requesterID,
		Type:              absenceType,
		Range:             dateRange,
		Alternatives:      alternatives,
		Comment:           strings.TrimSpace(comment),
		Status:            RequestStatusPending,
		LastMinute:        lastMinute,
	}

	request.AddDomainEvent(NewAbsenceRequestedEvent(request))

	return request, nil
}

// UpdateComment updates the narrative comment
// Allowed in any status: the comment is not part of the decision record
func (r *AbsenceRequest) UpdateComment(comment string) {
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()
}

// Approve transitions the request from pending to approved
// Only an admin/office actor may decide, and never on their own request
func (r *AbsenceRequest) Approve(actor identity.Actor) error {
	if err := r.checkDecider(actor); err != nil {
		return err
	}
	if !r.Status.CanTransitionTo(RequestStatusApproved) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot approve request in %s status", r.Status))
	}

	now := time.Now()
	approverID := actor.ProfileID
	r.Status = RequestStatusApproved
	r.ApproverID = &approverID
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewAbsenceApprovedEvent(r))

	return nil
}

// Reject transitions the request from pending to rejected
// A non-empty reason is mandatory and is stored verbatim
func (r *AbsenceRequest) Reject(actor identity.Actor, reason string) error {
	if err := r.checkDecider(actor); err != nil {
		return err
	}
	if !r.Status.CanTransitionTo(RequestStatusRejected) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot reject request in %s status", r.Status))
	}
	if strings.TrimSpace(reason) == "" {
		return shared.ErrMissingReason
	}

	now := time.Now()
	approverID := actor.ProfileID
	r.Status = RequestStatusRejected
	r.RejectionReason = reason
	r.ApproverID = &approverID
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewAbsenceRejectedEvent(r))

	return nil
}

// IsOwnedBy returns true if the request belongs to the given profile
func (r *AbsenceRequest) IsOwnedBy(profileID uuid.UUID) bool {
	return r.RequesterID == profileID
}

func (r *AbsenceRequest) checkDecider(actor identity.Actor) error {
	if !actor.CanDecide() {
		return shared.ErrForbidden
	}
	if actor.Is(r.RequesterID) {
		return shared.NewDomainError("FORBIDDEN", "Cannot decide your own absence request")
	}
	return nil
}
