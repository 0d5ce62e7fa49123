package expense

import (
	"fmt"
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DisputeStatus represents the status of a dispute
type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "open"
	DisputeStatusResolved DisputeStatus = "resolved"
)

// IsValid checks if the status is a valid DisputeStatus
func (s DisputeStatus) IsValid() bool {
	return s == DisputeStatusOpen || s == DisputeStatusResolved
}

// String returns the string representation of DisputeStatus
func (s DisputeStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DisputeStatus) CanTransitionTo(target DisputeStatus) bool {
	return s == DisputeStatusOpen && target == DisputeStatusResolved
}

// Dispute is a driver's objection to a corrected report. Its status is
// independent of the report status: resolving never touches the report.
type Dispute struct {
	shared.BaseAggregateRoot
	ReportID   uuid.UUID
	RaisedBy   uuid.UUID
	Message    string
	Status     DisputeStatus
	ResolvedBy *uuid.UUID
	ResolvedAt *time.Time
}

// newDispute is called through ExpenseReport.OpenDispute, which holds
// the guards on ownership, report status and duplicate open disputes
func newDispute(reportID, raisedBy uuid.UUID, message string) *Dispute {
	return &Dispute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReportID:          reportID,
		RaisedBy:          raisedBy,
		Message:           message,
		Status:            DisputeStatusOpen,
	}
}

// Resolve transitions the dispute from open to resolved and stamps the
// resolver. Admin/office only. The message is never edited.
func (d *Dispute) Resolve(actor identity.Actor) error {
	if !actor.CanDecide() {
		return shared.ErrForbidden
	}
	if !d.Status.CanTransitionTo(DisputeStatusResolved) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot resolve dispute in %s status", d.Status))
	}

	now := time.Now()
	resolverID := actor.ProfileID
	d.Status = DisputeStatusResolved
	d.ResolvedBy = &resolverID
	d.ResolvedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDisputeResolvedEvent(d))

	return nil
}
