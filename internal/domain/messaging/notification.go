package messaging

import (
	"strings"
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationKind names the workflow event a notification reports
type NotificationKind string

const (
	NotificationAbsenceApproved NotificationKind = "absence_approved"
	NotificationAbsenceRejected NotificationKind = "absence_rejected"
	NotificationReportSubmitted NotificationKind = "report_submitted"
	NotificationReportValidated NotificationKind = "report_validated"
	NotificationReportCorrected NotificationKind = "report_corrected"
	NotificationDisputeOpened   NotificationKind = "dispute_opened"
	NotificationDisputeResolved NotificationKind = "dispute_resolved"
)

// IsValid checks if the kind is a known NotificationKind
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationAbsenceApproved, NotificationAbsenceRejected,
		NotificationReportSubmitted, NotificationReportValidated, NotificationReportCorrected,
		NotificationDisputeOpened, NotificationDisputeResolved:
		return true
	}
	return false
}

// String returns the string representation of NotificationKind
func (k NotificationKind) String() string {
	return string(k)
}

// Notification is an in-portal alert row produced by workflow event
// listeners. Delivery beyond the row itself (push, email) is out of
// scope; the row is the notification.
type Notification struct {
	shared.BaseEntity
	RecipientID uuid.UUID
	Kind        NotificationKind
	Subject     string
	Body        string
	ReferenceID uuid.UUID
	Read        bool
}

// NewNotification creates an unread notification pointing at the
// aggregate the event concerned
func NewNotification(recipientID uuid.UUID, kind NotificationKind, subject, body string, referenceID uuid.UUID) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Notification kind is not valid")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Notification subject cannot be empty")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		Kind:        kind,
		Subject:     strings.TrimSpace(subject),
		Body:        body,
		ReferenceID: referenceID,
	}, nil
}

// MarkRead flags the notification as read. Recipient only.
func (n *Notification) MarkRead(actor identity.Actor) error {
	if !actor.Is(n.RecipientID) {
		return shared.ErrForbidden
	}

	n.Read = true
	n.UpdatedAt = time.Now()

	return nil
}
