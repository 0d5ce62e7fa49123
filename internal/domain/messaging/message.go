package messaging

import (
	"strings"
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Message is an internal mail item, point-to-point or broadcast.
// A nil recipient means everyone sees it. Attachments live in object
// storage; the message only carries the storage key.
type Message struct {
	shared.BaseAggregateRoot
	SenderID      uuid.UUID
	RecipientID   *uuid.UUID
	Subject       string
	Body          string
	AttachmentKey string
	ReadAt        *time.Time
}

// NewMessage creates a message. Pass a nil recipient for a broadcast.
func NewMessage(senderID uuid.UUID, recipientID *uuid.UUID, subject, body string) (*Message, error) {
	if senderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SENDER", "Sender ID cannot be empty")
	}
	if recipientID != nil && *recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient ID cannot be empty")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Message subject cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Message body cannot be empty")
	}

	return &Message{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SenderID:          senderID,
		RecipientID:       recipientID,
		Subject:           strings.TrimSpace(subject),
		Body:              body,
	}, nil
}

// IsBroadcast returns true when the message targets everyone
func (m *Message) IsBroadcast() bool {
	return m.RecipientID == nil
}

// VisibleTo returns true if the profile may read the message
func (m *Message) VisibleTo(profileID uuid.UUID) bool {
	if m.IsBroadcast() {
		return true
	}
	return *m.RecipientID == profileID || m.SenderID == profileID
}

// Attach records the object-storage key of an uploaded file.
// Only the sender may attach, and only once.
func (m *Message) Attach(actor identity.Actor, key string) error {
	if !actor.Is(m.SenderID) {
		return shared.ErrForbidden
	}
	if strings.TrimSpace(key) == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment key cannot be empty")
	}
	if m.AttachmentKey != "" {
		return shared.NewDomainError("ATTACHMENT_EXISTS", "Message already carries an attachment")
	}

	m.AttachmentKey = key
	m.UpdatedAt = time.Now()

	return nil
}

// MarkRead stamps the read time. Only the recipient of a direct
// message may mark it; broadcasts carry no read state.
func (m *Message) MarkRead(actor identity.Actor) error {
	if m.IsBroadcast() {
		return shared.NewDomainError("INVALID_INPUT", "Broadcast messages carry no read state")
	}
	if !actor.Is(*m.RecipientID) {
		return shared.ErrForbidden
	}
	if m.ReadAt != nil {
		return nil
	}

	now := time.Now()
	m.ReadAt = &now
	m.UpdatedAt = now

	return nil
}
