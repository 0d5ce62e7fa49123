package messaging

import (
	"context"

	"github.com/google/uuid"
)

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	// Create creates a new message
	Create(ctx context.Context, message *Message) error

	// Update updates an existing message
	Update(ctx context.Context, message *Message) error

	// FindByID finds a message by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// FindForProfile returns direct messages to or from the profile
	// plus broadcasts, newest first
	FindForProfile(ctx context.Context, profileID uuid.UUID, page, pageSize int) ([]*Message, int64, error)

	// Count returns the total number of messages
	Count(ctx context.Context) (int64, error)
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, notification *Notification) error

	// Update updates an existing notification
	Update(ctx context.Context, notification *Notification) error

	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByRecipient returns the recipient's notifications, newest
	// first, optionally unread only
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, pageSize int) ([]*Notification, int64, error)

	// MarkAllRead flags every unread notification of the recipient
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error

	// CountUnread returns the recipient's unread notification count
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}
