package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/messaging"
)

// SendMessageInput contains the input for sending a message. A nil
// recipient makes the message a broadcast.
type SendMessageInput struct {
	RecipientID *uuid.UUID
	Subject     string
	Body        string
}

// MessageDTO represents a message returned to callers
type MessageDTO struct {
	ID            uuid.UUID  `json:"id"`
	SenderID      uuid.UUID  `json:"sender_id"`
	RecipientID   *uuid.UUID `json:"recipient_id,omitempty"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	Broadcast     bool       `json:"broadcast"`
	HasAttachment bool       `json:"has_attachment"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MessageListResult represents a paginated message list
type MessageListResult struct {
	Messages   []MessageDTO `json:"messages"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// AttachmentUploadDTO carries a presigned PUT URL for a direct
// browser-to-store upload
type AttachmentUploadDTO struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AttachmentDownloadDTO carries a presigned GET URL
type AttachmentDownloadDTO struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NotificationDTO represents an in-portal notification
type NotificationDTO struct {
	ID          uuid.UUID `json:"id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Kind        string    `json:"kind"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	ReferenceID uuid.UUID `json:"reference_id"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationListResult represents a paginated notification list
type NotificationListResult struct {
	Notifications []NotificationDTO `json:"notifications"`
	Total         int64             `json:"total"`
	Unread        int64             `json:"unread"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	TotalPages    int               `json:"total_pages"`
}

func toMessageDTO(m *messaging.Message) *MessageDTO {
	return &MessageDTO{
		ID:            m.ID,
		SenderID:      m.SenderID,
		RecipientID:   m.RecipientID,
		Subject:       m.Subject,
		Body:          m.Body,
		Broadcast:     m.IsBroadcast(),
		HasAttachment: m.AttachmentKey != "",
		ReadAt:        m.ReadAt,
		CreatedAt:     m.CreatedAt,
	}
}

func toNotificationDTO(n *messaging.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Kind:        n.Kind.String(),
		Subject:     n.Subject,
		Body:        n.Body,
		ReferenceID: n.ReferenceID,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
