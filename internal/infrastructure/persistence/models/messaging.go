package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/messaging"
)

// MessageModel is the persistence model for the Message aggregate.
type MessageModel struct {
	AggregateModel
	SenderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	RecipientID   *uuid.UUID `gorm:"type:uuid;index"`
	Subject       string     `gorm:"type:varchar(300);not null"`
	Body          string     `gorm:"type:text;not null"`
	AttachmentKey string     `gorm:"type:varchar(500)"`
	ReadAt        *time.Time
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message.
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		BaseAggregateRoot: m.ToAggregateRoot(),
		SenderID:          m.SenderID,
		RecipientID:       m.RecipientID,
		Subject:           m.Subject,
		Body:              m.Body,
		AttachmentKey:     m.AttachmentKey,
		ReadAt:            m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Message.
func (m *MessageModel) FromDomain(msg *messaging.Message) {
	m.FromDomainAggregateRoot(msg.BaseAggregateRoot)
	m.SenderID = msg.SenderID
	m.RecipientID = msg.RecipientID
	m.Subject = msg.Subject
	m.Body = msg.Body
	m.AttachmentKey = msg.AttachmentKey
	m.ReadAt = msg.ReadAt
}

// MessageModelFromDomain creates a new persistence model from a domain Message.
func MessageModelFromDomain(msg *messaging.Message) *MessageModel {
	m := &MessageModel{}
	m.FromDomain(msg)
	return m
}

// NotificationModel is the persistence model for the Notification entity.
type NotificationModel struct {
	BaseModel
	RecipientID uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Kind        messaging.NotificationKind `gorm:"type:varchar(30);not null"`
	Subject     string                     `gorm:"type:varchar(300);not null"`
	Body        string                     `gorm:"type:text"`
	ReferenceID uuid.UUID                  `gorm:"type:uuid"`
	Read        bool                       `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() *messaging.Notification {
	return &messaging.Notification{
		BaseEntity:  m.BaseModel.ToDomain(),
		RecipientID: m.RecipientID,
		Kind:        m.Kind,
		Subject:     m.Subject,
		Body:        m.Body,
		ReferenceID: m.ReferenceID,
		Read:        m.Read,
	}
}

// FromDomain populates the persistence model from a domain Notification.
func (m *NotificationModel) FromDomain(n *messaging.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.RecipientID = n.RecipientID
	m.Kind = n.Kind
	m.Subject = n.Subject
	m.Body = n.Body
	m.ReferenceID = n.ReferenceID
	m.Read = n.Read
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification.
func NotificationModelFromDomain(n *messaging.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
