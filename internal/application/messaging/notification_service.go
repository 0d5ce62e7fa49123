package messaging

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/messaging"
	"github.com/hrportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NotificationService surfaces the actor's in-portal notifications
type NotificationService struct {
	notificationRepo messaging.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo messaging.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List returns the actor's notifications, newest first
func (s *NotificationService) List(ctx context.Context, actor identity.Actor, unreadOnly bool, page, pageSize int) (*NotificationListResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindByRecipient(ctx, actor.ProfileID, unreadOnly, page, pageSize)
	if err != nil {
		s.logger.Error("failed to list notifications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}

	unread, err := s.notificationRepo.CountUnread(ctx, actor.ProfileID)
	if err != nil {
		s.logger.Error("failed to count unread notifications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}

	dtos := make([]NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = *toNotificationDTO(notification)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &NotificationListResult{
		Notifications: dtos,
		Total:         total,
		Unread:        unread,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
	}, nil
}

// MarkRead flags one notification as read. Recipient only.
func (s *NotificationService) MarkRead(ctx context.Context, actor identity.Actor, notificationID uuid.UUID) (*NotificationDTO, error) {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOTIFICATION_NOT_FOUND", "Notification not found")
		}
		s.logger.Error("failed to find notification", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find notification")
	}

	if err := notification.MarkRead(actor); err != nil {
		return nil, err
	}

	if err := s.notificationRepo.Update(ctx, notification); err != nil {
		s.logger.Error("failed to mark notification read", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update notification")
	}

	return toNotificationDTO(notification), nil
}

// MarkAllRead flags every unread notification of the actor
func (s *NotificationService) MarkAllRead(ctx context.Context, actor identity.Actor) error {
	if err := s.notificationRepo.MarkAllRead(ctx, actor.ProfileID); err != nil {
		s.logger.Error("failed to mark all notifications read", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update notifications")
	}
	return nil
}

// CountUnread returns the actor's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, actor identity.Actor) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx, actor.ProfileID)
	if err != nil {
		s.logger.Error("failed to count unread notifications", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count notifications")
	}
	return count, nil
}
