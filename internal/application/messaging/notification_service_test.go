package messaging

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/messaging"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func unreadNotification(t *testing.T, recipientID uuid.UUID) *messaging.Notification {
	t.Helper()
	notification, err := messaging.NewNotification(recipientID, messaging.NotificationReportValidated,
		"Expense report validated", "Your expense report has been validated.", uuid.New())
	require.NoError(t, err)
	return notification
}

func TestNotificationService_List(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	service := NewNotificationService(notificationRepo, zap.NewNop())
	actor := driverActor()

	notification := unreadNotification(t, actor.ProfileID)
	notificationRepo.On("FindByRecipient", mock.Anything, actor.ProfileID, true, 1, 20).
		Return([]*messaging.Notification{notification}, int64(1), nil)
	notificationRepo.On("CountUnread", mock.Anything, actor.ProfileID).Return(int64(1), nil)

	result, err := service.List(context.Background(), actor, true, 1, 20)

	require.NoError(t, err)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, int64(1), result.Unread)
	assert.False(t, result.Notifications[0].Read)
}

func TestNotificationService_MarkRead(t *testing.T) {
	t.Run("recipient marks read", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		service := NewNotificationService(notificationRepo, zap.NewNop())
		actor := driverActor()

		notification := unreadNotification(t, actor.ProfileID)
		notificationRepo.On("FindByID", mock.Anything, notification.ID).Return(notification, nil)
		notificationRepo.On("Update", mock.Anything, notification).Return(nil)

		dto, err := service.MarkRead(context.Background(), actor, notification.ID)

		require.NoError(t, err)
		assert.True(t, dto.Read)
	})

	t.Run("someone else's notification is off limits", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		service := NewNotificationService(notificationRepo, zap.NewNop())

		notification := unreadNotification(t, uuid.New())
		notificationRepo.On("FindByID", mock.Anything, notification.ID).Return(notification, nil)

		_, err := service.MarkRead(context.Background(), driverActor(), notification.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		notificationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	service := NewNotificationService(notificationRepo, zap.NewNop())
	actor := driverActor()

	notificationRepo.On("MarkAllRead", mock.Anything, actor.ProfileID).Return(nil)

	require.NoError(t, service.MarkAllRead(context.Background(), actor))
	notificationRepo.AssertExpectations(t)
}
