package handler

import (
	"github.com/gin-gonic/gin"

	messagingapp "github.com/hrportal/backend/internal/application/messaging"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *messagingapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *messagingapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotificationsRequest represents notification list query parameters
type ListNotificationsRequest struct {
	dto.ListRequest
	UnreadOnly bool `form:"unread_only"`
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	result, err := h.notificationService.List(c.Request.Context(), actor, req.UnreadOnly, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, result.Total, result.Page, result.PageSize)
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notification)
}

// MarkAllRead marks every unread notification of the caller as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), actor); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CountUnread returns the caller's unread notification count
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"unread": count})
}
