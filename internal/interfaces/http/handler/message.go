package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	messagingapp "github.com/hrportal/backend/internal/application/messaging"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
)

// MessageHandler handles internal message endpoints
type MessageHandler struct {
	BaseHandler
	messageService *messagingapp.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *messagingapp.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest represents a message to send. A missing recipient
// makes the message a broadcast (office and admin only).
type SendMessageRequest struct {
	RecipientID *string `json:"recipient_id" binding:"omitempty,uuid"`
	Subject     string  `json:"subject" binding:"required,min=1,max=200"`
	Body        string  `json:"body" binding:"required,min=1,max=10000"`
}

// RequestAttachmentUploadRequest represents an attachment upload request
type RequestAttachmentUploadRequest struct {
	Filename    string `json:"filename" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required,min=1,max=100"`
}

// ConfirmAttachmentRequest confirms a completed direct upload
type ConfirmAttachmentRequest struct {
	StorageKey string `json:"storage_key" binding:"required,min=1,max=512"`
}

// Send sends a direct or broadcast message
func (h *MessageHandler) Send(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := messagingapp.SendMessageInput{
		Subject: req.Subject,
		Body:    req.Body,
	}
	if req.RecipientID != nil && *req.RecipientID != "" {
		recipientID, err := uuid.Parse(*req.RecipientID)
		if err != nil {
			h.BadRequest(c, "Invalid recipient ID format")
			return
		}
		input.RecipientID = &recipientID
	}

	message, err := h.messageService.Send(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, message)
}

// GetByID returns a single message visible to the caller
func (h *MessageHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	message, err := h.messageService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message)
}

// List returns the caller's inbox: direct messages plus broadcasts
func (h *MessageHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	result, err := h.messageService.List(c.Request.Context(), actor, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Messages, result.Total, result.Page, result.PageSize)
}

// MarkRead marks a direct message as read by its recipient
func (h *MessageHandler) MarkRead(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	message, err := h.messageService.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message)
}

// RequestAttachmentUpload returns a presigned URL for a direct upload
func (h *MessageHandler) RequestAttachmentUpload(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	var req RequestAttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	upload, err := h.messageService.RequestAttachmentUpload(c.Request.Context(), actor, id, req.Filename, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, upload)
}

// ConfirmAttachment attaches an uploaded object to the message
func (h *MessageHandler) ConfirmAttachment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	var req ConfirmAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.ConfirmAttachment(c.Request.Context(), actor, id, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message)
}

// GetAttachmentURL returns a presigned download URL for the attachment
func (h *MessageHandler) GetAttachmentURL(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	download, err := h.messageService.GetAttachmentURL(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, download)
}
