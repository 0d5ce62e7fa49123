package messaging

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/messaging"
	"github.com/hrportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const attachmentURLTTL = 15 * time.Minute

// MessageService handles the internal mailbox: direct messages,
// broadcasts and their attachments
type MessageService struct {
	messageRepo messaging.MessageRepository
	profileRepo identity.ProfileRepository
	storage     AttachmentStorage
	logger      *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo messaging.MessageRepository,
	profileRepo identity.ProfileRepository,
	storage AttachmentStorage,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Send creates a message. Anyone may send a direct message to an
// active profile; broadcasts are admin/office only.
func (s *MessageService) Send(ctx context.Context, actor identity.Actor, input SendMessageInput) (*MessageDTO, error) {
	if input.RecipientID == nil {
		if !actor.CanDecide() {
			return nil, shared.ErrForbidden
		}
	} else {
		recipient, err := s.profileRepo.FindByID(ctx, *input.RecipientID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("RECIPIENT_NOT_FOUND", "Recipient profile not found")
			}
			s.logger.Error("failed to load recipient", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to send message")
		}
		if !recipient.Active {
			return nil, shared.NewDomainError("RECIPIENT_INACTIVE", "Recipient profile is deactivated")
		}
	}

	message, err := messaging.NewMessage(actor.ProfileID, input.RecipientID, input.Subject, input.Body)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error("failed to create message", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to send message")
	}

	s.logger.Info("message sent",
		zap.String("message_id", message.ID.String()),
		zap.String("sender_id", actor.ProfileID.String()),
		zap.Bool("broadcast", message.IsBroadcast()))

	return toMessageDTO(message), nil
}

// GetByID returns one message when the actor may read it
func (s *MessageService) GetByID(ctx context.Context, actor identity.Actor, messageID uuid.UUID) (*MessageDTO, error) {
	message, err := s.findVisibleMessage(ctx, actor, messageID)
	if err != nil {
		return nil, err
	}
	return toMessageDTO(message), nil
}

// List returns the actor's mailbox: direct messages to or from them
// plus broadcasts, newest first
func (s *MessageService) List(ctx context.Context, actor identity.Actor, page, pageSize int) (*MessageListResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	messages, total, err := s.messageRepo.FindForProfile(ctx, actor.ProfileID, page, pageSize)
	if err != nil {
		s.logger.Error("failed to list messages", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list messages")
	}

	dtos := make([]MessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = *toMessageDTO(message)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &MessageListResult{
		Messages:   dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// MarkRead stamps the read time on a direct message. Recipient only.
func (s *MessageService) MarkRead(ctx context.Context, actor identity.Actor, messageID uuid.UUID) (*MessageDTO, error) {
	message, err := s.findMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := message.MarkRead(actor); err != nil {
		return nil, err
	}

	if err := s.messageRepo.Update(ctx, message); err != nil {
		s.logger.Error("failed to mark message read", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update message")
	}

	return toMessageDTO(message), nil
}

// RequestAttachmentUpload issues a presigned PUT URL for one
// attachment. Sender only; a message carries at most one attachment.
func (s *MessageService) RequestAttachmentUpload(ctx context.Context, actor identity.Actor, messageID uuid.UUID, filename, contentType string) (*AttachmentUploadDTO, error) {
	message, err := s.findMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !actor.Is(message.SenderID) {
		return nil, shared.ErrForbidden
	}
	if message.AttachmentKey != "" {
		return nil, shared.NewDomainError("ATTACHMENT_EXISTS", "Message already carries an attachment")
	}
	if strings.TrimSpace(filename) == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Attachment filename cannot be empty")
	}

	storageKey := attachmentKey(messageID, filename)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, attachmentURLTTL)
	if err != nil {
		s.logger.Error("failed to presign attachment upload", zap.Error(err), zap.String("storage_key", storageKey))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to prepare attachment upload")
	}

	return &AttachmentUploadDTO{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmAttachment binds an uploaded object to the message after
// checking the upload actually happened
func (s *MessageService) ConfirmAttachment(ctx context.Context, actor identity.Actor, messageID uuid.UUID, storageKey string) (*MessageDTO, error) {
	message, err := s.findMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		s.logger.Error("failed to check attachment object", zap.Error(err), zap.String("storage_key", storageKey))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to confirm attachment")
	}
	if !exists {
		return nil, shared.NewDomainError("ATTACHMENT_NOT_UPLOADED", "Attachment was not uploaded")
	}

	if err := message.Attach(actor, storageKey); err != nil {
		return nil, err
	}

	if err := s.messageRepo.Update(ctx, message); err != nil {
		s.logger.Error("failed to save attachment key", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to confirm attachment")
	}

	return toMessageDTO(message), nil
}

// GetAttachmentURL issues a presigned GET URL for the message's
// attachment to anyone who may read the message
func (s *MessageService) GetAttachmentURL(ctx context.Context, actor identity.Actor, messageID uuid.UUID) (*AttachmentDownloadDTO, error) {
	message, err := s.findVisibleMessage(ctx, actor, messageID)
	if err != nil {
		return nil, err
	}
	if message.AttachmentKey == "" {
		return nil, shared.NewDomainError("NO_ATTACHMENT", "Message carries no attachment")
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, message.AttachmentKey, attachmentURLTTL)
	if err != nil {
		s.logger.Error("failed to presign attachment download", zap.Error(err), zap.String("storage_key", message.AttachmentKey))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to prepare attachment download")
	}

	return &AttachmentDownloadDTO{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *MessageService) findMessage(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("MESSAGE_NOT_FOUND", "Message not found")
		}
		s.logger.Error("failed to find message", zap.Error(err), zap.String("message_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find message")
	}
	return message, nil
}

func (s *MessageService) findVisibleMessage(ctx context.Context, actor identity.Actor, id uuid.UUID) (*messaging.Message, error) {
	message, err := s.findMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !message.VisibleTo(actor.ProfileID) {
		return nil, shared.ErrForbidden
	}
	return message, nil
}

// attachmentKey builds a collision-free object key under the message's
// prefix, keeping the original extension for content-type sniffing
func attachmentKey(messageID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("attachments/%s/%s%s", messageID, uuid.New(), ext)
}
