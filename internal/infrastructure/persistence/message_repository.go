package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/messaging"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/hrportal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMessageRepository implements messaging.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(ctx context.Context, message *messaging.Message) error {
	model := models.MessageModelFromDomain(message)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing message
func (r *GormMessageRepository) Update(ctx context.Context, message *messaging.Message) error {
	model := models.MessageModelFromDomain(message)
	result := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"attachment_key": model.AttachmentKey,
			"read_at":        model.ReadAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForProfile returns direct messages to or from the profile plus
// broadcasts, newest first
func (r *GormMessageRepository) FindForProfile(ctx context.Context, profileID uuid.UUID, page, pageSize int) ([]*messaging.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("sender_id = ? OR recipient_id = ? OR recipient_id IS NULL", profileID, profileID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var rows []models.MessageModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	messages := make([]*messaging.Message, len(rows))
	for i := range rows {
		messages[i] = rows[i].ToDomain()
	}
	return messages, total, nil
}

// Count returns the total number of messages
func (r *GormMessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MessageModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMessageRepository implements MessageRepository
var _ messaging.MessageRepository = (*GormMessageRepository)(nil)
