package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/hrportal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDisputeRepository implements expense.DisputeRepository using GORM
type GormDisputeRepository struct {
	db *gorm.DB
}

// NewGormDisputeRepository creates a new GormDisputeRepository
func NewGormDisputeRepository(db *gorm.DB) *GormDisputeRepository {
	return &GormDisputeRepository{db: db}
}

// Create creates a new dispute. The partial unique index on
// (report_id) WHERE status = 'open' makes this the authoritative
// single-open-dispute check: racing opens surface here, not in the
// service's advisory pre-check.
func (r *GormDisputeRepository) Create(ctx context.Context, dispute *expense.Dispute) error {
	model := models.DisputeModelFromDomain(dispute)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return shared.ErrDuplicateDispute
		}
		return err
	}
	return nil
}

// SaveResolution persists a resolved dispute conditionally on it still
// being open
func (r *GormDisputeRepository) SaveResolution(ctx context.Context, dispute *expense.Dispute) error {
	model := models.DisputeModelFromDomain(dispute)
	result := r.db.WithContext(ctx).Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", model.ID, expense.DisputeStatusOpen).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"resolved_by": model.ResolvedBy,
			"resolved_at": model.ResolvedAt,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentUpdate
	}
	return nil
}

// FindByID finds a dispute by ID
func (r *GormDisputeRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Dispute, error) {
	var model models.DisputeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReport returns all disputes of a report, newest first
func (r *GormDisputeRepository) FindByReport(ctx context.Context, reportID uuid.UUID) ([]*expense.Dispute, error) {
	var rows []models.DisputeModel
	if err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	disputes := make([]*expense.Dispute, len(rows))
	for i := range rows {
		disputes[i] = rows[i].ToDomain()
	}
	return disputes, nil
}

// HasOpenDispute reports whether the report carries an open dispute
func (r *GormDisputeRepository) HasOpenDispute(ctx context.Context, reportID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DisputeModel{}).
		Where("report_id = ? AND status = ?", reportID, expense.DisputeStatusOpen).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormDisputeRepository implements DisputeRepository
var _ expense.DisputeRepository = (*GormDisputeRepository)(nil)
