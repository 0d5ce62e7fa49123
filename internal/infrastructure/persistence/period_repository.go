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

// GormPeriodRepository implements expense.PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// Create creates a new period
func (r *GormPeriodRepository) Create(ctx context.Context, period *expense.ExpensePeriod) error {
	model := models.ExpensePeriodModelFromDomain(period)
	return r.db.WithContext(ctx).Create(model).Error
}

// SaveClose persists a closed period conditionally on it still being open.
func (r *GormPeriodRepository) SaveClose(ctx context.Context, period *expense.ExpensePeriod) error {
	model := models.ExpensePeriodModelFromDomain(period)
	result := r.db.WithContext(ctx).Model(&models.ExpensePeriodModel{}).
		Where("id = ? AND status = ?", model.ID, expense.PeriodStatusOpen).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentUpdate
	}
	return nil
}

// FindByID finds a period by ID
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.ExpensePeriod, error) {
	var model models.ExpensePeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpen returns all currently open periods, newest first
func (r *GormPeriodRepository) FindOpen(ctx context.Context) ([]*expense.ExpensePeriod, error) {
	var rows []models.ExpensePeriodModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", expense.PeriodStatusOpen).
		Order("start_date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	periods := make([]*expense.ExpensePeriod, len(rows))
	for i := range rows {
		periods[i] = rows[i].ToDomain()
	}
	return periods, nil
}

// FindAll returns all periods ordered by start date descending
func (r *GormPeriodRepository) FindAll(ctx context.Context, page, pageSize int) ([]*expense.ExpensePeriod, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ExpensePeriodModel{}).Count(&total).Error; err != nil {
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

	var rows []models.ExpensePeriodModel
	if err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	periods := make([]*expense.ExpensePeriod, len(rows))
	for i := range rows {
		periods[i] = rows[i].ToDomain()
	}
	return periods, total, nil
}

// Count returns the total number of periods
func (r *GormPeriodRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExpensePeriodModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPeriodRepository implements PeriodRepository
var _ expense.PeriodRepository = (*GormPeriodRepository)(nil)
