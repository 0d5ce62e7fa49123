package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/absence"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/hrportal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAbsenceRequestRepository implements absence.RequestRepository using GORM
type GormAbsenceRequestRepository struct {
	db *gorm.DB
}

// NewGormAbsenceRequestRepository creates a new GormAbsenceRequestRepository
func NewGormAbsenceRequestRepository(db *gorm.DB) *GormAbsenceRequestRepository {
	return &GormAbsenceRequestRepository{db: db}
}

// Create creates a new absence request with its alternative ranges
func (r *GormAbsenceRequestRepository) Create(ctx context.Context, request *absence.AbsenceRequest) error {
	model := models.AbsenceRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing request without a status guard
func (r *GormAbsenceRequestRepository) Update(ctx context.Context, request *absence.AbsenceRequest) error {
	model := models.AbsenceRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AbsenceRequestModel{}).
			Where("id = ?", model.ID).
			Select("comment", "version", "updated_at").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// SaveDecision persists a decision conditionally on the request still being
// pending. A lost race surfaces as CONCURRENT_MODIFICATION.
func (r *GormAbsenceRequestRepository) SaveDecision(ctx context.Context, request *absence.AbsenceRequest) error {
	model := models.AbsenceRequestModelFromDomain(request)
	result := r.db.WithContext(ctx).Model(&models.AbsenceRequestModel{}).
		Where("id = ? AND status = ?", model.ID, absence.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"rejection_reason": model.RejectionReason,
			"approver_id":      model.ApproverID,
			"decided_at":       model.DecidedAt,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentUpdate
	}
	return nil
}

// Delete deletes a request by ID
func (r *GormAbsenceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).
			Delete(&models.AbsenceAlternativeModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.AbsenceRequestModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a request by ID with its alternative ranges
func (r *GormAbsenceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*absence.AbsenceRequest, error) {
	var model models.AbsenceRequestModel
	if err := r.db.WithContext(ctx).
		Preload("Alternatives", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns requests matching the filter with pagination
func (r *GormAbsenceRequestRepository) FindAll(ctx context.Context, filter absence.RequestFilter) ([]*absence.AbsenceRequest, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AbsenceRequestModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, AbsenceRequestSortFields, "created_at")
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	var rows []models.AbsenceRequestModel
	if err := query.
		Preload("Alternatives", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*absence.AbsenceRequest, len(rows))
	for i := range rows {
		requests[i] = rows[i].ToDomain()
	}
	return requests, total, nil
}

// Count returns the total number of requests
func (r *GormAbsenceRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AbsenceRequestModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAbsenceRequestRepository) applyFilter(query *gorm.DB, filter absence.RequestFilter) *gorm.DB {
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	return query
}

// Ensure GormAbsenceRequestRepository implements RequestRepository
var _ absence.RequestRepository = (*GormAbsenceRequestRepository)(nil)
