package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/hrportal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReportRepository implements expense.ReportRepository using GORM.
// Status transitions use conditional updates on (id, expected status);
// zero rows affected surfaces as CONCURRENT_MODIFICATION.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Create creates a new report. The unique index on (owner_id, period_id)
// enforces one report per owner per period.
func (r *GormReportRepository) Create(ctx context.Context, report *expense.ExpenseReport) error {
	model := models.ExpenseReportModelFromDomain(report)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveDraft replaces the report's line set and totals without touching the status
func (r *GormReportRepository) SaveDraft(ctx context.Context, report *expense.ExpenseReport) error {
	model := models.ExpenseReportModelFromDomain(report)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ExpenseReportModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"expense_subtotal": model.ExpenseSubtotal,
				"bonus_subtotal":   model.BonusSubtotal,
				"grand_total":      model.GrandTotal,
				"version":          model.Version,
				"updated_at":       model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return r.replaceLines(tx, model)
	})
}

// SaveTransition persists a status change conditionally on the expected
// prior status, together with the refreshed totals and line set
func (r *GormReportRepository) SaveTransition(ctx context.Context, report *expense.ExpenseReport, expected expense.ReportStatus) error {
	model := models.ExpenseReportModelFromDomain(report)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.transition(tx, model, expected); err != nil {
			return err
		}
		return r.replaceLines(tx, model)
	})
}

// SaveCorrection persists the corrected report and its correction rows in
// a single transaction, conditionally on the expected prior status
func (r *GormReportRepository) SaveCorrection(ctx context.Context, report *expense.ExpenseReport, expected expense.ReportStatus, corrections []*expense.Correction) error {
	model := models.ExpenseReportModelFromDomain(report)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.transition(tx, model, expected); err != nil {
			return err
		}
		if err := r.replaceLines(tx, model); err != nil {
			return err
		}
		for _, correction := range corrections {
			if err := tx.Create(models.CorrectionModelFromDomain(correction)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a report by ID with its lines loaded
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.ExpenseReport, error) {
	var model models.ExpenseReportModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("BonusLines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwnerAndPeriod finds the owner's report for a period
func (r *GormReportRepository) FindByOwnerAndPeriod(ctx context.Context, ownerID, periodID uuid.UUID) (*expense.ExpenseReport, error) {
	var model models.ExpenseReportModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("BonusLines").
		Where("owner_id = ? AND period_id = ?", ownerID, periodID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns reports matching the filter with pagination
func (r *GormReportRepository) FindAll(ctx context.Context, filter expense.ReportFilter) ([]*expense.ExpenseReport, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseReportModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, ExpenseReportSortFields, "created_at")
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	var rows []models.ExpenseReportModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	reports := make([]*expense.ExpenseReport, len(rows))
	for i := range rows {
		reports[i] = rows[i].ToDomain()
	}
	return reports, total, nil
}

// ListCorrections returns the append-only correction history of a report,
// oldest first
func (r *GormReportRepository) ListCorrections(ctx context.Context, reportID uuid.UUID) ([]*expense.Correction, error) {
	var rows []models.CorrectionModel
	if err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	corrections := make([]*expense.Correction, len(rows))
	for i := range rows {
		corrections[i] = rows[i].ToDomain()
	}
	return corrections, nil
}

// Count returns the total number of reports
func (r *GormReportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExpenseReportModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormReportRepository) transition(tx *gorm.DB, model *models.ExpenseReportModel, expected expense.ReportStatus) error {
	result := tx.Model(&models.ExpenseReportModel{}).
		Where("id = ? AND status = ?", model.ID, expected).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"expense_subtotal": model.ExpenseSubtotal,
			"bonus_subtotal":   model.BonusSubtotal,
			"grand_total":      model.GrandTotal,
			"validator_id":     model.ValidatorID,
			"validated_at":     model.ValidatedAt,
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

// replaceLines rewrites the full line set of a report. Lines are the source
// of truth for the grid, so partial updates are never attempted.
func (r *GormReportRepository) replaceLines(tx *gorm.DB, model *models.ExpenseReportModel) error {
	if err := tx.Where("report_id = ?", model.ID).Delete(&models.ExpenseLineModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("report_id = ?", model.ID).Delete(&models.BonusLineModel{}).Error; err != nil {
		return err
	}
	for i := range model.Lines {
		if err := tx.Create(&model.Lines[i]).Error; err != nil {
			return err
		}
	}
	for i := range model.BonusLines {
		if err := tx.Create(&model.BonusLines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormReportRepository) applyFilter(query *gorm.DB, filter expense.ReportFilter) *gorm.DB {
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.PeriodID != nil {
		query = query.Where("period_id = ?", *filter.PeriodID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// isUniqueViolation detects unique constraint errors across drivers
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Ensure GormReportRepository implements ReportRepository
var _ expense.ReportRepository = (*GormReportRepository)(nil)
