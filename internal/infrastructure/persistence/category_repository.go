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

// GormCategoryRepository implements expense.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *expense.Category) error {
	model := models.CategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing category. Captured report lines keep the
// amounts they were created with; only future grids see the change.
func (r *GormCategoryRepository) Update(ctx context.Context, category *expense.Category) error {
	model := models.CategoryModelFromDomain(category)
	result := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", model.ID).
		Select("name", "default_amount", "applicability", "kind",
			"display_order", "active", "version", "updated_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns active categories ordered by display order,
// optionally restricted to a kind
func (r *GormCategoryRepository) FindActive(ctx context.Context, kind *expense.CategoryKind) ([]*expense.Category, error) {
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	var rows []models.CategoryModel
	if err := query.Order("display_order ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]*expense.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, nil
}

// FindAll returns all categories ordered by display order
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]*expense.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]*expense.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, nil
}

// Count returns the total number of categories
func (r *GormCategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ expense.CategoryRepository = (*GormCategoryRepository)(nil)
