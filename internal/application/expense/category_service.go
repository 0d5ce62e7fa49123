package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles the expense category catalog. Catalog edits
// never touch captured report lines; amounts are captured at toggle
// time.
type CategoryService struct {
	categoryRepo expense.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo expense.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new catalog category. Admin only.
func (s *CategoryService) Create(ctx context.Context, actor identity.Actor, input CreateCategoryInput) (*CategoryDTO, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	category, err := expense.NewCategory(input.Name, input.DefaultAmount, input.Applicability, input.Kind, input.DisplayOrder)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error("failed to create category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	s.logger.Info("expense category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
		zap.String("kind", category.Kind.String()))

	return toCategoryDTO(category), nil
}

// Update changes a category's name, default amount, or display order.
// Admin only. Only grids built afterwards see the new amount.
func (s *CategoryService) Update(ctx context.Context, actor identity.Actor, input UpdateCategoryInput) (*CategoryDTO, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	category, err := s.findCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := category.Update(input.Name, input.DefaultAmount, input.DisplayOrder); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("failed to update category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}

	return toCategoryDTO(category), nil
}

// Activate makes a category available on new grids. Admin only.
func (s *CategoryService) Activate(ctx context.Context, actor identity.Actor, categoryID uuid.UUID) (*CategoryDTO, error) {
	return s.setActive(ctx, actor, categoryID, true)
}

// Deactivate hides a category from new grids. Existing lines keep
// their captured amounts. Admin only.
func (s *CategoryService) Deactivate(ctx context.Context, actor identity.Actor, categoryID uuid.UUID) (*CategoryDTO, error) {
	return s.setActive(ctx, actor, categoryID, false)
}

// GetByID returns one category
func (s *CategoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*CategoryDTO, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(category), nil
}

// ListActive returns active categories ordered by display order,
// optionally restricted to a kind
func (s *CategoryService) ListActive(ctx context.Context, kind *expense.CategoryKind) ([]CategoryDTO, error) {
	if kind != nil && !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown category kind")
	}

	categories, err := s.categoryRepo.FindActive(ctx, kind)
	if err != nil {
		s.logger.Error("failed to list active categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = *toCategoryDTO(category)
	}
	return dtos, nil
}

// ListAll returns the full catalog, inactive categories included.
// Admin only.
func (s *CategoryService) ListAll(ctx context.Context, actor identity.Actor) ([]CategoryDTO, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = *toCategoryDTO(category)
	}
	return dtos, nil
}

func (s *CategoryService) setActive(ctx context.Context, actor identity.Actor, categoryID uuid.UUID, active bool) (*CategoryDTO, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if active {
		category.Activate()
	} else {
		category.Deactivate()
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("failed to update category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}

	return toCategoryDTO(category), nil
}

func (s *CategoryService) findCategory(ctx context.Context, id uuid.UUID) (*expense.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Expense category not found")
		}
		s.logger.Error("failed to find category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find category")
	}
	return category, nil
}
