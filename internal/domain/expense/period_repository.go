package expense

import (
	"context"

	"github.com/google/uuid"
)

// PeriodRepository defines the interface for expense period persistence
type PeriodRepository interface {
	// Create creates a new period
	Create(ctx context.Context, period *ExpensePeriod) error

	// SaveClose persists a closed period with a conditional update on
	// (id, open). Returns CONCURRENT_MODIFICATION when no row matched.
	SaveClose(ctx context.Context, period *ExpensePeriod) error

	// FindByID finds a period by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ExpensePeriod, error)

	// FindOpen returns all currently open periods, newest first.
	// Zero or several open periods are both expected states.
	FindOpen(ctx context.Context) ([]*ExpensePeriod, error)

	// FindAll returns all periods ordered by start date descending
	FindAll(ctx context.Context, page, pageSize int) ([]*ExpensePeriod, int64, error)

	// Count returns the total number of periods
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *Category) error

	// Update updates an existing category
	Update(ctx context.Context, category *Category) error

	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindActive returns active categories ordered by display order,
	// optionally restricted to a kind
	FindActive(ctx context.Context, kind *CategoryKind) ([]*Category, error)

	// FindAll returns all categories ordered by display order
	FindAll(ctx context.Context) ([]*Category, error)

	// Count returns the total number of categories
	Count(ctx context.Context) (int64, error)
}
