package expense

import (
	"strings"
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CategoryKind distinguishes flat expense allowances from quantity bonuses
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindBonus   CategoryKind = "bonus"
)

// IsValid checks if the kind is a valid CategoryKind
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindExpense || k == CategoryKindBonus
}

// String returns the string representation of CategoryKind
func (k CategoryKind) String() string {
	return string(k)
}

// Applicability restricts a category to a vehicle class
type Applicability string

const (
	ApplicabilityLight Applicability = "light"
	ApplicabilityHeavy Applicability = "heavy"
	ApplicabilityAll   Applicability = "all"
)

// IsValid checks if the applicability is valid
func (a Applicability) IsValid() bool {
	switch a {
	case ApplicabilityLight, ApplicabilityHeavy, ApplicabilityAll:
		return true
	}
	return false
}

// String returns the string representation of Applicability
func (a Applicability) String() string {
	return string(a)
}

// Matches returns true if a driver with the given vehicle class may use the category
func (a Applicability) Matches(vehicle identity.VehicleProfile) bool {
	switch a {
	case ApplicabilityAll:
		return true
	case ApplicabilityLight:
		return vehicle == identity.VehicleProfileLight
	case ApplicabilityHeavy:
		return vehicle == identity.VehicleProfileHeavy
	}
	return false
}

// Category is reference data describing one allowance or bonus type.
// Amount changes are never retroactive: lines capture the amount in
// force when the cell was toggled.
type Category struct {
	shared.BaseAggregateRoot
	Name          string
	DefaultAmount decimal.Decimal
	Applicability Applicability
	Kind          CategoryKind
	DisplayOrder  int
	Active        bool
}

// NewCategory creates a new active category
func NewCategory(name string, defaultAmount decimal.Decimal, applicability Applicability, kind CategoryKind, displayOrder int) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if defaultAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Default amount cannot be negative")
	}
	if !applicability.IsValid() {
		return nil, shared.NewDomainError("INVALID_APPLICABILITY", "Vehicle applicability is not valid")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY_KIND", "Category kind must be expense or bonus")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		DefaultAmount:     defaultAmount,
		Applicability:     applicability,
		Kind:              kind,
		DisplayOrder:      displayOrder,
		Active:            true,
	}, nil
}

// Update changes the mutable reference fields.
// Existing report lines keep the amount they captured.
func (c *Category) Update(name string, defaultAmount decimal.Decimal, displayOrder int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if defaultAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Default amount cannot be negative")
	}

	c.Name = strings.TrimSpace(name)
	c.DefaultAmount = defaultAmount
	c.DisplayOrder = displayOrder
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate re-enables the category for new grids
func (c *Category) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate hides the category from new grids without touching history
func (c *Category) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// AvailableTo returns true if the category is usable by the given vehicle class
func (c *Category) AvailableTo(vehicle identity.VehicleProfile) bool {
	return c.Active && c.Applicability.Matches(vehicle)
}
