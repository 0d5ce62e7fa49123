package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// CreatePeriodInput contains the input for opening an expense period
type CreatePeriodInput struct {
	StartDate time.Time
	EndDate   time.Time
}

// PeriodDTO represents an expense period returned to callers
type PeriodDTO struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PeriodListResult represents a paginated period list
type PeriodListResult struct {
	Periods    []PeriodDTO `json:"periods"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// CreateCategoryInput contains the input for creating a catalog category
type CreateCategoryInput struct {
	Name          string
	DefaultAmount decimal.Decimal
	Applicability expense.Applicability
	Kind          expense.CategoryKind
	DisplayOrder  int
}

// UpdateCategoryInput contains the input for updating a category.
// Changes only affect grids built afterwards; captured lines keep the
// amounts they were toggled with.
type UpdateCategoryInput struct {
	ID            uuid.UUID
	Name          string
	DefaultAmount decimal.Decimal
	DisplayOrder  int
}

// CategoryDTO represents a catalog category returned to callers
type CategoryDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	Applicability string          `json:"applicability"`
	Kind          string          `json:"kind"`
	DisplayOrder  int             `json:"display_order"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseLineDTO represents one captured expense cell
type ExpenseLineDTO struct {
	ID         uuid.UUID       `json:"id"`
	Day        string          `json:"day"`
	CategoryID uuid.UUID       `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Applies    bool            `json:"applies"`
}

// BonusLineDTO represents one captured bonus cell
type BonusLineDTO struct {
	ID         uuid.UUID       `json:"id"`
	Day        string          `json:"day"`
	CategoryID uuid.UUID       `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Quantity   int             `json:"quantity"`
}

// ReportDTO represents an expense report returned to callers
type ReportDTO struct {
	ID              uuid.UUID        `json:"id"`
	OwnerID         uuid.UUID        `json:"owner_id"`
	PeriodID        uuid.UUID        `json:"period_id"`
	Status          string           `json:"status"`
	ExpenseSubtotal decimal.Decimal  `json:"expense_subtotal"`
	BonusSubtotal   decimal.Decimal  `json:"bonus_subtotal"`
	GrandTotal      decimal.Decimal  `json:"grand_total"`
	ValidatorID     *uuid.UUID       `json:"validator_id,omitempty"`
	ValidatedAt     *time.Time       `json:"validated_at,omitempty"`
	Lines           []ExpenseLineDTO `json:"lines"`
	BonusLines      []BonusLineDTO   `json:"bonus_lines"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ReportListResult represents a paginated report list
type ReportListResult struct {
	Reports    []ReportDTO `json:"reports"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// ExpenseCellInput carries the desired state of one expense cell
type ExpenseCellInput struct {
	Day        string
	CategoryID uuid.UUID
	Checked    bool
}

// BonusCellInput carries the desired quantity of one bonus cell
type BonusCellInput struct {
	Day        string
	CategoryID uuid.UUID
	Quantity   int
}

// SaveDraftInput contains the full desired grid state of a draft save.
// Cells not listed keep their current state.
type SaveDraftInput struct {
	ReportID     uuid.UUID
	ExpenseCells []ExpenseCellInput
	BonusCells   []BonusCellInput
}

// GridCategoryDTO describes one category column of the grid
type GridCategoryDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	DisplayOrder  int             `json:"display_order"`
}

// ExpenseCellDTO represents one expense cell of the grid view
type ExpenseCellDTO struct {
	Day        string          `json:"day"`
	CategoryID uuid.UUID       `json:"category_id"`
	Checked    bool            `json:"checked"`
	Amount     decimal.Decimal `json:"amount"`
}

// BonusCellDTO represents one bonus cell of the grid view
type BonusCellDTO struct {
	Day        string          `json:"day"`
	CategoryID uuid.UUID       `json:"category_id"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}

// TotalsDTO represents report totals
type TotalsDTO struct {
	ExpenseSubtotal decimal.Decimal `json:"expense_subtotal"`
	BonusSubtotal   decimal.Decimal `json:"bonus_subtotal"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// GridDTO is the per-day, per-category view of a report
type GridDTO struct {
	ReportID     uuid.UUID         `json:"report_id"`
	PeriodID     uuid.UUID         `json:"period_id"`
	Status       string            `json:"status"`
	Days         []string          `json:"days"`
	Categories   []GridCategoryDTO `json:"categories"`
	ExpenseCells []ExpenseCellDTO  `json:"expense_cells"`
	BonusCells   []BonusCellDTO    `json:"bonus_cells"`
	Totals       TotalsDTO         `json:"totals"`
}

// CorrectionInput carries one field change of a correction pass
type CorrectionInput struct {
	Field    string
	OldValue string
	NewValue string
	Note     string
	// Optional cell reference; both must be set to target a line
	Day        string
	CategoryID uuid.UUID
}

// CorrectInput contains the input for correcting a report
type CorrectInput struct {
	ReportID    uuid.UUID
	Corrections []CorrectionInput
}

// CorrectionDTO represents one recorded correction
type CorrectionDTO struct {
	ID         uuid.UUID  `json:"id"`
	ReportID   uuid.UUID  `json:"report_id"`
	Field      string     `json:"field"`
	OldValue   string     `json:"old_value"`
	NewValue   string     `json:"new_value"`
	Note       string     `json:"note,omitempty"`
	AuthorID   uuid.UUID  `json:"author_id"`
	Day        string     `json:"day,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OpenDisputeInput contains the input for disputing a corrected report
type OpenDisputeInput struct {
	ReportID uuid.UUID
	Message  string
}

// DisputeDTO represents a dispute returned to callers
type DisputeDTO struct {
	ID         uuid.UUID  `json:"id"`
	ReportID   uuid.UUID  `json:"report_id"`
	RaisedBy   uuid.UUID  `json:"raised_by"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	ResolvedBy *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toPeriodDTO(p *expense.ExpensePeriod) *PeriodDTO {
	return &PeriodDTO{
		ID:        p.ID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toCategoryDTO(c *expense.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:            c.ID,
		Name:          c.Name,
		DefaultAmount: c.DefaultAmount,
		Applicability: c.Applicability.String(),
		Kind:          c.Kind.String(),
		DisplayOrder:  c.DisplayOrder,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toReportDTO(r *expense.ExpenseReport) *ReportDTO {
	lines := make([]ExpenseLineDTO, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = ExpenseLineDTO{
			ID:         line.ID,
			Day:        line.Day,
			CategoryID: line.CategoryID,
			Amount:     line.Amount,
			Applies:    line.Applies,
		}
	}

	bonusLines := make([]BonusLineDTO, len(r.BonusLines))
	for i, line := range r.BonusLines {
		bonusLines[i] = BonusLineDTO{
			ID:         line.ID,
			Day:        line.Day,
			CategoryID: line.CategoryID,
			Amount:     line.Amount,
			Quantity:   line.Quantity,
		}
	}

	return &ReportDTO{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		PeriodID:        r.PeriodID,
		Status:          r.Status.String(),
		ExpenseSubtotal: r.ExpenseSubtotal,
		BonusSubtotal:   r.BonusSubtotal,
		GrandTotal:      r.GrandTotal,
		ValidatorID:     r.ValidatorID,
		ValidatedAt:     r.ValidatedAt,
		Lines:           lines,
		BonusLines:      bonusLines,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toCorrectionDTO(c *expense.Correction) *CorrectionDTO {
	dto := &CorrectionDTO{
		ID:        c.ID,
		ReportID:  c.ReportID,
		Field:     c.Field,
		OldValue:  c.OldValue,
		NewValue:  c.NewValue,
		Note:      c.Note,
		AuthorID:  c.AuthorID,
		Day:       c.Day,
		CreatedAt: c.CreatedAt,
	}
	if c.CategoryID != uuid.Nil {
		categoryID := c.CategoryID
		dto.CategoryID = &categoryID
	}
	return dto
}

func toDisputeDTO(d *expense.Dispute) *DisputeDTO {
	return &DisputeDTO{
		ID:         d.ID,
		ReportID:   d.ReportID,
		RaisedBy:   d.RaisedBy,
		Message:    d.Message,
		Status:     d.Status.String(),
		ResolvedBy: d.ResolvedBy,
		ResolvedAt: d.ResolvedAt,
		CreatedAt:  d.CreatedAt,
	}
}
