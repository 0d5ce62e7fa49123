package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// ExpensePeriodModel is the persistence model for the ExpensePeriod aggregate.
type ExpensePeriodModel struct {
	AggregateModel
	StartDate time.Time            `gorm:"not null;index"`
	EndDate   time.Time            `gorm:"not null"`
	Status    expense.PeriodStatus `gorm:"type:varchar(20);not null;default:'open';index"`
}

// TableName returns the table name for GORM
func (ExpensePeriodModel) TableName() string {
	return "expense_periods"
}

// ToDomain converts the persistence model to a domain ExpensePeriod.
func (m *ExpensePeriodModel) ToDomain() *expense.ExpensePeriod {
	return &expense.ExpensePeriod{
		BaseAggregateRoot: m.ToAggregateRoot(),
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain ExpensePeriod.
func (m *ExpensePeriodModel) FromDomain(p *expense.ExpensePeriod) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.Status = p.Status
}

// ExpensePeriodModelFromDomain creates a new persistence model from a domain ExpensePeriod.
func ExpensePeriodModelFromDomain(p *expense.ExpensePeriod) *ExpensePeriodModel {
	m := &ExpensePeriodModel{}
	m.FromDomain(p)
	return m
}

// CategoryModel is the persistence model for the Category aggregate.
type CategoryModel struct {
	AggregateModel
	Name          string                `gorm:"type:varchar(200);not null"`
	DefaultAmount decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Applicability expense.Applicability `gorm:"type:varchar(20);not null;default:'all'"`
	Kind          expense.CategoryKind  `gorm:"type:varchar(20);not null;default:'expense'"`
	DisplayOrder  int                   `gorm:"not null;default:0"`
	Active        bool                  `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() *expense.Category {
	return &expense.Category{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		DefaultAmount:     m.DefaultAmount,
		Applicability:     m.Applicability,
		Kind:              m.Kind,
		DisplayOrder:      m.DisplayOrder,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Category.
func (m *CategoryModel) FromDomain(c *expense.Category) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.DefaultAmount = c.DefaultAmount
	m.Applicability = c.Applicability
	m.Kind = c.Kind
	m.DisplayOrder = c.DisplayOrder
	m.Active = c.Active
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *expense.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ExpenseReportModel is the persistence model for the ExpenseReport aggregate.
type ExpenseReportModel struct {
	AggregateModel
	OwnerID         uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_reports_owner_period"`
	PeriodID        uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_reports_owner_period"`
	Status          expense.ReportStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	ExpenseSubtotal decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	BonusSubtotal   decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	GrandTotal      decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	ValidatorID     *uuid.UUID           `gorm:"type:uuid"`
	ValidatedAt     *time.Time

	Lines      []ExpenseLineModel `gorm:"foreignKey:ReportID"`
	BonusLines []BonusLineModel   `gorm:"foreignKey:ReportID"`
}

// TableName returns the table name for GORM
func (ExpenseReportModel) TableName() string {
	return "expense_reports"
}

// ExpenseLineModel stores one checked expense cell of a report grid.
type ExpenseLineModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReportID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Day        string          `gorm:"type:varchar(10);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Applies    bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseLineModel) TableName() string {
	return "expense_lines"
}

// BonusLineModel stores one positive bonus cell of a report grid.
type BonusLineModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReportID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Day        string          `gorm:"type:varchar(10);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity   int             `gorm:"not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BonusLineModel) TableName() string {
	return "bonus_lines"
}

// ToDomain converts the persistence model to a domain ExpenseReport.
func (m *ExpenseReportModel) ToDomain() *expense.ExpenseReport {
	lines := make([]expense.ExpenseLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = expense.ExpenseLine{
			ID:         l.ID,
			ReportID:   l.ReportID,
			Day:        l.Day,
			CategoryID: l.CategoryID,
			Amount:     l.Amount,
			Applies:    l.Applies,
			CreatedAt:  l.CreatedAt,
			UpdatedAt:  l.UpdatedAt,
		}
	}

	bonusLines := make([]expense.BonusLine, len(m.BonusLines))
	for i, l := range m.BonusLines {
		bonusLines[i] = expense.BonusLine{
			ID:         l.ID,
			ReportID:   l.ReportID,
			Day:        l.Day,
			CategoryID: l.CategoryID,
			Amount:     l.Amount,
			Quantity:   l.Quantity,
			CreatedAt:  l.CreatedAt,
			UpdatedAt:  l.UpdatedAt,
		}
	}

	return &expense.ExpenseReport{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OwnerID:           m.OwnerID,
		PeriodID:          m.PeriodID,
		Status:            m.Status,
		ExpenseSubtotal:   m.ExpenseSubtotal,
		BonusSubtotal:     m.BonusSubtotal,
		GrandTotal:        m.GrandTotal,
		ValidatorID:       m.ValidatorID,
		ValidatedAt:       m.ValidatedAt,
		Lines:             lines,
		BonusLines:        bonusLines,
	}
}

// FromDomain populates the persistence model from a domain ExpenseReport.
func (m *ExpenseReportModel) FromDomain(r *expense.ExpenseReport) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.OwnerID = r.OwnerID
	m.PeriodID = r.PeriodID
	m.Status = r.Status
	m.ExpenseSubtotal = r.ExpenseSubtotal
	m.BonusSubtotal = r.BonusSubtotal
	m.GrandTotal = r.GrandTotal
	m.ValidatorID = r.ValidatorID
	m.ValidatedAt = r.ValidatedAt

	m.Lines = make([]ExpenseLineModel, len(r.Lines))
	for i, l := range r.Lines {
		m.Lines[i] = ExpenseLineModel{
			ID:         l.ID,
			ReportID:   r.ID,
			Day:        l.Day,
			CategoryID: l.CategoryID,
			Amount:     l.Amount,
			Applies:    l.Applies,
			CreatedAt:  l.CreatedAt,
			UpdatedAt:  l.UpdatedAt,
		}
	}

	m.BonusLines = make([]BonusLineModel, len(r.BonusLines))
	for i, l := range r.BonusLines {
		m.BonusLines[i] = BonusLineModel{
			ID:         l.ID,
			ReportID:   r.ID,
			Day:        l.Day,
			CategoryID: l.CategoryID,
			Amount:     l.Amount,
			Quantity:   l.Quantity,
			CreatedAt:  l.CreatedAt,
			UpdatedAt:  l.UpdatedAt,
		}
	}
}

// ExpenseReportModelFromDomain creates a new persistence model from a domain ExpenseReport.
func ExpenseReportModelFromDomain(r *expense.ExpenseReport) *ExpenseReportModel {
	m := &ExpenseReportModel{}
	m.FromDomain(r)
	return m
}

// CorrectionModel is the persistence model for the append-only correction history.
type CorrectionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	ReportID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Field      string     `gorm:"type:varchar(100);not null"`
	OldValue   string     `gorm:"type:text"`
	NewValue   string     `gorm:"type:text"`
	Note       string     `gorm:"type:text"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null"`
	Day        string     `gorm:"type:varchar(10)"`
	CategoryID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CorrectionModel) TableName() string {
	return "report_corrections"
}

// ToDomain converts the persistence model to a domain Correction.
func (m *CorrectionModel) ToDomain() *expense.Correction {
	categoryID := uuid.Nil
	if m.CategoryID != nil {
		categoryID = *m.CategoryID
	}
	return &expense.Correction{
		ID:         m.ID,
		ReportID:   m.ReportID,
		Field:      m.Field,
		OldValue:   m.OldValue,
		NewValue:   m.NewValue,
		Note:       m.Note,
		AuthorID:   m.AuthorID,
		Day:        m.Day,
		CategoryID: categoryID,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Correction.
func (m *CorrectionModel) FromDomain(c *expense.Correction) {
	m.ID = c.ID
	m.ReportID = c.ReportID
	m.Field = c.Field
	m.OldValue = c.OldValue
	m.NewValue = c.NewValue
	m.Note = c.Note
	m.AuthorID = c.AuthorID
	m.Day = c.Day
	if c.CategoryID != uuid.Nil {
		categoryID := c.CategoryID
		m.CategoryID = &categoryID
	}
	m.CreatedAt = c.CreatedAt
}

// CorrectionModelFromDomain creates a new persistence model from a domain Correction.
func CorrectionModelFromDomain(c *expense.Correction) *CorrectionModel {
	m := &CorrectionModel{}
	m.FromDomain(c)
	return m
}

// DisputeModel is the persistence model for the Dispute aggregate.
type DisputeModel struct {
	AggregateModel
	ReportID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	RaisedBy   uuid.UUID             `gorm:"type:uuid;not null"`
	Message    string                `gorm:"type:text;not null"`
	Status     expense.DisputeStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	ResolvedBy *uuid.UUID            `gorm:"type:uuid"`
	ResolvedAt *time.Time
}

// TableName returns the table name for GORM
func (DisputeModel) TableName() string {
	return "report_disputes"
}

// ToDomain converts the persistence model to a domain Dispute.
func (m *DisputeModel) ToDomain() *expense.Dispute {
	return &expense.Dispute{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ReportID:          m.ReportID,
		RaisedBy:          m.RaisedBy,
		Message:           m.Message,
		Status:            m.Status,
		ResolvedBy:        m.ResolvedBy,
		ResolvedAt:        m.ResolvedAt,
	}
}

// FromDomain populates the persistence model from a domain Dispute.
func (m *DisputeModel) FromDomain(d *expense.Dispute) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.ReportID = d.ReportID
	m.RaisedBy = d.RaisedBy
	m.Message = d.Message
	m.Status = d.Status
	m.ResolvedBy = d.ResolvedBy
	m.ResolvedAt = d.ResolvedAt
}

// DisputeModelFromDomain creates a new persistence model from a domain Dispute.
func DisputeModelFromDomain(d *expense.Dispute) *DisputeModel {
	m := &DisputeModel{}
	m.FromDomain(d)
	return m
}
