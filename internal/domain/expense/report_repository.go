package expense

import (
	"context"

	"github.com/google/uuid"
)

// ReportRepository defines the interface for expense report persistence.
// Status transitions persist through conditional updates on
// (id, expected status): zero rows affected surfaces as
// CONCURRENT_MODIFICATION and the caller reloads.
type ReportRepository interface {
	// Create creates a new report. Fails with ALREADY_EXISTS when the
	// owner already has a report for the period.
	Create(ctx context.Context, report *ExpenseReport) error

	// SaveDraft replaces the report's line set and totals without
	// touching the status
	SaveDraft(ctx context.Context, report *ExpenseReport) error

	// SaveTransition persists a status change conditionally on the
	// expected prior status, together with the refreshed totals and
	// line set
	SaveTransition(ctx context.Context, report *ExpenseReport, expected ReportStatus) error

	// SaveCorrection persists the corrected report and its correction
	// rows in a single transaction, conditionally on the expected
	// prior status
	SaveCorrection(ctx context.Context, report *ExpenseReport, expected ReportStatus, corrections []*Correction) error

	// FindByID finds a report by ID with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseReport, error)

	// FindByOwnerAndPeriod finds the owner's report for a period
	FindByOwnerAndPeriod(ctx context.Context, ownerID, periodID uuid.UUID) (*ExpenseReport, error)

	// FindAll returns reports matching the filter with pagination
	FindAll(ctx context.Context, filter ReportFilter) ([]*ExpenseReport, int64, error)

	// ListCorrections returns the append-only correction history of a
	// report, oldest first
	ListCorrections(ctx context.Context, reportID uuid.UUID) ([]*Correction, error)

	// Count returns the total number of reports
	Count(ctx context.Context) (int64, error)
}

// DisputeRepository defines the interface for dispute persistence
type DisputeRepository interface {
	// Create creates a new dispute
	Create(ctx context.Context, dispute *Dispute) error

	// SaveResolution persists a resolved dispute with a conditional
	// update on (id, open). Returns CONCURRENT_MODIFICATION when no
	// row matched.
	SaveResolution(ctx context.Context, dispute *Dispute) error

	// FindByID finds a dispute by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Dispute, error)

	// FindByReport returns all disputes of a report, newest first
	FindByReport(ctx context.Context, reportID uuid.UUID) ([]*Dispute, error)

	// HasOpenDispute reports whether the report carries an open dispute
	HasOpenDispute(ctx context.Context, reportID uuid.UUID) (bool, error)
}

// ReportFilter contains filter options for querying expense reports
type ReportFilter struct {
	// Filter by owner
	OwnerID *uuid.UUID

	// Filter by period
	PeriodID *uuid.UUID

	// Filter by status
	Status *ReportStatus

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewReportFilter creates a new ReportFilter with default values
func NewReportFilter() ReportFilter {
	return ReportFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithOwner sets the owner filter
func (f ReportFilter) WithOwner(ownerID uuid.UUID) ReportFilter {
	f.OwnerID = &ownerID
	return f
}

// WithPeriod sets the period filter
func (f ReportFilter) WithPeriod(periodID uuid.UUID) ReportFilter {
	f.PeriodID = &periodID
	return f
}

// WithStatus sets the status filter
func (f ReportFilter) WithStatus(status ReportStatus) ReportFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f ReportFilter) WithPagination(page, pageSize int) ReportFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f ReportFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ReportFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
