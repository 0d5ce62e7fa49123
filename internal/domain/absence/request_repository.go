package absence

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines the interface for absence request persistence
type RequestRepository interface {
	// Create creates a new absence request
	Create(ctx context.Context, request *AbsenceRequest) error

	// Update updates an existing request without status guard
	Update(ctx context.Context, request *AbsenceRequest) error

	// SaveDecision persists a decided request with a conditional update on
	// (id, pending). Returns CONCURRENT_MODIFICATION when no row matched.
	SaveDecision(ctx context.Context, request *AbsenceRequest) error

	// Delete deletes a request by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AbsenceRequest, error)

	// FindAll returns requests matching the filter with pagination
	FindAll(ctx context.Context, filter RequestFilter) ([]*AbsenceRequest, int64, error)

	// Count returns the total number of requests
	Count(ctx context.Context) (int64, error)
}

// RequestFilter contains filter options for querying absence requests
type RequestFilter struct {
	// Filter by requester
	RequesterID *uuid.UUID

	// Filter by status
	Status *RequestStatus

	// Filter by type
	Type *AbsenceType

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewRequestFilter creates a new RequestFilter with default values
func NewRequestFilter() RequestFilter {
	return RequestFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithRequester sets the requester filter
func (f RequestFilter) WithRequester(requesterID uuid.UUID) RequestFilter {
	f.RequesterID = &requesterID
	return f
}

// WithStatus sets the status filter
func (f RequestFilter) WithStatus(status RequestStatus) RequestFilter {
	f.Status = &status
	return f
}

// WithType sets the type filter
func (f RequestFilter) WithType(absenceType AbsenceType) RequestFilter {
	f.Type = &absenceType
	return f
}

// WithPagination sets pagination parameters
func (f RequestFilter) WithPagination(page, pageSize int) RequestFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f RequestFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f RequestFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
