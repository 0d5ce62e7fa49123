package absence

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/absence"
)

// DateRangeInput carries a requested absence range
type DateRangeInput struct {
	LastWorkedDay time.Time
	ReturnDay     time.Time
}

// CreateRequestInput contains the input for filing an absence request
type CreateRequestInput struct {
	Type         absence.AbsenceType
	Range        DateRangeInput
	Alternatives []DateRangeInput
	Comment      string
	LastMinute   bool
}

// RejectInput contains the input for rejecting a request
type RejectInput struct {
	RequestID uuid.UUID
	Reason    string
}

// DateRangeDTO represents an absence date range
type DateRangeDTO struct {
	LastWorkedDay time.Time `json:"last_worked_day"`
	ReturnDay     time.Time `json:"return_day"`
}

// RequestDTO represents an absence request returned to callers
type RequestDTO struct {
	ID              uuid.UUID      `json:"id"`
	RequesterID     uuid.UUID      `json:"requester_id"`
	Type            string         `json:"type"`
	Range           DateRangeDTO   `json:"range"`
	Alternatives    []DateRangeDTO `json:"alternatives,omitempty"`
	Comment         string         `json:"comment,omitempty"`
	Status          string         `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ApproverID      *uuid.UUID     `json:"approver_id,omitempty"`
	DecidedAt       *time.Time     `json:"decided_at,omitempty"`
	LastMinute      bool           `json:"last_minute"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// RequestListResult represents a paginated request list
type RequestListResult struct {
	Requests   []RequestDTO `json:"requests"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

func toRequestDTO(r *absence.AbsenceRequest) *RequestDTO {
	alternatives := make([]DateRangeDTO, len(r.Alternatives))
	for i, alt := range r.Alternatives {
		alternatives[i] = DateRangeDTO{LastWorkedDay: alt.LastWorkedDay, ReturnDay: alt.ReturnDay}
	}

	return &RequestDTO{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Type:        r.Type.String(),
		Range: DateRangeDTO{
			LastWorkedDay: r.Range.LastWorkedDay,
			ReturnDay:     r.Range.ReturnDay,
		},
		Alternatives:    alternatives,
		Comment:         r.Comment,
		Status:          r.Status.String(),
		RejectionReason: r.RejectionReason,
		ApproverID:      r.ApproverID,
		DecidedAt:       r.DecidedAt,
		LastMinute:      r.LastMinute,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
