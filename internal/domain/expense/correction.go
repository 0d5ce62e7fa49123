package expense

import (
	"strings"
	"time"

	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Correction is an append-only audit row recording one field change an
// admin applied to a report. It is never edited or deleted. When a
// correction carries a cell reference (day + category), the underlying
// line is mutated in the same transaction and totals are recomputed;
// without a reference it is purely narrative.
type Correction struct {
	ID         uuid.UUID
	ReportID   uuid.UUID
	Field      string
	OldValue   string
	NewValue   string
	Note       string
	AuthorID   uuid.UUID
	Day        string    // optional cell reference
	CategoryID uuid.UUID // optional cell reference
	CreatedAt  time.Time
}

// NewCorrection creates a correction carrying exactly one field change
func NewCorrection(reportID, authorID uuid.UUID, field, oldValue, newValue, note string) (*Correction, error) {
	if reportID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REPORT", "Report ID cannot be empty")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author ID cannot be empty")
	}
	if strings.TrimSpace(field) == "" || oldValue == newValue {
		return nil, shared.ErrEmptyCorrection
	}

	return &Correction{
		ID:        uuid.New(),
		ReportID:  reportID,
		Field:     strings.TrimSpace(field),
		OldValue:  oldValue,
		NewValue:  newValue,
		Note:      note,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}, nil
}

// WithCellReference attaches the (day, category) cell the correction
// mutates. The report applies the new value to that line when the
// correction is recorded.
func (c *Correction) WithCellReference(day string, categoryID uuid.UUID) *Correction {
	c.Day = day
	c.CategoryID = categoryID
	return c
}

// HasCellReference returns true if the correction targets a line cell
func (c *Correction) HasCellReference() bool {
	return c.Day != "" && c.CategoryID != uuid.Nil
}
