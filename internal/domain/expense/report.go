package expense

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportStatus represents the status of an expense report
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusValidated ReportStatus = "validated"
	ReportStatusCorrected ReportStatus = "corrected"
)

// IsValid checks if the status is a valid ReportStatus
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusSubmitted, ReportStatusValidated, ReportStatusCorrected:
		return true
	}
	return false
}

// String returns the string representation of ReportStatus
func (s ReportStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Nothing ever goes back to draft or submitted.
func (s ReportStatus) CanTransitionTo(target ReportStatus) bool {
	switch s {
	case ReportStatusDraft:
		return target == ReportStatusSubmitted
	case ReportStatusSubmitted:
		return target == ReportStatusValidated || target == ReportStatusCorrected
	case ReportStatusValidated:
		return target == ReportStatusCorrected
	case ReportStatusCorrected:
		return false
	}
	return false
}

// ExpenseReport is one driver's allowance declaration for one period.
// A single report exists per (owner, period); uniqueness is enforced
// at the persistence layer.
type ExpenseReport struct {
	shared.BaseAggregateRoot
	OwnerID         uuid.UUID
	PeriodID        uuid.UUID
	Status          ReportStatus
	ExpenseSubtotal decimal.Decimal
	BonusSubtotal   decimal.Decimal
	GrandTotal      decimal.Decimal
	ValidatorID     *uuid.UUID
	ValidatedAt     *time.Time
	Lines           []ExpenseLine
	BonusLines      []BonusLine
}

// NewExpenseReport creates a new draft report for an owner and period
func NewExpenseReport(ownerID, periodID uuid.UUID) (*ExpenseReport, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if periodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period ID cannot be empty")
	}

	return &ExpenseReport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		PeriodID:          periodID,
		Status:            ReportStatusDraft,
		ExpenseSubtotal:   decimal.Zero,
		BonusSubtotal:     decimal.Zero,
		GrandTotal:        decimal.Zero,
		Lines:             make([]ExpenseLine, 0),
		BonusLines:        make([]BonusLine, 0),
	}, nil
}

// SaveDraft replaces the line set from the grid and refreshes totals.
// Never changes status; only permitted while the report is a draft.
func (r *ExpenseReport) SaveDraft(actor identity.Actor, grid *Grid) error {
	if !actor.Is(r.OwnerID) {
		return shared.ErrForbidden
	}
	if r.Status != ReportStatusDraft {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot edit lines of a report in %s status", r.Status))
	}

	r.Lines = grid.ExpenseLines(r.ID)
	r.BonusLines = grid.BonusLines(r.ID)
	r.recomputeTotals()
	r.UpdatedAt = time.Now()

	return nil
}

// Submit transitions the report from draft to submitted. Owner only.
// Totals are recomputed authoritatively from the line set; the
// persisted values are never client-supplied.
func (r *ExpenseReport) Submit(actor identity.Actor) error {
	if !actor.Is(r.OwnerID) {
		return shared.ErrForbidden
	}
	if !r.Status.CanTransitionTo(ReportStatusSubmitted) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot submit report in %s status", r.Status))
	}

	r.recomputeTotals()
	now := time.Now()
	r.Status = ReportStatusSubmitted
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReportSubmittedEvent(r))

	return nil
}

// Validate transitions the report from submitted to validated and
// stamps the validator. Admin/office only.
func (r *ExpenseReport) Validate(actor identity.Actor) error {
	if !actor.CanDecide() {
		return shared.ErrForbidden
	}
	if !r.Status.CanTransitionTo(ReportStatusValidated) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot validate report in %s status", r.Status))
	}

	now := time.Now()
	validatorID := actor.ProfileID
	r.Status = ReportStatusValidated
	r.ValidatorID = &validatorID
	r.ValidatedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReportValidatedEvent(r))

	return nil
}

// Correct transitions the report to corrected, recording at least one
// correction. Corrections carrying a cell reference mutate the
// underlying line and totals are recomputed from the resulting line
// set; purely narrative corrections leave totals untouched. The
// caller persists the corrections atomically with the status change.
func (r *ExpenseReport) Correct(actor identity.Actor, corrections []*Correction) error {
	if !actor.CanDecide() {
		return shared.ErrForbidden
	}
	if !r.Status.CanTransitionTo(ReportStatusCorrected) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot correct report in %s status", r.Status))
	}
	if len(corrections) == 0 {
		return shared.ErrEmptyCorrection
	}

	mutated := false
	for _, correction := range corrections {
		if correction.HasCellReference() {
			if err := r.applyCellCorrection(correction); err != nil {
				return err
			}
			mutated = true
		}
	}
	if mutated {
		r.recomputeTotals()
	}

	r.Status = ReportStatusCorrected
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReportCorrectedEvent(r, len(corrections)))

	return nil
}

// OpenDispute creates an open dispute on the report. Owner only, only
// while the report is corrected, and only when no other dispute is
// open. The caller supplies hasOpenDispute from the dispute store.
func (r *ExpenseReport) OpenDispute(actor identity.Actor, message string, hasOpenDispute bool) (*Dispute, error) {
	if !actor.Is(r.OwnerID) {
		return nil, shared.ErrForbidden
	}
	if r.Status != ReportStatusCorrected {
		return nil, shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot dispute report in %s status", r.Status))
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.ErrEmptyDisputeMessage
	}
	if hasOpenDispute {
		return nil, shared.ErrDuplicateDispute
	}

	dispute := newDispute(r.ID, actor.ProfileID, strings.TrimSpace(message))
	r.AddDomainEvent(NewDisputeOpenedEvent(r, dispute))

	return dispute, nil
}

// IsOwnedBy returns true if the report belongs to the given profile
func (r *ExpenseReport) IsOwnedBy(profileID uuid.UUID) bool {
	return r.OwnerID == profileID
}

// applyCellCorrection mutates the line the correction references.
// The "quantity" field targets a bonus line quantity; anything else
// sets the line's captured amount.
func (r *ExpenseReport) applyCellCorrection(correction *Correction) error {
	if strings.EqualFold(correction.Field, "quantity") {
		quantity, err := strconv.Atoi(correction.NewValue)
		if err != nil || quantity < 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Corrected quantity must be a non-negative integer")
		}
		for idx := range r.BonusLines {
			line := &r.BonusLines[idx]
			if line.Day == correction.Day && line.CategoryID == correction.CategoryID {
				if quantity == 0 {
					r.BonusLines = append(r.BonusLines[:idx], r.BonusLines[idx+1:]...)
				} else {
					line.Quantity = quantity
					line.UpdatedAt = time.Now()
				}
				return nil
			}
		}
		return shared.NewDomainError("LINE_NOT_FOUND", "No bonus line matches the corrected cell")
	}

	amount, err := decimal.NewFromString(correction.NewValue)
	if err != nil || amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Corrected amount must be a non-negative number")
	}
	for idx := range r.Lines {
		line := &r.Lines[idx]
		if line.Day == correction.Day && line.CategoryID == correction.CategoryID {
			line.Amount = amount
			line.UpdatedAt = time.Now()
			return nil
		}
	}
	for idx := range r.BonusLines {
		line := &r.BonusLines[idx]
		if line.Day == correction.Day && line.CategoryID == correction.CategoryID {
			line.Amount = amount
			line.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "No line matches the corrected cell")
}

// recomputeTotals recomputes the subtotals from the full line set
func (r *ExpenseReport) recomputeTotals() {
	totals := ComputeTotals(r.Lines, r.BonusLines)
	r.ExpenseSubtotal = totals.ExpenseSubtotal
	r.BonusSubtotal = totals.BonusSubtotal
	r.GrandTotal = totals.GrandTotal
}
