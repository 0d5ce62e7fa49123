package expense

import (
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeExpenseReport = "ExpenseReport"
	AggregateTypeDispute       = "Dispute"
)

// Event type constants
const (
	EventTypeReportSubmitted = "ExpenseReportSubmitted"
	EventTypeReportValidated = "ExpenseReportValidated"
	EventTypeReportCorrected = "ExpenseReportCorrected"
	EventTypeDisputeOpened   = "DisputeOpened"
	EventTypeDisputeResolved = "DisputeResolved"
)

// ReportSubmittedEvent is raised when an owner submits a report
type ReportSubmittedEvent struct {
	shared.BaseDomainEvent
	ReportID   uuid.UUID       `json:"report_id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	PeriodID   uuid.UUID       `json:"period_id"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewReportSubmittedEvent creates a new ReportSubmittedEvent
func NewReportSubmittedEvent(report *ExpenseReport) *ReportSubmittedEvent {
	return &ReportSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportSubmitted, AggregateTypeExpenseReport, report.ID),
		ReportID:        report.ID,
		OwnerID:         report.OwnerID,
		PeriodID:        report.PeriodID,
		GrandTotal:      report.GrandTotal,
	}
}

// EventType returns the event type name
func (e *ReportSubmittedEvent) EventType() string {
	return EventTypeReportSubmitted
}

// ReportValidatedEvent is raised when an admin validates a report
type ReportValidatedEvent struct {
	shared.BaseDomainEvent
	ReportID    uuid.UUID `json:"report_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	ValidatorID uuid.UUID `json:"validator_id"`
}

// NewReportValidatedEvent creates a new ReportValidatedEvent
func NewReportValidatedEvent(report *ExpenseReport) *ReportValidatedEvent {
	event := &ReportValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportValidated, AggregateTypeExpenseReport, report.ID),
		ReportID:        report.ID,
		OwnerID:         report.OwnerID,
	}
	if report.ValidatorID != nil {
		event.ValidatorID = *report.ValidatorID
	}
	return event
}

// EventType returns the event type name
func (e *ReportValidatedEvent) EventType() string {
	return EventTypeReportValidated
}

// ReportCorrectedEvent is raised when an admin corrects a report
type ReportCorrectedEvent struct {
	shared.BaseDomainEvent
	ReportID        uuid.UUID `json:"report_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	CorrectionCount int       `json:"correction_count"`
}

// NewReportCorrectedEvent creates a new ReportCorrectedEvent
func NewReportCorrectedEvent(report *ExpenseReport, correctionCount int) *ReportCorrectedEvent {
	return &ReportCorrectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportCorrected, AggregateTypeExpenseReport, report.ID),
		ReportID:        report.ID,
		OwnerID:         report.OwnerID,
		CorrectionCount: correctionCount,
	}
}

// EventType returns the event type name
func (e *ReportCorrectedEvent) EventType() string {
	return EventTypeReportCorrected
}

// DisputeOpenedEvent is raised when an owner disputes a corrected report
type DisputeOpenedEvent struct {
	shared.BaseDomainEvent
	DisputeID uuid.UUID `json:"dispute_id"`
	ReportID  uuid.UUID `json:"report_id"`
	RaisedBy  uuid.UUID `json:"raised_by"`
}

// NewDisputeOpenedEvent creates a new DisputeOpenedEvent
func NewDisputeOpenedEvent(report *ExpenseReport, dispute *Dispute) *DisputeOpenedEvent {
	return &DisputeOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisputeOpened, AggregateTypeExpenseReport, report.ID),
		DisputeID:       dispute.ID,
		ReportID:        report.ID,
		RaisedBy:        dispute.RaisedBy,
	}
}

// EventType returns the event type name
func (e *DisputeOpenedEvent) EventType() string {
	return EventTypeDisputeOpened
}

// DisputeResolvedEvent is raised when an admin resolves a dispute
type DisputeResolvedEvent struct {
	shared.BaseDomainEvent
	DisputeID  uuid.UUID `json:"dispute_id"`
	ReportID   uuid.UUID `json:"report_id"`
	RaisedBy   uuid.UUID `json:"raised_by"`
	ResolvedBy uuid.UUID `json:"resolved_by"`
}

// NewDisputeResolvedEvent creates a new DisputeResolvedEvent
func NewDisputeResolvedEvent(dispute *Dispute) *DisputeResolvedEvent {
	event := &DisputeResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisputeResolved, AggregateTypeDispute, dispute.ID),
		DisputeID:       dispute.ID,
		ReportID:        dispute.ReportID,
		RaisedBy:        dispute.RaisedBy,
	}
	if dispute.ResolvedBy != nil {
		event.ResolvedBy = *dispute.ResolvedBy
	}
	return event
}

// EventType returns the event type name
func (e *DisputeResolvedEvent) EventType() string {
	return EventTypeDisputeResolved
}
