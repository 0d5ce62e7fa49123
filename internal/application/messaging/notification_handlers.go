package messaging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/absence"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/messaging"
	"github.com/hrportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AbsenceNotificationHandler turns absence decisions into notification
// rows for the requester
type AbsenceNotificationHandler struct {
	notificationRepo messaging.NotificationRepository
	logger           *zap.Logger
}

// NewAbsenceNotificationHandler creates a new AbsenceNotificationHandler
func NewAbsenceNotificationHandler(notificationRepo messaging.NotificationRepository, logger *zap.Logger) *AbsenceNotificationHandler {
	return &AbsenceNotificationHandler{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *AbsenceNotificationHandler) EventTypes() []string {
	return []string{
		absence.EventTypeAbsenceApproved,
		absence.EventTypeAbsenceRejected,
	}
}

// Handle processes an absence decision event
func (h *AbsenceNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *absence.AbsenceApprovedEvent:
		return h.notify(ctx, e.RequesterID, messaging.NotificationAbsenceApproved,
			"Absence request approved",
			"Your absence request has been approved.",
			e.RequestID)
	case *absence.AbsenceRejectedEvent:
		body := "Your absence request has been rejected."
		if e.Reason != "" {
			body = fmt.Sprintf("Your absence request has been rejected: %s", e.Reason)
		}
		return h.notify(ctx, e.RequesterID, messaging.NotificationAbsenceRejected,
			"Absence request rejected", body, e.RequestID)
	}
	return nil
}

func (h *AbsenceNotificationHandler) notify(ctx context.Context, recipientID uuid.UUID, kind messaging.NotificationKind, subject, body string, referenceID uuid.UUID) error {
	notification, err := messaging.NewNotification(recipientID, kind, subject, body, referenceID)
	if err != nil {
		return err
	}
	if err := h.notificationRepo.Create(ctx, notification); err != nil {
		h.logger.Error("failed to create notification",
			zap.Error(err),
			zap.String("kind", kind.String()),
			zap.String("recipient_id", recipientID.String()))
		return err
	}
	return nil
}

// ReportNotificationHandler turns expense workflow events into
// notification rows. Owner-facing events go to the report owner;
// submissions and disputes fan out to every active admin and office
// profile.
type ReportNotificationHandler struct {
	notificationRepo messaging.NotificationRepository
	profileRepo      identity.ProfileRepository
	logger           *zap.Logger
}

// NewReportNotificationHandler creates a new ReportNotificationHandler
func NewReportNotificationHandler(
	notificationRepo messaging.NotificationRepository,
	profileRepo identity.ProfileRepository,
	logger *zap.Logger,
) *ReportNotificationHandler {
	return &ReportNotificationHandler{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ReportNotificationHandler) EventTypes() []string {
	return []string{
		expense.EventTypeReportSubmitted,
		expense.EventTypeReportValidated,
		expense.EventTypeReportCorrected,
		expense.EventTypeDisputeOpened,
		expense.EventTypeDisputeResolved,
	}
}

// Handle processes an expense workflow event
func (h *ReportNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *expense.ReportSubmittedEvent:
		return h.notifyDeciders(ctx, messaging.NotificationReportSubmitted,
			"Expense report submitted",
			fmt.Sprintf("An expense report totalling %s is waiting for validation.", e.GrandTotal.StringFixed(2)),
			e.ReportID)
	case *expense.ReportValidatedEvent:
		return h.notify(ctx, e.OwnerID, messaging.NotificationReportValidated,
			"Expense report validated",
			"Your expense report has been validated.",
			e.ReportID)
	case *expense.ReportCorrectedEvent:
		return h.notify(ctx, e.OwnerID, messaging.NotificationReportCorrected,
			"Expense report corrected",
			fmt.Sprintf("Your expense report was corrected (%d change(s)). Review the corrections and dispute them if needed.", e.CorrectionCount),
			e.ReportID)
	case *expense.DisputeOpenedEvent:
		return h.notifyDeciders(ctx, messaging.NotificationDisputeOpened,
			"Expense report disputed",
			"A driver disputed the corrections on an expense report.",
			e.ReportID)
	case *expense.DisputeResolvedEvent:
		return h.notify(ctx, e.RaisedBy, messaging.NotificationDisputeResolved,
			"Dispute resolved",
			"Your dispute has been reviewed and closed.",
			e.ReportID)
	}
	return nil
}

func (h *ReportNotificationHandler) notify(ctx context.Context, recipientID uuid.UUID, kind messaging.NotificationKind, subject, body string, referenceID uuid.UUID) error {
	notification, err := messaging.NewNotification(recipientID, kind, subject, body, referenceID)
	if err != nil {
		return err
	}
	if err := h.notificationRepo.Create(ctx, notification); err != nil {
		h.logger.Error("failed to create notification",
			zap.Error(err),
			zap.String("kind", kind.String()),
			zap.String("recipient_id", recipientID.String()))
		return err
	}
	return nil
}

func (h *ReportNotificationHandler) notifyDeciders(ctx context.Context, kind messaging.NotificationKind, subject, body string, referenceID uuid.UUID) error {
	deciders, err := h.activeDeciders(ctx)
	if err != nil {
		return err
	}

	for _, decider := range deciders {
		if err := h.notify(ctx, decider.ID, kind, subject, body, referenceID); err != nil {
			// keep fanning out; one failed row must not drop the rest
			h.logger.Warn("skipping decider notification",
				zap.Error(err),
				zap.String("recipient_id", decider.ID.String()))
		}
	}
	return nil
}

func (h *ReportNotificationHandler) activeDeciders(ctx context.Context) ([]*identity.Profile, error) {
	deciders := make([]*identity.Profile, 0)
	for _, role := range []identity.Role{identity.RoleAdmin, identity.RoleOffice} {
		filter := identity.NewProfileFilter().
			WithRole(role).
			WithActive(true).
			WithPagination(1, 100)
		profiles, _, err := h.profileRepo.FindAll(ctx, filter)
		if err != nil {
			h.logger.Error("failed to load deciders", zap.Error(err), zap.String("role", string(role)))
			return nil, err
		}
		deciders = append(deciders, profiles...)
	}
	return deciders, nil
}
