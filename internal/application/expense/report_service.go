package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService handles the expense report lifecycle: draft editing
// through the grid, submission, validation, corrections and disputes
type ReportService struct {
	reportRepo     expense.ReportRepository
	periodRepo     expense.PeriodRepository
	categoryRepo   expense.CategoryRepository
	disputeRepo    expense.DisputeRepository
	profileRepo    identity.ProfileRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo expense.ReportRepository,
	periodRepo expense.PeriodRepository,
	categoryRepo expense.CategoryRepository,
	disputeRepo expense.DisputeRepository,
	profileRepo identity.ProfileRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		periodRepo:   periodRepo,
		categoryRepo: categoryRepo,
		disputeRepo:  disputeRepo,
		profileRepo:  profileRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ReportService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a new draft report for the actor in an open period.
// One report per owner and period.
func (s *ReportService) Create(ctx context.Context, actor identity.Actor, periodID uuid.UUID) (*ReportDTO, error) {
	period, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != expense.PeriodStatusOpen {
		return nil, shared.NewDomainError("PERIOD_CLOSED", "Cannot create a report in a closed period")
	}

	report, err := expense.NewExpenseReport(actor.ProfileID, periodID)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("REPORT_EXISTS", "A report already exists for this period")
		}
		s.logger.Error("failed to create report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create report")
	}

	s.logger.Info("expense report created",
		zap.String("report_id", report.ID.String()),
		zap.String("owner_id", report.OwnerID.String()),
		zap.String("period_id", periodID.String()))

	return toReportDTO(report), nil
}

// GetByID returns one report with its lines. Owner or decider.
func (s *ReportService) GetByID(ctx context.Context, actor identity.Actor, reportID uuid.UUID) (*ReportDTO, error) {
	report, err := s.findVisibleReport(ctx, actor, reportID)
	if err != nil {
		return nil, err
	}
	return toReportDTO(report), nil
}

// List returns reports matching the filter. Drivers only ever see
// their own reports regardless of the filter they send.
func (s *ReportService) List(ctx context.Context, actor identity.Actor, filter expense.ReportFilter) (*ReportListResult, error) {
	if !actor.CanDecide() {
		filter = filter.WithOwner(actor.ProfileID)
	}

	reports, total, err := s.reportRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list reports", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reports")
	}

	dtos := make([]ReportDTO, len(reports))
	for i, report := range reports {
		dtos[i] = *toReportDTO(report)
	}

	totalPages := int(total) / filter.Limit()
	if int(total)%filter.Limit() > 0 {
		totalPages++
	}

	return &ReportListResult{
		Reports:    dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
		TotalPages: totalPages,
	}, nil
}

// GetGrid returns the per-day, per-category view of a report with the
// current line state applied. Owner or decider.
func (s *ReportService) GetGrid(ctx context.Context, actor identity.Actor, reportID uuid.UUID) (*GridDTO, error) {
	report, err := s.findVisibleReport(ctx, actor, reportID)
	if err != nil {
		return nil, err
	}

	period, err := s.findPeriod(ctx, report.PeriodID)
	if err != nil {
		return nil, err
	}

	grid, categories, err := s.buildGrid(ctx, report, period)
	if err != nil {
		return nil, err
	}

	return s.toGridDTO(report, grid, categories), nil
}

// SaveDraft applies cell edits through the grid and replaces the
// report's line set. Owner only, draft only. Cells not listed in the
// input keep their current state.
func (s *ReportService) SaveDraft(ctx context.Context, actor identity.Actor, input SaveDraftInput) (*GridDTO, error) {
	report, err := s.findReport(ctx, input.ReportID)
	if err != nil {
		return nil, err
	}
	if !actor.Is(report.OwnerID) {
		return nil, shared.ErrForbidden
	}

	period, err := s.findPeriod(ctx, report.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.Status != expense.PeriodStatusOpen {
		return nil, shared.NewDomainError("PERIOD_CLOSED", "Cannot edit a report in a closed period")
	}

	grid, categories, err := s.buildGrid(ctx, report, period)
	if err != nil {
		return nil, err
	}

	for _, cell := range input.ExpenseCells {
		if grid.ExpenseChecked(cell.Day, cell.CategoryID) != cell.Checked {
			if err := grid.ToggleExpense(cell.Day, cell.CategoryID); err != nil {
				return nil, err
			}
		}
	}
	for _, cell := range input.BonusCells {
		if err := grid.SetBonusQuantity(cell.Day, cell.CategoryID, cell.Quantity); err != nil {
			return nil, err
		}
	}

	if err := report.SaveDraft(actor, grid); err != nil {
		return nil, err
	}

	if err := s.reportRepo.SaveDraft(ctx, report); err != nil {
		if errors.Is(err, shared.ErrConcurrentUpdate) {
			s.logger.Warn("lost draft save race on report", zap.String("report_id", report.ID.String()))
			return nil, err
		}
		s.logger.Error("failed to save draft", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save draft")
	}

	return s.toGridDTO(report, grid, categories), nil
}

// Submit transitions the actor's draft report to submitted. Closing
// the period freezes driver mutations, so a draft left behind in a
// closed period can no longer be submitted either.
func (s *ReportService) Submit(ctx context.Context, actor identity.Actor, reportID uuid.UUID) (*ReportDTO, error) {
	report, err := s.findReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	period, err := s.findPeriod(ctx, report.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.Status != expense.PeriodStatusOpen {
		return nil, shared.NewDomainError("PERIOD_CLOSED", "Cannot submit a report in a closed period")
	}

	expected := report.Status
	if err := report.Submit(actor); err != nil {
		return nil, err
	}

	if err := s.saveTransition(ctx, report, expected); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, report.GetDomainEvents())
	report.ClearDomainEvents()

	s.logger.Info("expense report submitted",
		zap.String("report_id", report.ID.String()),
		zap.String("owner_id", report.OwnerID.String()))

	return toReportDTO(report), nil
}

// Validate transitions a submitted report to validated. Admin/office.
func (s *ReportService) Validate(ctx context.Context, actor identity.Actor, reportID uuid.UUID) (*ReportDTO, error) {
	report, err := s.findReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	expected := report.Status
	if err := report.Validate(actor); err != nil {
		return nil, err
	}

	if err := s.saveTransition(ctx, report, expected); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, report.GetDomainEvents())
	report.ClearDomainEvents()

	s.logger.Info("expense report validated",
		zap.String("report_id", report.ID.String()),
		zap.String("validator_id", actor.ProfileID.String()))

	return toReportDTO(report), nil
}

// Correct transitions a report to corrected, recording every field
// change as an audit row. Corrections with a cell reference mutate the
// targeted line; the rows persist atomically with the status change.
func (s *ReportService) Correct(ctx context.Context, actor identity.Actor, input CorrectInput) (*ReportDTO, error) {
	report, err := s.findReport(ctx, input.ReportID)
	if err != nil {
		return nil, err
	}

	corrections := make([]*expense.Correction, 0, len(input.Corrections))
	for _, entry := range input.Corrections {
		correction, err := expense.NewCorrection(report.ID, actor.ProfileID, entry.Field, entry.OldValue, entry.NewValue, entry.Note)
		if err != nil {
			return nil, err
		}
		if entry.Day != "" && entry.CategoryID != uuid.Nil {
			correction = correction.WithCellReference(entry.Day, entry.CategoryID)
		}
		corrections = append(corrections, correction)
	}

	expected := report.Status
	if err := report.Correct(actor, corrections); err != nil {
		return nil, err
	}

	if err := s.reportRepo.SaveCorrection(ctx, report, expected, corrections); err != nil {
		if errors.Is(err, shared.ErrConcurrentUpdate) {
			s.logger.Warn("lost correction race on report", zap.String("report_id", report.ID.String()))
			return nil, err
		}
		s.logger.Error("failed to save correction", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save correction")
	}

	s.publishDomainEvents(ctx, report.GetDomainEvents())
	report.ClearDomainEvents()

	s.logger.Info("expense report corrected",
		zap.String("report_id", report.ID.String()),
		zap.String("author_id", actor.ProfileID.String()),
		zap.Int("corrections", len(corrections)))

	return toReportDTO(report), nil
}

// OpenDispute opens a dispute on a corrected report. Owner only; at
// most one open dispute per report.
func (s *ReportService) OpenDispute(ctx context.Context, actor identity.Actor, input OpenDisputeInput) (*DisputeDTO, error) {
	report, err := s.findReport(ctx, input.ReportID)
	if err != nil {
		return nil, err
	}

	hasOpen, err := s.disputeRepo.HasOpenDispute(ctx, report.ID)
	if err != nil {
		s.logger.Error("failed to check open disputes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to open dispute")
	}

	dispute, err := report.OpenDispute(actor, input.Message, hasOpen)
	if err != nil {
		return nil, err
	}

	if err := s.disputeRepo.Create(ctx, dispute); err != nil {
		// The partial unique index is the authoritative check; a racing
		// open that slipped past HasOpenDispute lands here.
		if errors.Is(err, shared.ErrDuplicateDispute) {
			return nil, err
		}
		s.logger.Error("failed to create dispute", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to open dispute")
	}

	s.publishDomainEvents(ctx, report.GetDomainEvents())
	report.ClearDomainEvents()

	s.logger.Info("dispute opened",
		zap.String("dispute_id", dispute.ID.String()),
		zap.String("report_id", report.ID.String()),
		zap.String("raised_by", actor.ProfileID.String()))

	return toDisputeDTO(dispute), nil
}

// ResolveDispute closes an open dispute. Admin/office. The report
// stays in its current status; resolution is an acknowledgement, not
// a report transition.
func (s *ReportService) ResolveDispute(ctx context.Context, actor identity.Actor, disputeID uuid.UUID) (*DisputeDTO, error) {
	dispute, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("DISPUTE_NOT_FOUND", "Dispute not found")
		}
		s.logger.Error("failed to find dispute", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find dispute")
	}

	if err := dispute.Resolve(actor); err != nil {
		return nil, err
	}

	if err := s.disputeRepo.SaveResolution(ctx, dispute); err != nil {
		if errors.Is(err, shared.ErrConcurrentUpdate) {
			s.logger.Warn("lost resolution race on dispute", zap.String("dispute_id", disputeID.String()))
			return nil, err
		}
		s.logger.Error("failed to resolve dispute", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve dispute")
	}

	s.publishDomainEvents(ctx, dispute.GetDomainEvents())
	dispute.ClearDomainEvents()

	s.logger.Info("dispute resolved",
		zap.String("dispute_id", dispute.ID.String()),
		zap.String("resolved_by", actor.ProfileID.String()))

	return toDisputeDTO(dispute), nil
}

// ListCorrections returns the correction history of a report, oldest
// first. Owner or decider.
func (s *ReportService) ListCorrections(ctx context.Context, actor identity.Actor, reportID uuid.UUID) ([]CorrectionDTO, error) {
	if _, err := s.findVisibleReport(ctx, actor, reportID); err != nil {
		return nil, err
	}

	corrections, err := s.reportRepo.ListCorrections(ctx, reportID)
	if err != nil {
		s.logger.Error("failed to list corrections", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list corrections")
	}

	dtos := make([]CorrectionDTO, len(corrections))
	for i, correction := range corrections {
		dtos[i] = *toCorrectionDTO(correction)
	}
	return dtos, nil
}

// ListDisputes returns all disputes of a report, newest first. Owner
// or decider.
func (s *ReportService) ListDisputes(ctx context.Context, actor identity.Actor, reportID uuid.UUID) ([]DisputeDTO, error) {
	if _, err := s.findVisibleReport(ctx, actor, reportID); err != nil {
		return nil, err
	}

	disputes, err := s.disputeRepo.FindByReport(ctx, reportID)
	if err != nil {
		s.logger.Error("failed to list disputes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list disputes")
	}

	dtos := make([]DisputeDTO, len(disputes))
	for i, dispute := range disputes {
		dtos[i] = *toDisputeDTO(dispute)
	}
	return dtos, nil
}

// buildGrid materialises the report's grid: the period's days crossed
// with the categories applicable to the owner's vehicle class, with
// the persisted lines applied on top. Categories referenced by
// existing lines stay on the grid even when deactivated since, so
// captured amounts never disappear from view.
func (s *ReportService) buildGrid(ctx context.Context, report *expense.ExpenseReport, period *expense.ExpensePeriod) (*expense.Grid, []*expense.Category, error) {
	owner, err := s.profileRepo.FindByID(ctx, report.OwnerID)
	if err != nil {
		s.logger.Error("failed to load report owner", zap.Error(err), zap.String("owner_id", report.OwnerID.String()))
		return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build grid")
	}

	active, err := s.categoryRepo.FindActive(ctx, nil)
	if err != nil {
		s.logger.Error("failed to load categories", zap.Error(err))
		return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build grid")
	}

	categories := make([]*expense.Category, 0, len(active))
	included := make(map[uuid.UUID]struct{}, len(active))
	for _, category := range active {
		if !category.AvailableTo(owner.VehicleProfile) {
			continue
		}
		categories = append(categories, category)
		included[category.ID] = struct{}{}
	}

	lineCategoryIDs := make([]uuid.UUID, 0)
	for _, line := range report.Lines {
		if _, ok := included[line.CategoryID]; !ok {
			lineCategoryIDs = append(lineCategoryIDs, line.CategoryID)
			included[line.CategoryID] = struct{}{}
		}
	}
	for _, line := range report.BonusLines {
		if _, ok := included[line.CategoryID]; !ok {
			lineCategoryIDs = append(lineCategoryIDs, line.CategoryID)
			included[line.CategoryID] = struct{}{}
		}
	}
	for _, categoryID := range lineCategoryIDs {
		category, err := s.categoryRepo.FindByID(ctx, categoryID)
		if err != nil {
			s.logger.Error("failed to load line category", zap.Error(err), zap.String("category_id", categoryID.String()))
			return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build grid")
		}
		categories = append(categories, category)
	}

	grid := expense.NewGrid(period, categories)
	if err := grid.ApplyLines(report.Lines, report.BonusLines); err != nil {
		return nil, nil, err
	}

	return grid, categories, nil
}

func (s *ReportService) toGridDTO(report *expense.ExpenseReport, grid *expense.Grid, categories []*expense.Category) *GridDTO {
	// Captured line amounts win over the current catalog default
	expenseAmounts := make(map[string]map[uuid.UUID]decimal.Decimal)
	for _, line := range report.Lines {
		if expenseAmounts[line.Day] == nil {
			expenseAmounts[line.Day] = make(map[uuid.UUID]decimal.Decimal)
		}
		expenseAmounts[line.Day][line.CategoryID] = line.Amount
	}
	bonusAmounts := make(map[string]map[uuid.UUID]decimal.Decimal)
	for _, line := range report.BonusLines {
		if bonusAmounts[line.Day] == nil {
			bonusAmounts[line.Day] = make(map[uuid.UUID]decimal.Decimal)
		}
		bonusAmounts[line.Day][line.CategoryID] = line.Amount
	}

	days := grid.Days()
	categoryDTOs := make([]GridCategoryDTO, len(categories))
	expenseCells := make([]ExpenseCellDTO, 0)
	bonusCells := make([]BonusCellDTO, 0)

	for i, category := range categories {
		categoryDTOs[i] = GridCategoryDTO{
			ID:            category.ID,
			Name:          category.Name,
			Kind:          category.Kind.String(),
			DefaultAmount: category.DefaultAmount,
			DisplayOrder:  category.DisplayOrder,
		}

		for _, day := range days {
			switch category.Kind {
			case expense.CategoryKindExpense:
				amount := category.DefaultAmount
				if captured, ok := expenseAmounts[day][category.ID]; ok {
					amount = captured
				}
				expenseCells = append(expenseCells, ExpenseCellDTO{
					Day:        day,
					CategoryID: category.ID,
					Checked:    grid.ExpenseChecked(day, category.ID),
					Amount:     amount,
				})
			case expense.CategoryKindBonus:
				amount := category.DefaultAmount
				if captured, ok := bonusAmounts[day][category.ID]; ok {
					amount = captured
				}
				bonusCells = append(bonusCells, BonusCellDTO{
					Day:        day,
					CategoryID: category.ID,
					Quantity:   grid.BonusQuantity(day, category.ID),
					Amount:     amount,
				})
			}
		}
	}

	totals := grid.Totals()
	return &GridDTO{
		ReportID:     report.ID,
		PeriodID:     report.PeriodID,
		Status:       report.Status.String(),
		Days:         days,
		Categories:   categoryDTOs,
		ExpenseCells: expenseCells,
		BonusCells:   bonusCells,
		Totals: TotalsDTO{
			ExpenseSubtotal: totals.ExpenseSubtotal,
			BonusSubtotal:   totals.BonusSubtotal,
			GrandTotal:      totals.GrandTotal,
		},
	}
}

func (s *ReportService) saveTransition(ctx context.Context, report *expense.ExpenseReport, expected expense.ReportStatus) error {
	if err := s.reportRepo.SaveTransition(ctx, report, expected); err != nil {
		if errors.Is(err, shared.ErrConcurrentUpdate) {
			s.logger.Warn("lost transition race on report",
				zap.String("report_id", report.ID.String()),
				zap.String("expected_status", expected.String()))
			return err
		}
		s.logger.Error("failed to save report transition", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to save report")
	}
	return nil
}

func (s *ReportService) findReport(ctx context.Context, id uuid.UUID) (*expense.ExpenseReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("REPORT_NOT_FOUND", "Expense report not found")
		}
		s.logger.Error("failed to find report", zap.Error(err), zap.String("report_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find report")
	}
	return report, nil
}

func (s *ReportService) findVisibleReport(ctx context.Context, actor identity.Actor, id uuid.UUID) (*expense.ExpenseReport, error) {
	report, err := s.findReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanDecide() && !report.IsOwnedBy(actor.ProfileID) {
		return nil, shared.ErrForbidden
	}
	return report, nil
}

func (s *ReportService) findPeriod(ctx context.Context, id uuid.UUID) (*expense.ExpensePeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PERIOD_NOT_FOUND", "Expense period not found")
		}
		s.logger.Error("failed to find period", zap.Error(err), zap.String("period_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find period")
	}
	return period, nil
}

func (s *ReportService) publishDomainEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
