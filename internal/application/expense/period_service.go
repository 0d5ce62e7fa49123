package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PeriodService handles expense period lifecycle
type PeriodService struct {
	periodRepo     expense.PeriodRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(periodRepo expense.PeriodRepository, logger *zap.Logger) *PeriodService {
	return &PeriodService{
		periodRepo: periodRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PeriodService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a new expense period. Admin only; the guard lives in the
// period constructor. Overlapping open periods are allowed.
func (s *PeriodService) Create(ctx context.Context, actor identity.Actor, input CreatePeriodInput) (*PeriodDTO, error) {
	period, err := expense.NewExpensePeriod(actor, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.periodRepo.Create(ctx, period); err != nil {
		s.logger.Error("failed to create expense period", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create period")
	}

	s.logger.Info("expense period opened",
		zap.String("period_id", period.ID.String()),
		zap.Time("start_date", period.StartDate),
		zap.Time("end_date", period.EndDate))

	return toPeriodDTO(period), nil
}

// Close closes an open period. Admin only. Reports of the period stay
// editable per their own status; closing only stops new report creation.
func (s *PeriodService) Close(ctx context.Context, actor identity.Actor, periodID uuid.UUID) (*PeriodDTO, error) {
	period, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	if err := period.Close(actor); err != nil {
		return nil, err
	}

	if err := s.periodRepo.SaveClose(ctx, period); err != nil {
		if errors.Is(err, shared.ErrConcurrentUpdate) {
			s.logger.Warn("lost close race on period", zap.String("period_id", periodID.String()))
			return nil, err
		}
		s.logger.Error("failed to close period", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to close period")
	}

	s.logger.Info("expense period closed",
		zap.String("period_id", period.ID.String()),
		zap.String("closed_by", actor.ProfileID.String()))

	return toPeriodDTO(period), nil
}

// GetByID returns one period. Visible to every authenticated profile.
func (s *PeriodService) GetByID(ctx context.Context, periodID uuid.UUID) (*PeriodDTO, error) {
	period, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return toPeriodDTO(period), nil
}

// ListOpen returns the currently open periods, newest first
func (s *PeriodService) ListOpen(ctx context.Context) ([]PeriodDTO, error) {
	periods, err := s.periodRepo.FindOpen(ctx)
	if err != nil {
		s.logger.Error("failed to list open periods", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list periods")
	}

	dtos := make([]PeriodDTO, len(periods))
	for i, period := range periods {
		dtos[i] = *toPeriodDTO(period)
	}
	return dtos, nil
}

// List returns all periods ordered by start date descending
func (s *PeriodService) List(ctx context.Context, page, pageSize int) (*PeriodListResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	periods, total, err := s.periodRepo.FindAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("failed to list periods", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list periods")
	}

	dtos := make([]PeriodDTO, len(periods))
	for i, period := range periods {
		dtos[i] = *toPeriodDTO(period)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &PeriodListResult{
		Periods:    dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *PeriodService) findPeriod(ctx context.Context, id uuid.UUID) (*expense.ExpensePeriod, error) {
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
