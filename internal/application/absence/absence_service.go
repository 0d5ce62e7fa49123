package absence

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/absence"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AbsenceService handles absence request operations. Requests are filed
// by the actor for themselves; decisions are guarded in the domain and
// persisted through a conditional update so racing deciders lose cleanly.
type AbsenceService struct {
	requestRepo    absence.RequestRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAbsenceService creates a new absence service
func NewAbsenceService(requestRepo absence.RequestRepository, logger *zap.Logger) *AbsenceService {
	return &AbsenceService{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AbsenceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create files a new absence request for the acting profile
func (s *AbsenceService) Create(ctx context.Context, actor identity.Actor, input CreateRequestInput) (*RequestDTO, error) {
	dateRange, err := absence.NewDateRange(input.Range.LastWorkedDay, input.Range.ReturnDay)
	if err != nil {
		return nil, err
	}

	alternatives := make([]absence.DateRange, 0, len(input.Alternatives))
	for _, alt := range input.Alternatives {
		altRange, err := absence.NewDateRange(alt.LastWorkedDay, alt.ReturnDay)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, altRange)
	}

	request, err := absence.NewAbsenceRequest(
		actor.ProfileID,
		input.Type,
		dateRange,
		alternatives,
		input.Comment,
		input.LastMinute,
	)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		s.logger.Error("Failed to create absence request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create absence request")
	}

	s.publishDomainEvents(ctx, request)

	s.logger.Info("Absence request filed",
		zap.String("request_id", request.ID.String()),
		zap.String("requester_id", actor.ProfileID.String()),
		zap.String("type", request.Type.String()),
		zap.Bool("last_minute", request.LastMinute))

	return toRequestDTO(request), nil
}

// GetByID retrieves an absence request. Drivers see only their own.
func (s *AbsenceService) GetByID(ctx context.Context, actor identity.Actor, id uuid.UUID) (*RequestDTO, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanDecide() && !request.IsOwnedBy(actor.ProfileID) {
		return nil, shared.ErrForbidden
	}

	return toRequestDTO(request), nil
}

// List returns absence requests matching the filter. Drivers are
// restricted to their own requests regardless of the filter.
func (s *AbsenceService) List(ctx context.Context, actor identity.Actor, filter absence.RequestFilter) (*RequestListResult, error) {
	if !actor.CanDecide() {
		filter = filter.WithRequester(actor.ProfileID)
	}

	requests, total, err := s.requestRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list absence requests", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list absence requests")
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = *toRequestDTO(r)
	}

	return &RequestListResult{
		Requests:   dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Approve decides a pending request in favour of the requester
func (s *AbsenceService) Approve(ctx context.Context, actor identity.Actor, id uuid.UUID) (*RequestDTO, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Approve(actor); err != nil {
		return nil, err
	}

	if err := s.requestRepo.SaveDecision(ctx, request); err != nil {
		if err == shared.ErrConcurrentUpdate {
			s.logger.Warn("Lost decision race on absence request",
				zap.String("request_id", id.String()),
				zap.String("actor_id", actor.ProfileID.String()))
			return nil, err
		}
		s.logger.Error("Failed to save absence decision", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save decision")
	}

	s.publishDomainEvents(ctx, request)

	s.logger.Info("Absence request approved",
		zap.String("request_id", id.String()),
		zap.String("approver_id", actor.ProfileID.String()))

	return toRequestDTO(request), nil
}

// Reject decides a pending request against the requester. The reason
// is mandatory and stored verbatim.
func (s *AbsenceService) Reject(ctx context.Context, actor identity.Actor, input RejectInput) (*RequestDTO, error) {
	request, err := s.findRequest(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	if err := request.Reject(actor, input.Reason); err != nil {
		return nil, err
	}

	if err := s.requestRepo.SaveDecision(ctx, request); err != nil {
		if err == shared.ErrConcurrentUpdate {
			s.logger.Warn("Lost decision race on absence request",
				zap.String("request_id", input.RequestID.String()),
				zap.String("actor_id", actor.ProfileID.String()))
			return nil, err
		}
		s.logger.Error("Failed to save absence decision", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save decision")
	}

	s.publishDomainEvents(ctx, request)

	s.logger.Info("Absence request rejected",
		zap.String("request_id", input.RequestID.String()),
		zap.String("approver_id", actor.ProfileID.String()))

	return toRequestDTO(request), nil
}

// UpdateComment updates the narrative comment on the caller's own request
func (s *AbsenceService) UpdateComment(ctx context.Context, actor identity.Actor, id uuid.UUID, comment string) (*RequestDTO, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !request.IsOwnedBy(actor.ProfileID) {
		return nil, shared.ErrForbidden
	}

	request.UpdateComment(comment)

	if err := s.requestRepo.Update(ctx, request); err != nil {
		s.logger.Error("Failed to update absence comment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update request")
	}

	return toRequestDTO(request), nil
}

func (s *AbsenceService) findRequest(ctx context.Context, id uuid.UUID) (*absence.AbsenceRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("REQUEST_NOT_FOUND", "Absence request not found")
		}
		s.logger.Error("Failed to find absence request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find absence request")
	}
	return request, nil
}

func (s *AbsenceService) publishDomainEvents(ctx context.Context, request *absence.AbsenceRequest) {
	if s.eventPublisher == nil {
		return
	}
	events := request.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	request.ClearDomainEvents()
}
