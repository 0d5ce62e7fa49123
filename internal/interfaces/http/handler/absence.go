package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	absenceapp "github.com/hrportal/backend/internal/application/absence"
	"github.com/hrportal/backend/internal/domain/absence"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// AbsenceHandler handles absence request endpoints
type AbsenceHandler struct {
	BaseHandler
	absenceService *absenceapp.AbsenceService
}

// NewAbsenceHandler creates a new AbsenceHandler
func NewAbsenceHandler(absenceService *absenceapp.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absenceService: absenceService}
}

// DateRangeRequest represents an absence date range. The range is
// bounded by the last day worked and the day the employee returns.
type DateRangeRequest struct {
	LastWorkedDay string `json:"last_worked_day" binding:"required,datetime=2006-01-02"`
	ReturnDay     string `json:"return_day" binding:"required,datetime=2006-01-02"`
}

// CreateAbsenceRequest represents a request to open an absence request
type CreateAbsenceRequest struct {
	Type         string             `json:"type" binding:"required,oneof=paid_leave anticipated_paid_leave unpaid_leave sickness work_accident exceptional"`
	Range        DateRangeRequest   `json:"range" binding:"required"`
	Alternatives []DateRangeRequest `json:"alternatives" binding:"omitempty,max=2,dive"`
	Comment      string             `json:"comment" binding:"max=2000"`
	LastMinute   bool               `json:"last_minute"`
}

// RejectAbsenceRequest represents a rejection with its mandatory reason
type RejectAbsenceRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=2000"`
}

// UpdateCommentRequest represents a comment update on a pending request
type UpdateCommentRequest struct {
	Comment string `json:"comment" binding:"max=2000"`
}

// ListAbsencesRequest represents absence list query parameters
type ListAbsencesRequest struct {
	dto.ListRequest
	Status      string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Type        string `form:"type" binding:"omitempty,oneof=paid_leave anticipated_paid_leave unpaid_leave sickness work_accident exceptional"`
	RequesterID string `form:"requester_id" binding:"omitempty,uuid"`
}

func parseDateRange(r DateRangeRequest) (absenceapp.DateRangeInput, error) {
	lastWorked, err := time.Parse(dateLayout, r.LastWorkedDay)
	if err != nil {
		return absenceapp.DateRangeInput{}, err
	}
	returnDay, err := time.Parse(dateLayout, r.ReturnDay)
	if err != nil {
		return absenceapp.DateRangeInput{}, err
	}
	return absenceapp.DateRangeInput{LastWorkedDay: lastWorked, ReturnDay: returnDay}, nil
}

// Create opens a new absence request for the authenticated profile
func (h *AbsenceHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mainRange, err := parseDateRange(req.Range)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	alternatives := make([]absenceapp.DateRangeInput, 0, len(req.Alternatives))
	for _, alt := range req.Alternatives {
		rng, err := parseDateRange(alt)
		if err != nil {
			h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		alternatives = append(alternatives, rng)
	}

	request, err := h.absenceService.Create(c.Request.Context(), actor, absenceapp.CreateRequestInput{
		Type:         absence.AbsenceType(req.Type),
		Range:        mainRange,
		Alternatives: alternatives,
		Comment:      req.Comment,
		LastMinute:   req.LastMinute,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// GetByID returns a single absence request
func (h *AbsenceHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.absenceService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// List returns a paginated list of absence requests
func (h *AbsenceHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListAbsencesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := absence.NewRequestFilter().WithPagination(req.Page, req.PageSize)
	if req.Status != "" {
		filter = filter.WithStatus(absence.RequestStatus(req.Status))
	}
	if req.Type != "" {
		filter = filter.WithType(absence.AbsenceType(req.Type))
	}
	if req.RequesterID != "" {
		requesterID, err := uuid.Parse(req.RequesterID)
		if err != nil {
			h.BadRequest(c, "Invalid requester ID format")
			return
		}
		filter = filter.WithRequester(requesterID)
	}

	result, err := h.absenceService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Requests, result.Total, result.Page, result.PageSize)
}

// Approve approves a pending absence request
func (h *AbsenceHandler) Approve(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.absenceService.Approve(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Reject rejects a pending absence request with a reason
func (h *AbsenceHandler) Reject(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req RejectAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.absenceService.Reject(c.Request.Context(), actor, absenceapp.RejectInput{
		RequestID: id,
		Reason:    req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// UpdateComment updates the requester's comment on a pending request
func (h *AbsenceHandler) UpdateComment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.absenceService.UpdateComment(c.Request.Context(), actor, id, req.Comment)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}
