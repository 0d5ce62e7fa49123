package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	expenseapp "github.com/hrportal/backend/internal/application/expense"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
)

// PeriodHandler handles expense period endpoints
type PeriodHandler struct {
	BaseHandler
	periodService *expenseapp.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periodService *expenseapp.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// CreatePeriodRequest represents a request to open an expense period
type CreatePeriodRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// Create opens a new expense period
func (h *PeriodHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	period, err := h.periodService.Create(c.Request.Context(), actor, expenseapp.CreatePeriodInput{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, period)
}

// Close closes an open expense period
func (h *PeriodHandler) Close(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	period, err := h.periodService.Close(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// GetByID returns a single expense period
func (h *PeriodHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	period, err := h.periodService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// ListOpen returns all currently open periods
func (h *PeriodHandler) ListOpen(c *gin.Context) {
	periods, err := h.periodService.ListOpen(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, periods)
}

// List returns a paginated list of periods, newest first
func (h *PeriodHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	result, err := h.periodService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Periods, result.Total, result.Page, result.PageSize)
}
