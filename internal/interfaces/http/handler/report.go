package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	expenseapp "github.com/hrportal/backend/internal/application/expense"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
)

// ReportHandler handles expense report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *expenseapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *expenseapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReportRequest represents a request to open a report in a period
type CreateReportRequest struct {
	PeriodID string `json:"period_id" binding:"required,uuid"`
}

// ExpenseCellRequest carries the desired state of one expense cell
type ExpenseCellRequest struct {
	Day        string `json:"day" binding:"required,datetime=2006-01-02"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Checked    bool   `json:"checked"`
}

// BonusCellRequest carries the desired quantity of one bonus cell
type BonusCellRequest struct {
	Day        string `json:"day" binding:"required,datetime=2006-01-02"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"gte=0"`
}

// SaveDraftRequest represents a draft save. Cells not listed keep
// their current state.
type SaveDraftRequest struct {
	ExpenseCells []ExpenseCellRequest `json:"expense_cells" binding:"omitempty,dive"`
	BonusCells   []BonusCellRequest   `json:"bonus_cells" binding:"omitempty,dive"`
}

// CorrectionRequest carries one field change of a correction pass
type CorrectionRequest struct {
	Field      string `json:"field" binding:"required,min=1,max=100"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
	Note       string `json:"note" binding:"max=2000"`
	Day        string `json:"day" binding:"omitempty,datetime=2006-01-02"`
	CategoryID string `json:"category_id" binding:"omitempty,uuid"`
}

// CorrectReportRequest represents a correction pass over a submitted report
type CorrectReportRequest struct {
	Corrections []CorrectionRequest `json:"corrections" binding:"required,min=1,dive"`
}

// OpenDisputeRequest represents a dispute opened against a corrected report
type OpenDisputeRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

// ListReportsRequest represents report list query parameters
type ListReportsRequest struct {
	dto.ListRequest
	OwnerID  string `form:"owner_id" binding:"omitempty,uuid"`
	PeriodID string `form:"period_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=draft submitted validated corrected"`
}

// Create opens a new report for the authenticated driver in a period
func (h *ReportHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), actor, periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, report)
}

// GetByID returns a single report with its lines
func (h *ReportHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// List returns a paginated list of reports. Drivers only see their own.
func (h *ReportHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := expense.NewReportFilter().WithPagination(req.Page, req.PageSize)
	if req.OwnerID != "" {
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			h.BadRequest(c, "Invalid owner ID format")
			return
		}
		filter = filter.WithOwner(ownerID)
	}
	if req.PeriodID != "" {
		periodID, err := uuid.Parse(req.PeriodID)
		if err != nil {
			h.BadRequest(c, "Invalid period ID format")
			return
		}
		filter = filter.WithPeriod(periodID)
	}
	if req.Status != "" {
		filter = filter.WithStatus(expense.ReportStatus(req.Status))
	}

	result, err := h.reportService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Reports, result.Total, result.Page, result.PageSize)
}

// GetGrid returns the per-day, per-category grid view of a report
func (h *ReportHandler) GetGrid(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	grid, err := h.reportService.GetGrid(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, grid)
}

// SaveDraft applies cell changes to a draft report and returns the
// refreshed grid
func (h *ReportHandler) SaveDraft(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := expenseapp.SaveDraftInput{ReportID: id}
	for _, cell := range req.ExpenseCells {
		categoryID, err := uuid.Parse(cell.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		input.ExpenseCells = append(input.ExpenseCells, expenseapp.ExpenseCellInput{
			Day:        cell.Day,
			CategoryID: categoryID,
			Checked:    cell.Checked,
		})
	}
	for _, cell := range req.BonusCells {
		categoryID, err := uuid.Parse(cell.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		input.BonusCells = append(input.BonusCells, expenseapp.BonusCellInput{
			Day:        cell.Day,
			CategoryID: categoryID,
			Quantity:   cell.Quantity,
		})
	}

	grid, err := h.reportService.SaveDraft(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, grid)
}

// Submit hands a draft report to the office for validation
func (h *ReportHandler) Submit(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	report, err := h.reportService.Submit(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Validate marks a submitted report as validated for payroll
func (h *ReportHandler) Validate(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	report, err := h.reportService.Validate(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Correct records a correction pass over a submitted report
func (h *ReportHandler) Correct(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	var req CorrectReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := expenseapp.CorrectInput{ReportID: id}
	for _, entry := range req.Corrections {
		correction := expenseapp.CorrectionInput{
			Field:    entry.Field,
			OldValue: entry.OldValue,
			NewValue: entry.NewValue,
			Note:     entry.Note,
			Day:      entry.Day,
		}
		if entry.CategoryID != "" {
			categoryID, err := uuid.Parse(entry.CategoryID)
			if err != nil {
				h.BadRequest(c, "Invalid category ID format")
				return
			}
			correction.CategoryID = categoryID
		}
		input.Corrections = append(input.Corrections, correction)
	}

	report, err := h.reportService.Correct(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// ListCorrections returns the correction history of a report
func (h *ReportHandler) ListCorrections(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	corrections, err := h.reportService.ListCorrections(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, corrections)
}

// OpenDispute opens a dispute against a corrected report
func (h *ReportHandler) OpenDispute(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	var req OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dispute, err := h.reportService.OpenDispute(c.Request.Context(), actor, expenseapp.OpenDisputeInput{
		ReportID: id,
		Message:  req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dispute)
}

// ListDisputes returns all disputes raised against a report
func (h *ReportHandler) ListDisputes(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	disputes, err := h.reportService.ListDisputes(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, disputes)
}

// ResolveDispute closes an open dispute
func (h *ReportHandler) ResolveDispute(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	disputeID, err := uuid.Parse(c.Param("dispute_id"))
	if err != nil {
		h.BadRequest(c, "Invalid dispute ID format")
		return
	}

	dispute, err := h.reportService.ResolveDispute(c.Request.Context(), actor, disputeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dispute)
}
