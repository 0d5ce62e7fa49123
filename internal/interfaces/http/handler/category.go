package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	expenseapp "github.com/hrportal/backend/internal/application/expense"
	"github.com/hrportal/backend/internal/domain/expense"
)

// CategoryHandler handles expense category catalog endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *expenseapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *expenseapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents a request to add a catalog category
type CreateCategoryRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	DefaultAmount string `json:"default_amount" binding:"required"`
	Applicability string `json:"applicability" binding:"required,oneof=light heavy all"`
	Kind          string `json:"kind" binding:"required,oneof=expense bonus"`
	DisplayOrder  int    `json:"display_order" binding:"omitempty,gte=0"`
}

// UpdateCategoryRequest represents a request to update a catalog
// category. All fields are replaced, so callers send the full state.
type UpdateCategoryRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	DefaultAmount string `json:"default_amount" binding:"required"`
	DisplayOrder  int    `json:"display_order" binding:"omitempty,gte=0"`
}

// ListCategoriesRequest represents category list query parameters
type ListCategoriesRequest struct {
	Kind string `form:"kind" binding:"omitempty,oneof=expense bonus"`
	All  bool   `form:"all"`
}

// Create adds a new category to the catalog
func (h *CategoryHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.DefaultAmount)
	if err != nil {
		h.BadRequest(c, "Invalid default amount")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), actor, expenseapp.CreateCategoryInput{
		Name:          req.Name,
		DefaultAmount: amount,
		Applicability: expense.Applicability(req.Applicability),
		Kind:          expense.CategoryKind(req.Kind),
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// Update modifies an existing category. Amount changes only affect
// future reports; amounts already captured on report lines keep their
// historical value.
func (h *CategoryHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.DefaultAmount)
	if err != nil {
		h.BadRequest(c, "Invalid default amount")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), actor, expenseapp.UpdateCategoryInput{
		ID:            id,
		Name:          req.Name,
		DefaultAmount: amount,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// GetByID returns a single category
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// List returns catalog categories. Active categories by default;
// admins may pass all=true to include deactivated ones.
func (h *CategoryHandler) List(c *gin.Context) {
	var req ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.All {
		actor, err := getActor(c)
		if err != nil {
			h.Unauthorized(c, "Authentication required")
			return
		}
		categories, err := h.categoryService.ListAll(c.Request.Context(), actor)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, categories)
		return
	}

	var kind *expense.CategoryKind
	if req.Kind != "" {
		k := expense.CategoryKind(req.Kind)
		kind = &k
	}

	categories, err := h.categoryService.ListActive(c.Request.Context(), kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// Activate re-enables a deactivated category
func (h *CategoryHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate retires a category from new reports
func (h *CategoryHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *CategoryHandler) setActive(c *gin.Context, active bool) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var category *expenseapp.CategoryDTO
	if active {
		category, err = h.categoryService.Activate(c.Request.Context(), actor, id)
	} else {
		category, err = h.categoryService.Deactivate(c.Request.Context(), actor, id)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}
