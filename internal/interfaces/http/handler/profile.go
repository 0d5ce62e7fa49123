package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/hrportal/backend/internal/application/identity"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
)

// ProfileHandler handles employee profile endpoints
type ProfileHandler struct {
	BaseHandler
	profileService *identityapp.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *identityapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CreateProfileRequest represents a request to create an employee profile
type CreateProfileRequest struct {
	Surname        string `json:"surname" binding:"required,min=1,max=100"`
	GivenName      string `json:"given_name" binding:"required,min=1,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	Role           string `json:"role" binding:"required,oneof=admin office driver"`
	VehicleProfile string `json:"vehicle_profile" binding:"omitempty,oneof=light heavy none"`
}

// UpdateProfileRequest represents a request to update an employee profile
type UpdateProfileRequest struct {
	Surname        *string `json:"surname" binding:"omitempty,min=1,max=100"`
	GivenName      *string `json:"given_name" binding:"omitempty,min=1,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Role           *string `json:"role" binding:"omitempty,oneof=admin office driver"`
	VehicleProfile *string `json:"vehicle_profile" binding:"omitempty,oneof=light heavy none"`
}

// ResetPasswordRequest represents an administrative password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ListProfilesRequest represents profile list query parameters
type ListProfilesRequest struct {
	dto.ListRequest
	Role   string `form:"role" binding:"omitempty,oneof=admin office driver"`
	Active *bool  `form:"active"`
}

// Create registers a new employee profile
func (h *ProfileHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle := identity.VehicleProfileNone
	if req.VehicleProfile != "" {
		vehicle = identity.VehicleProfile(req.VehicleProfile)
	}

	profile, err := h.profileService.Create(c.Request.Context(), actor, identityapp.CreateProfileInput{
		Surname:        req.Surname,
		GivenName:      req.GivenName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           identity.Role(req.Role),
		VehicleProfile: vehicle,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, profile)
}

// GetByID returns a single profile
func (h *ProfileHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	profile, err := h.profileService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// List returns a paginated list of profiles
func (h *ProfileHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListProfilesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := identity.NewProfileFilter().WithPagination(req.Page, req.PageSize)
	if req.Search != "" {
		filter = filter.WithKeyword(req.Search)
	}
	if req.Role != "" {
		filter = filter.WithRole(identity.Role(req.Role))
	}
	if req.Active != nil {
		filter = filter.WithActive(*req.Active)
	}

	result, err := h.profileService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Profiles, result.Total, result.Page, result.PageSize)
}

// Update modifies an existing profile
func (h *ProfileHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := identityapp.UpdateProfileInput{
		ID:        id,
		Surname:   req.Surname,
		GivenName: req.GivenName,
		Email:     req.Email,
	}
	if req.Role != nil {
		role := identity.Role(*req.Role)
		input.Role = &role
	}
	if req.VehicleProfile != nil {
		vehicle := identity.VehicleProfile(*req.VehicleProfile)
		input.VehicleProfile = &vehicle
	}

	profile, err := h.profileService.Update(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// Activate re-enables a deactivated profile
func (h *ProfileHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate disables a profile without deleting it
func (h *ProfileHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ProfileHandler) setActive(c *gin.Context, active bool) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	if active {
		err = h.profileService.Activate(c.Request.Context(), actor, id)
	} else {
		err = h.profileService.Deactivate(c.Request.Context(), actor, id)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	if err := h.profileService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ResetPassword sets a new password for a profile
func (h *ProfileHandler) ResetPassword(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.profileService.ResetPassword(c.Request.Context(), actor, id, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
