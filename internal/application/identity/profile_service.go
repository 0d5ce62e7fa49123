package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProfileService handles profile management operations. Create, update,
// delete and (de)activation require an admin actor; listing is open to
// admin and office.
type ProfileService struct {
	profileRepo    identity.ProfileRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo identity.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProfileService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new profile
func (s *ProfileService) Create(ctx context.Context, actor identity.Actor, input CreateProfileInput) (*ProfileDTO, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	exists, err := s.profileRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "Email is already registered")
	}

	profile, err := identity.NewProfile(
		input.Surname,
		input.GivenName,
		input.Email,
		input.Password,
		input.Role,
		input.VehicleProfile,
	)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if err == shared.ErrAlreadyExists {
			return nil, shared.NewDomainError("EMAIL_EXISTS", "Email is already registered")
		}
		s.logger.Error("Failed to create profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create profile")
	}

	s.publishDomainEvents(ctx, profile)

	s.logger.Info("Profile created",
		zap.String("profile_id", profile.ID.String()),
		zap.String("email", profile.Email),
		zap.String("role", profile.Role.String()))

	return toProfileDTO(profile), nil
}

// GetByID retrieves a profile by ID
func (s *ProfileService) GetByID(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ProfileDTO, error) {
	// Drivers may only read their own profile
	if !actor.Role.CanDecide() && actor.ProfileID != id {
		return nil, shared.ErrForbidden
	}

	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
		}
		s.logger.Error("Failed to find profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find profile")
	}

	return toProfileDTO(profile), nil
}

// List retrieves a paginated list of profiles
func (s *ProfileService) List(ctx context.Context, actor identity.Actor, filter identity.ProfileFilter) (*ProfileListResult, error) {
	if !actor.Role.CanDecide() {
		return nil, shared.ErrForbidden
	}

	profiles, total, err := s.profileRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list profiles")
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	dtos := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = *toProfileDTO(p)
	}

	return &ProfileListResult{
		Profiles:   dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update updates a profile's contact data, role or vehicle class
func (s *ProfileService) Update(ctx context.Context, actor identity.Actor, input UpdateProfileInput) (*ProfileDTO, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	profile, err := s.profileRepo.FindByID(ctx, input.ID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find profile")
	}

	surname := profile.Surname
	givenName := profile.GivenName
	email := profile.Email
	if input.Surname != nil {
		surname = *input.Surname
	}
	if input.GivenName != nil {
		givenName = *input.GivenName
	}
	if input.Email != nil {
		email = *input.Email
	}

	if email != profile.Email {
		exists, err := s.profileRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
		}
		if exists {
			return nil, shared.NewDomainError("EMAIL_EXISTS", "Email is already registered")
		}
	}

	if err := profile.UpdateContact(surname, givenName, email); err != nil {
		return nil, err
	}

	// Vehicle class before role: promoting to driver requires a class
	if input.VehicleProfile != nil {
		if err := profile.SetVehicleProfile(*input.VehicleProfile); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := profile.ChangeRole(*input.Role); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
		}
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	s.logger.Info("Profile updated", zap.String("profile_id", input.ID.String()))

	return toProfileDTO(profile), nil
}

// Activate re-enables a deactivated profile
func (s *ProfileService) Activate(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	return s.setActive(ctx, actor, id, true)
}

// Deactivate disables a profile while keeping its history
func (s *ProfileService) Deactivate(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if actor.ProfileID == id {
		return shared.NewDomainError("SELF_DEACTIVATION", "Cannot deactivate your own profile")
	}
	return s.setActive(ctx, actor, id, false)
}

func (s *ProfileService) setActive(ctx context.Context, actor identity.Actor, id uuid.UUID, active bool) error {
	if actor.Role != identity.RoleAdmin {
		return shared.ErrForbidden
	}

	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to find profile")
	}

	if active {
		profile.Activate()
	} else {
		profile.Deactivate()
		profile.AddDomainEvent(identity.NewProfileDeactivatedEvent(profile))
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update profile active flag", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	s.publishDomainEvents(ctx, profile)

	s.logger.Info("Profile active flag changed",
		zap.String("profile_id", id.String()),
		zap.Bool("active", active))

	return nil
}

// Delete removes a profile entirely. Deactivation is preferred; delete
// exists for profiles created by mistake.
func (s *ProfileService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if actor.Role != identity.RoleAdmin {
		return shared.ErrForbidden
	}
	if actor.ProfileID == id {
		return shared.NewDomainError("SELF_DELETION", "Cannot delete your own profile")
	}

	if err := s.profileRepo.Delete(ctx, id); err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
		}
		s.logger.Error("Failed to delete profile", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete profile")
	}

	s.logger.Info("Profile deleted", zap.String("profile_id", id.String()))

	return nil
}

// ResetPassword sets a new password without checking the old one
func (s *ProfileService) ResetPassword(ctx context.Context, actor identity.Actor, id uuid.UUID, newPassword string) error {
	if actor.Role != identity.RoleAdmin {
		return shared.ErrForbidden
	}

	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to find profile")
	}

	if err := profile.SetPassword(newPassword); err != nil {
		return err
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update profile after password reset", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.logger.Info("Password reset", zap.String("profile_id", id.String()))

	return nil
}

func (s *ProfileService) publishDomainEvents(ctx context.Context, profile *identity.Profile) {
	if s.eventPublisher == nil {
		return
	}
	events := profile.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	profile.ClearDomainEvents()
}
