package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/hrportal/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	profileRepo identity.ProfileRepository
	jwtService  *auth.JWTService
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	profileRepo identity.ProfileRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a profile by email and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	profile, err := s.profileRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Profile not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !profile.Active {
		s.logger.Warn("Login attempt for deactivated profile", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !profile.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		ProfileID: profile.ID,
		Email:     profile.Email,
		Role:      profile.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	profile.RecordLogin()
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		// Login still succeeds, the timestamp is best effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("Profile logged in",
		zap.String("email", profile.Email),
		zap.String("profile_id", profile.ID.String()),
		zap.String("ip", input.IP))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Profile:               *toProfileDTO(profile),
	}, nil
}

// RefreshToken issues a fresh token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))

		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		case auth.ErrInvalidToken:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		default:
			return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
		}
	}

	profileID, err := claims.GetProfileUUID()
	if err != nil {
		s.logger.Error("Invalid profile ID in refresh token", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid profile ID in token")
	}

	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		s.logger.Warn("Profile not found during token refresh", zap.String("profile_id", profileID.String()))
		return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
	}

	if !profile.Active {
		s.logger.Warn("Token refresh for deactivated profile", zap.String("profile_id", profileID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		ProfileID: profile.ID,
		Email:     profile.Email,
		Role:      profile.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to refresh token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Token refreshed", zap.String("profile_id", profileID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// GetCurrentProfile retrieves the authenticated profile's information
func (s *AuthService) GetCurrentProfile(ctx context.Context, profileID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
	}
	return toProfileDTO(profile), nil
}

// ChangePassword changes the caller's own password
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	profile, err := s.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return shared.NewDomainError("PROFILE_NOT_FOUND", "Profile not found")
	}

	if err := profile.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update profile after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("Password changed", zap.String("profile_id", input.ProfileID.String()))

	return nil
}
