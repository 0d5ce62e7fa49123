package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/infrastructure/auth"
	"github.com/hrportal/backend/internal/infrastructure/logger"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	AuthClaimsKey = "auth_claims"
	AuthActorKey  = "auth_actor"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddlewareConfig holds configuration for the JWT auth middleware
type AuthMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultAuthConfig returns the default auth middleware configuration
func DefaultAuthConfig(jwtService *auth.JWTService) AuthMiddlewareConfig {
	return AuthMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// Auth creates JWT authentication middleware with the default configuration
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return AuthWithConfig(DefaultAuthConfig(jwtService))
}

// AuthWithConfig creates JWT authentication middleware. On success the
// validated claims and the acting profile are stored in the gin context.
func AuthWithConfig(cfg AuthMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		profileID, err := claims.GetProfileUUID()
		if err != nil {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Malformed profile ID in token")
			return
		}

		actor := identity.Actor{
			ProfileID: profileID,
			Role:      identity.Role(claims.Role),
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthActorKey, actor)

		// Thread the profile ID through the request context for logging
		ctx := logger.WithProfileID(c.Request.Context(), profileID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg AuthMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := "UNAUTHORIZED"
	errorMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = "TOKEN_EXPIRED"
		errorMessage = "Token has expired"
	case auth.ErrInvalidToken:
		code = "TOKEN_INVALID"
		errorMessage = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, errorMessage))
}

// GetClaims retrieves the validated JWT claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(AuthClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetActor retrieves the authenticated actor from the gin context.
// The zero Actor is returned for unauthenticated requests.
func GetActor(c *gin.Context) identity.Actor {
	if v, exists := c.Get(AuthActorKey); exists {
		if actor, ok := v.(identity.Actor); ok {
			return actor
		}
	}
	return identity.Actor{}
}
