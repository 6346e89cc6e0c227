package middleware

import (
	"errors"
	"strings"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/domain/repositories"
	"finsim.backend/internal/interfaces/http/response"
	"finsim.backend/pkg/jwt"
	"finsim.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// AdminIDKey is the context key for admin ID
	AdminIDKey = "adminId"
	// AdminRoleKey is the context key for the admin role claimed in the token
	AdminRoleKey = "adminRole"
)

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", domainerrors.Unauthorized("Authorization header is required")
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>")
	}
	return strings.TrimPrefix(authHeader, BearerPrefix), nil
}

func validateBearer(c *gin.Context, jwtService *jwt.JWTService) (*jwt.Claims, error) {
	tokenString, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		logger.Warn(c.Request.Context(), "token validation failed",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.Unauthorized("Token has expired")
		}
		return nil, domainerrors.Unauthorized("Invalid token")
	}
	return claims, nil
}

// AuthMiddleware authenticates end-user access tokens
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateBearer(c, jwtService)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		// Admin tokens carry a role claim and must not pass user auth.
		if claims.Role != "" && claims.Role != string(entities.UserRoleUser) {
			response.AbortWithError(c, domainerrors.Unauthorized("Invalid token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

// AdminAuthMiddleware authenticates admin access tokens
func AdminAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateBearer(c, jwtService)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		if !entities.AdminRole(claims.Role).Valid() {
			response.AbortWithError(c, domainerrors.Forbidden("Admin access required"))
			return
		}

		c.Set(AdminIDKey, claims.UserID)
		c.Set(AdminRoleKey, claims.Role)

		c.Next()
	}
}

// RequireSuperAdmin re-resolves the caller's admin record and requires the
// superadmin role. The role claim in the token is not trusted for
// admin-management operations; a demoted or blocked admin is rejected even
// while holding a valid token.
func RequireSuperAdmin(adminRepo repositories.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := GetAdminID(c)
		if !ok {
			response.AbortWithError(c, domainerrors.Unauthorized("Admin identity not found"))
			return
		}

		admin, err := adminRepo.GetByID(c.Request.Context(), adminID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.AbortWithError(c, domainerrors.Unauthorized("Admin account no longer exists"))
				return
			}
			response.AbortWithError(c, err)
			return
		}

		if admin.IsBlocked {
			response.AbortWithError(c, domainerrors.Forbidden("Admin account is blocked"))
			return
		}
		if admin.Role != entities.AdminRoleSuperAdmin {
			response.AbortWithError(c, domainerrors.Forbidden("Superadmin access required"))
			return
		}

		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetAdminID gets the admin ID from context
func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	adminID, exists := c.Get(AdminIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return adminID.(uuid.UUID), true
}
