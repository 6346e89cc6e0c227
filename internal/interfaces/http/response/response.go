package response

import (
	"errors"
	"net/http"

	domainerrors "finsim.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// Success sends a success envelope
func Success(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Error sends an error envelope, mapping domain errors to HTTP statuses
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// AbortWithError sends an error envelope and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest),
		errors.Is(err, domainerrors.ErrOTPInvalid),
		errors.Is(err, domainerrors.ErrOTPExpired),
		errors.Is(err, domainerrors.ErrNoActiveSubscription),
		errors.Is(err, domainerrors.ErrPlanNotActive):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid email or password", err)
	case errors.Is(err, domainerrors.ErrTokenExpired),
		errors.Is(err, domainerrors.ErrEmailNotVerified),
		errors.Is(err, domainerrors.ErrAccountBlocked),
		errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	case errors.Is(err, domainerrors.ErrGatewayUnavailable):
		return domainerrors.BadGateway(err.Error(), err)
	default:
		return domainerrors.InternalError(err)
	}
}
