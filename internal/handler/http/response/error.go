package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var parseErr *roster.ParseError
	if errors.As(err, &parseErr) {
		UnprocessableEntity(w, "PARSE_ERROR", parseErr.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUnknownGoogleUser):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Roster domain errors
	case errors.Is(err, roster.ErrFileRequired):
		BadRequest(w, err.Error(), map[string]string{"schedule_file": err.Error()})
	case errors.Is(err, roster.ErrInvalidFileType):
		BadRequest(w, err.Error(), map[string]string{"schedule_file": err.Error()})
	case errors.Is(err, roster.ErrFileTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   &ErrorDetail{Code: "FILE_TOO_LARGE", Message: err.Error()},
		})
	case errors.Is(err, roster.ErrScheduleNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, roster.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, notification.ErrServiceStopped):
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   &ErrorDetail{Code: "SERVICE_UNAVAILABLE", Message: err.Error()},
		})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
