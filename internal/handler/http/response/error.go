package response

import (
	"errors"
	"net/http"

	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/auth"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/employee"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/user"
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/verification"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrTokenNotFound):
		NotFound(w, "Employee not found or inactive")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee is already checked in")
	case errors.Is(err, attendance.ErrNoOpenCheckIn):
		NotFound(w, "No active check-in found for this employee")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Verification domain errors
	case errors.Is(err, verification.ErrFaceServiceUnavailable):
		BadGateway(w, "Face verification service is unavailable, please try again")
	case errors.Is(err, verification.ErrFaceRejected):
		Unauthorized(w, "Face verification failed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
