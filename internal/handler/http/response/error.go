package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
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
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found, may be inactive or invalid user")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrReservedUser):
		Forbidden(w, "Reserved system account cannot be modified")
	case errors.Is(err, user.ErrEmptyRoster):
		BadRequest(w, "No active employees eligible for payroll", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary not found")
	case errors.Is(err, salary.ErrNegativeSalary):
		BadRequest(w, "Salary must be non-negative", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoStagedPayrolls):
		NotFound(w, "No payrolls found")
	case errors.Is(err, payroll.ErrMissingParameters):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
