package response

import (
	"errors"
	"net/http"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/payroll"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/jwt"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var malformed *shift.MalformedTimeError
	if errors.As(err, &malformed) {
		BadRequest(w, "Malformed time input", map[string]string{"value": malformed.Value, "expected": "HH:MM"})
		return
	}

	switch {
	// Auth
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, jwt.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, jwt.ErrInsufficientRole):
		Forbidden(w, "Insufficient permissions")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrCategoryNotFound):
		NotFound(w, "Category not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrMalformedTime):
		BadRequest(w, "Malformed time input", nil)
	case errors.Is(err, shift.ErrTooMuchContention), errors.Is(err, shift.ErrVersionConflict):
		Conflict(w, "Shift was modified concurrently, try again")

	// Absence domain errors
	case errors.Is(err, absence.ErrAbsenceNotFound):
		NotFound(w, "Absence not found")
	case errors.Is(err, absence.ErrAbsenceTypeNotFound):
		NotFound(w, "Absence type not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNoWorkers):
		NotFound(w, "No workers found for the period")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
