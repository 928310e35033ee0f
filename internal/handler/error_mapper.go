package handler

import (
	"errors"

	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Anything unrecognised becomes a 500 without leaking the cause.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Fields)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewLoginFailedError()
	case errors.Is(err, service.ErrUnauthorized):
		return model.NewUnauthorizedError("Could not validate credentials")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrWeakCredential):
		return model.NewValidationError([]model.FieldError{
			{Field: "password", Message: "must be at least 8 characters and contain a letter and a digit"},
		})
	case errors.Is(err, service.ErrInvalidAccount),
		errors.Is(err, service.ErrInvalidProject):
		return model.NewValidationError(nil)

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrProjectNotFound):
		return model.NewNotFoundError("project")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrDuplicateEmail):
		return model.NewAlreadyExistsError("Email already registered")
	case errors.Is(err, service.ErrInvalidStatusTransition):
		return model.NewConflictError("Only an OPEN project can be marked COMPLETED")

	// ===== Infrastructure Errors → 503 =====
	case errors.Is(err, service.ErrStoreUnavailable):
		return model.NewServiceUnavailableError()
	}

	return model.NewInternalError("")
}
