package service

import (
	"errors"
	"fmt"

	"github.com/forgo/freelancehub/api/internal/credential"
	"github.com/forgo/freelancehub/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrWeakCredential     = credential.ErrWeakCredential
	ErrInvalidAccount     = errors.New("invalid account details")
	ErrUnauthorized       = errors.New("could not validate credentials")

	// ErrAccountNotFound is logged when a valid token names a deleted account.
	// Callers only ever see ErrUnauthorized.
	ErrAccountNotFound = errors.New("account not found")
)

// ===== Project Errors =====
var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrInvalidProject          = errors.New("invalid project")
	ErrInvalidStatusTransition = errors.New("invalid project status transition")
)

// ===== Infrastructure Errors =====
var (
	// ErrStoreUnavailable wraps every failure reported by a store.
	ErrStoreUnavailable = errors.New("data store unavailable")
)

// storeError wraps a store failure so callers can tell it apart from domain errors
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// ValidationError carries per-field failures alongside a sentinel
type ValidationError struct {
	Kind   error
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s %s", e.Kind.Error(), e.Fields[0].Field, e.Fields[0].Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
