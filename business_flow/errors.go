// Package businessflow contains the business logic for the visitor register.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Visitor-related errors
	ErrActiveVisitExists = errors.New("an active visit already exists for this national ID")
	ErrVisitorNotFound   = errors.New("visitor not found")
	ErrAlreadyCheckedOut = errors.New("visitor has already checked out")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrForbidden          = errors.New("forbidden")

	// User management errors
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrSelfDeleteForbidden   = errors.New("admin users cannot delete themselves")
	ErrSelfDemoteForbidden   = errors.New("admin users cannot change their own role to non-admin")
	ErrNoFieldsToUpdate      = errors.New("at least one field must be provided for update")

	// Settings errors
	ErrDisclosureTextsRequired = errors.New("both kvkk_text and aydinlatma_text are required")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsActiveVisitExists(err error) bool {
	return errors.Is(err, ErrActiveVisitExists)
}

func IsVisitorNotFound(err error) bool {
	return errors.Is(err, ErrVisitorNotFound)
}

func IsAlreadyCheckedOut(err error) bool {
	return errors.Is(err, ErrAlreadyCheckedOut)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsMissingCredentials(err error) bool {
	return errors.Is(err, ErrMissingCredentials)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsUsernameAlreadyExists(err error) bool {
	return errors.Is(err, ErrUsernameAlreadyExists)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsSelfDeleteForbidden(err error) bool {
	return errors.Is(err, ErrSelfDeleteForbidden)
}

func IsSelfDemoteForbidden(err error) bool {
	return errors.Is(err, ErrSelfDemoteForbidden)
}

func IsNoFieldsToUpdate(err error) bool {
	return errors.Is(err, ErrNoFieldsToUpdate)
}

func IsDisclosureTextsRequired(err error) bool {
	return errors.Is(err, ErrDisclosureTextsRequired)
}
