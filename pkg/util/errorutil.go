package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors. Message is the human-readable
// string placed in the response envelope's errors field.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest)
}

// NewMissingCredential reports a request that carried no session token.
func NewMissingCredential() error {
	return NewDomainError("MISSING_CREDENTIAL", "Please pass a token", http.StatusBadRequest)
}

// NewInvalidToken reports a token that failed signature or format checks.
func NewInvalidToken() error {
	return NewDomainError("INVALID_TOKEN", "Invalid Token", http.StatusUnauthorized)
}

// NewNotFound reports an absent user or referenced entity. Clients get a 400,
// matching the original API contract, not a 404.
func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusBadRequest)
}

// NewDuplicateUser reports a registration email collision.
func NewDuplicateUser() error {
	return NewDomainError("DUPLICATE_USER", "Existing User", http.StatusBadRequest)
}

// NewInvalidCredential reports a failed password check.
func NewInvalidCredential() error {
	return NewDomainError("INVALID_CREDENTIAL", "Wrong Password", http.StatusBadRequest)
}

// NewCredentialServiceError reports a hashing failure, distinct from a wrong
// password.
func NewCredentialServiceError(err error) error {
	return &DomainError{
		Code:       "CREDENTIAL_SERVICE_ERROR",
		Message:    "Password Error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewPersistenceError reports a record store failure.
func NewPersistenceError(err error) error {
	return &DomainError{
		Code:       "PERSISTENCE_ERROR",
		Message:    "Internal Server Error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal Server Error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
