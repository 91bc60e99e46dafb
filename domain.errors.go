package main

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a DomainError into one of the outcomes the api
// translates into HTTP statuses.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindValidation
	KindConflict
	KindInternal
)

// DomainError is the single error type crossing the service boundary.
// Handlers never inspect storage sentinels, they only translate kinds.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Status maps the error kind to its HTTP status code.
func (e *DomainError) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code maps the error kind to the machine-readable code served inside
// the failure envelope.
func (e *DomainError) Code() string {
	switch e.Kind {
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// NotFoundError builds a not found error for a given resource label.
func NotFoundError(resource string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: resource + " not found"}
}

// ValidationError builds a validation error carrying the aggregated
// violations message.
func ValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// ConflictError builds a conflict error from a format string.
func ConflictError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InternalError wraps an unexpected failure.
func InternalError(err error) *DomainError {
	return &DomainError{Kind: KindInternal, Message: err.Error()}
}
