package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ServiceError for the HTTP boundary.
type ErrorKind string

const (
	KindAuth       ErrorKind = "Auth"
	KindNotFound   ErrorKind = "NotFound"
	KindBadRequest ErrorKind = "BadRequest"
	KindConflict   ErrorKind = "Conflict"
)

// ServiceError is returned by services for failures the caller can act on.
// Anything else is an internal error.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first ServiceError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func authError(format string, args ...interface{}) error {
	return &ServiceError{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(cause error, format string, args ...interface{}) error {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), Err: cause}
}

func badRequestError(format string, args ...interface{}) error {
	return &ServiceError{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func conflictError(cause error, format string, args ...interface{}) error {
	return &ServiceError{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: cause}
}
