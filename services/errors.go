package services

import (
	"fmt"
)

// Error categories understood by the HTTP layer. Handlers match them with
// errors.As and map to 400/404/403/500. Anything unexpected from the store
// wraps into InternalError so the raw driver error never reaches a client.

type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string { return e.Detail }

type ForbiddenError struct {
	Detail string
}

func (e *ForbiddenError) Error() string { return e.Detail }

type InternalError struct {
	Detail string
	Err    error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *InternalError) Unwrap() error { return e.Err }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Detail: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...interface{}) error {
	return &ForbiddenError{Detail: fmt.Sprintf(format, args...)}
}

func internal(detail string, err error) error {
	return &InternalError{Detail: detail, Err: err}
}
