package errors

import (
	"errors"
	"fmt"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// NotFoundError is returned when a board, message or user does not exist,
// or when a conditional update matched no document.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Resource %s with id %s is not found.", e.Resource, e.Id)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, Id: id}
}

var (
	ErrNotAuthenticated = errors.New("User not authenticated")
	ErrNotAuthorized    = errors.New("User not authorised")
)

// StepError reports which step of a two-write protocol failed.
// Err keeps the underlying failure so callers can still match it.
type StepError struct {
	Step      string
	MessageId string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed for message %s: %v", e.Step, e.MessageId, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError for the given resource.
// Empty resource matches any.
func IsNotFound(err error, resource string) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return resource == "" || nf.Resource == resource
}
