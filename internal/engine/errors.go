package engine

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodePreconditionFailed Code = "PRECONDITION_FAILED"
	CodeNotFound           Code = "NOT_FOUND"
)

// Error is returned by every rejected engine operation. The engine state is
// unchanged whenever one is returned.
type Error struct {
	Code    Code
	Message string
	TaskID  string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrValidationFailed   = &Error{Code: CodeValidationFailed, Message: "validation failed"}
	ErrResourceExhausted  = &Error{Code: CodeResourceExhausted, Message: "resource exhausted"}
	ErrPreconditionFailed = &Error{Code: CodePreconditionFailed, Message: "precondition failed"}
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
)

func newError(code Code, taskID string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), TaskID: taskID}
}

func notFound(id string) *Error {
	return newError(CodeNotFound, id, "task %s not found", id)
}

// CodeOf returns the engine error code carried by err, or "" for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
