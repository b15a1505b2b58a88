package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a bridge failure
type ErrorKind string

const (
	KindInvalidArgument    ErrorKind = "InvalidArgument"
	KindNotFound           ErrorKind = "NotFound"
	KindPermissionRequired ErrorKind = "PermissionRequired"
	KindDeviceUnavailable  ErrorKind = "DeviceUnavailable"
	KindEncoding           ErrorKind = "EncodingError"
	KindUnimplemented      ErrorKind = "Unimplemented"
)

// Error is a component failure with its classification.
// Host causes are kept in Err for logging and never sent to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError creates a classified error
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies a host error
func WrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification of err.
// Unclassified errors are reported as KindDeviceUnavailable.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDeviceUnavailable
}

// MessageOf returns the caller-facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Status is the response state sent back on the channel
type Status string

const (
	StatusSuccess        Status = "success"
	StatusError          Status = "error"
	StatusNotImplemented Status = "notImplemented"
)

// Failure is the structured error sent to the caller
type Failure struct {
	Code    string    `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Result represents the single outcome of one request
type Result struct {
	Success bool        `json:"success"`
	Value   interface{} `json:"value,omitempty"`
	Failure *Failure    `json:"failure,omitempty"`
}

// Ok wraps a success value
func Ok(value interface{}) *Result {
	return &Result{Success: true, Value: value}
}

// Fail builds a failure result
func Fail(kind ErrorKind, code, message string) *Result {
	return &Result{Failure: &Failure{Code: code, Kind: kind, Message: message}}
}

// Unimplemented builds the result for an unrecognized operation name
func Unimplemented(method string) *Result {
	return Fail(KindUnimplemented, "UNIMPLEMENTED", fmt.Sprintf("unknown operation: %s", method))
}

// Status reports the channel status of the result
func (r *Result) Status() Status {
	switch {
	case r.Success:
		return StatusSuccess
	case r.Failure != nil && r.Failure.Kind == KindUnimplemented:
		return StatusNotImplemented
	default:
		return StatusError
	}
}
