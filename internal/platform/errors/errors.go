package errors

import (
	"errors"
	"fmt"
)

// Kind groups failures by the pipeline layer they came from. Handlers
// branch on it to pick a response code; logs carry it as a prefix.
type Kind string

const (
	KindConfig    Kind = "config"
	KindCapture   Kind = "capture"
	KindAudio     Kind = "audio"
	KindPipeline  Kind = "pipeline"
	KindProvider  Kind = "provider"
	KindStorage   Kind = "storage"
	KindTransport Kind = "transport"
	KindBootstrap Kind = "bootstrap"
	KindUnknown   Kind = "unknown"
)

// Error carries a kind, the operation that failed and a single
// human-readable message. Terminal failures surface as one line, never
// a stack trace.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap annotates err with a kind and operation. An err that is already
// typed passes through unchanged so the original kind survives layering.
func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

// New builds a typed error with no underlying cause.
func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// IsKind reports whether the first typed error in the chain has the
// given kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	for err != nil {
		if errors.As(err, &target) {
			return target.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}
