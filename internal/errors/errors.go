// Package errors is the single errors import for faceauth code. Wrapping
// helpers record a stack trace through pkg/errors; matching helpers defer to
// the standard library so domain errors compare by code.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain sentinel error without a stack trace.
func New(text string) error { return stderrors.New(text) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// IsAny reports whether err matches at least one of targets.
func IsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if Is(err, target) {
			return true
		}
	}

	return false
}

// As finds the first error in err's chain assignable to target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// Join combines errs; nil entries are dropped.
func Join(errs ...error) error { return stderrors.Join(errs...) }

// Wrap annotates err with message and the caller's stack. A nil err stays nil.
func Wrap(err error, message string) error { return pkgerrors.Wrap(err, message) }

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack on err without changing its message.
func WithStack(err error) error { return pkgerrors.WithStack(err) }

// Errorf builds a new error with a stack trace.
func Errorf(format string, args ...any) error { return pkgerrors.Errorf(format, args...) }

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Stack renders the outermost recorded stack trace of err, or "" when none
// of the chain carries one.
func Stack(err error) string {
	var tracer stackTracer
	if !As(err, &tracer) {
		return ""
	}

	return strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace()))
}
