// Package errs defines the typed errors shared across the application.
// It keeps the stdlib errors helpers re-exported so callers need a single
// import for creation, wrapping, and inspection.
package errs

import (
	"errors"
	"fmt"
)

var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Kind classifies an application error.
type Kind int

const (
	Unknown Kind = iota
	// Config is malformed or carries an incompatible version. Fatal at startup.
	Config
	// Scan failed: directory unreadable or not a directory. The prior buffer
	// stays intact.
	Scan
	// IPC covers FIFO create/read/write failures.
	IPC
	// Hook covers child process spawn failures and non-zero exits.
	Hook
	// Message covers unknown tags and malformed payloads on the wire.
	Message
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Scan:
		return "scan"
	case IPC:
		return "ipc"
	case Hook:
		return "hook"
	case Message:
		return "message"
	default:
		return "unknown"
	}
}

// AppError is the base error type for all application errors.
type AppError struct {
	kind Kind
	path string
	msg  string
	err  error
}

// Error returns the error message.
func (e *AppError) Error() string {
	s := e.msg
	if e.path != "" {
		s = fmt.Sprintf("%s: %s", s, e.path)
	}
	if e.err != nil {
		s = fmt.Sprintf("%s: %v", s, e.err)
	}
	return s
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.err
}

// Kind returns the error classification.
func (e *AppError) Kind() Kind {
	return e.kind
}

// Path returns the filesystem path associated with the error, if any.
func (e *AppError) Path() string {
	return e.path
}

// New creates an error of the given kind.
func New(kind Kind, msg string) error {
	return &AppError{kind: kind, msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &AppError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with additional context under the given kind. Returns nil
// when err is nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &AppError{kind: kind, msg: msg, err: err}
}

// WithPath wraps err and records the filesystem path it concerns.
func WithPath(kind Kind, err error, msg, path string) error {
	if err == nil {
		return nil
	}
	return &AppError{kind: kind, msg: msg, path: path, err: err}
}

// KindOf extracts the Kind from err's chain; Unknown when err is not an
// AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return Unknown
}

// IsConfig checks if the error is a configuration error.
func IsConfig(err error) bool { return KindOf(err) == Config }

// IsScan checks if the error is a directory scan error.
func IsScan(err error) bool { return KindOf(err) == Scan }

// IsIPC checks if the error is a pipe error.
func IsIPC(err error) bool { return KindOf(err) == IPC }

// IsHook checks if the error is a shell hook error.
func IsHook(err error) bool { return KindOf(err) == Hook }

// IsMessage checks if the error is a wire message error.
func IsMessage(err error) bool { return KindOf(err) == Message }
