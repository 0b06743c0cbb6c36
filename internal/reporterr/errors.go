// Package reporterr defines the error taxonomy for report generation.
package reporterr

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitConfig = 2
)

// Kind classifies an error.
type Kind int

const (
	// KindRuntime covers I/O and rendering failures.
	KindRuntime Kind = iota
	// KindConfig covers missing or invalid options and unreadable inputs named by options.
	KindConfig
	// KindData covers producer contract violations inside result files.
	KindData
)

// String returns the kind label used in messages.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindData:
		return "data error"
	default:
		return "error"
	}
}

// Error is the structured error type surfaced to callers.
type Error struct {
	Kind    Kind
	Message string
	Path    string // offending file, directory or option
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error.
func (e *Error) ExitCode() int {
	if e.Kind == KindConfig {
		return ExitConfig
	}
	return ExitError
}

// Config creates a configuration error for the named option or path.
func Config(path, message string) *Error {
	return &Error{Kind: KindConfig, Message: message, Path: path}
}

// Configf creates a configuration error with formatting.
func Configf(path, format string, args ...any) *Error {
	return Config(path, fmt.Sprintf(format, args...))
}

// Data creates a data error wrapping cause.
func Data(path, message string, cause error) *Error {
	return &Error{Kind: KindData, Message: message, Path: path, Cause: cause}
}

// Dataf creates a data error with formatting and no cause.
func Dataf(path, format string, args ...any) *Error {
	return &Error{Kind: KindData, Message: fmt.Sprintf(format, args...), Path: path}
}

// Wrap wraps err as a runtime error.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindRuntime, Message: message, Cause: err}
}

// IsConfig reports whether err carries a configuration error.
func IsConfig(err error) bool {
	return hasKind(err, KindConfig)
}

// IsData reports whether err carries a data error.
func IsData(err error) bool {
	return hasKind(err, KindData)
}

// ExitCode maps any error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var re *Error
	if errors.As(err, &re) {
		return re.ExitCode()
	}
	return ExitError
}

func hasKind(err error, kind Kind) bool {
	var re *Error
	if !errors.As(err, &re) {
		return false
	}
	return re.Kind == kind
}
