package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrUnknownSetting indicates a Set on a path outside the schema.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidPath indicates an invalid setting path format.
	ErrInvalidPath = errors.New("invalid setting path")
)

// TypeError reports a value whose type doesn't fit the setting.
type TypeError struct {
	// Path is the dot-separated setting path.
	Path string
	// Expected is the expected type name.
	Expected string
	// Actual is the provided type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// ValueError reports a value of the right type outside the allowed range.
type ValueError struct {
	// Path is the dot-separated setting path.
	Path string
	// Reason describes the constraint that was violated.
	Reason string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("setting %s: %s", e.Path, e.Reason)
}

// ParseError represents an error while parsing a settings file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
