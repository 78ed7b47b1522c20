// Package errors implements application-level errors that carry enough
// context for a build step to explain what went wrong.
package errors

import (
	"errors"
	"strings"
)

// A Type classifies the origin of an Error.
type Type string

// Error types.
const (
	Unknown     Type = "unknown"
	User        Type = "user"        // bad flags or options
	Manifest    Type = "manifest"    // Cargo.toml is missing or malformed
	Environment Type = "environment" // a required build variable is missing
)

// Error is an error with troubleshooting information attached.
type Error struct {
	Cause           error
	Type            Type
	Message         string
	Troubleshooting string
	Link            string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Message == "" {
		b.WriteString(string(e.Type) + " error")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap attaches cause to err unless err already has one.
func Wrap(cause error, err Error) *Error {
	if err.Cause == nil {
		err.Cause = cause
	}
	return &err
}

// Is, As and New re-export the standard library so callers need only one
// errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func New(text string) error {
	return errors.New(text)
}
