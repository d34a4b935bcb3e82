package errors

import (
	"errors"
	"fmt"
)

// Common errors that can be used across packages
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotConfigured    = errors.New("not configured")
	ErrInternal         = errors.New("internal error")
)

// ValidationError is returned when an input fails a local check, before any
// request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// FileError represents an error that occurs during file operations
type FileError struct {
	Path    string
	Op      string
	Wrapped error
}

func (e *FileError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Wrapped)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Wrapped
}

// NewFileError creates a new FileError
func NewFileError(path, op string, wrapped error) error {
	return &FileError{
		Path:    path,
		Op:      op,
		Wrapped: wrapped,
	}
}

// VCSError is returned when git metadata for a project cannot be read.
type VCSError struct {
	Op      string
	Path    string
	Wrapped error
}

func (e *VCSError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("git %s in %s: %v", e.Op, e.Path, e.Wrapped)
	}
	return fmt.Sprintf("git %s in %s failed", e.Op, e.Path)
}

func (e *VCSError) Unwrap() error {
	return e.Wrapped
}

// NewVCSError creates a new VCSError
func NewVCSError(op, path string, wrapped error) error {
	return &VCSError{
		Op:      op,
		Path:    path,
		Wrapped: wrapped,
	}
}

// BundleError is returned by the devkit when a platform build, scan or
// upload step fails.
type BundleError struct {
	Op       string
	Platform string
	Wrapped  error
}

func (e *BundleError) Error() string {
	if e.Platform == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Platform, e.Wrapped)
}

func (e *BundleError) Unwrap() error {
	return e.Wrapped
}

// NewBundleError creates a new BundleError
func NewBundleError(op, platform string, wrapped error) error {
	return &BundleError{
		Op:       op,
		Platform: platform,
		Wrapped:  wrapped,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
