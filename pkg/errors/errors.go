// Package errors provides typed errors for the application
package errors

import "errors"

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeSizeLimit
	ErrorTypeExtraction
	ErrorTypeUpload
	ErrorTypeTransport
	ErrorTypeInternal
)

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents an invalid or unsupported user input
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents content that is removed, private or missing
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// SizeLimitError represents an asset that exceeds the configured size ceiling
type SizeLimitError struct {
	baseError
}

// NewSizeLimitError creates a new SizeLimitError
func NewSizeLimitError(msg string) *SizeLimitError {
	return &SizeLimitError{baseError{msg: msg}}
}

// ExtractionError represents a failure of the media extraction step
type ExtractionError struct {
	baseError
}

// NewExtractionError creates a new ExtractionError
func NewExtractionError(msg string) *ExtractionError {
	return &ExtractionError{baseError{msg: msg}}
}

// UploadError represents a failure to upload media to Telegram
type UploadError struct {
	baseError
}

// NewUploadError creates a new UploadError
func NewUploadError(msg string) *UploadError {
	return &UploadError{baseError{msg: msg}}
}

// TransportError represents a Telegram API failure outside of uploads
type TransportError struct {
	baseError
}

// NewTransportError creates a new TransportError
func NewTransportError(msg string) *TransportError {
	return &TransportError{baseError{msg: msg}}
}

// InternalError represents an unexpected internal failure
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsSizeLimitError checks if error is a SizeLimitError
func IsSizeLimitError(err error) bool {
	var target *SizeLimitError
	return errors.As(err, &target)
}

// IsExtractionError checks if error is an ExtractionError
func IsExtractionError(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}

// IsUploadError checks if error is an UploadError
func IsUploadError(err error) bool {
	var target *UploadError
	return errors.As(err, &target)
}

// IsTransportError checks if error is a TransportError
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsInternalError checks if error is an InternalError
func IsInternalError(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}
