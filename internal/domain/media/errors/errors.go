// Package errors contains domain-specific errors for the media domain
package errors

import (
	pkgerrors "github.com/Conte777/tgmedia-bot/pkg/errors"
)

// Domain errors for the download pipeline
var (
	ErrInvalidURL          = pkgerrors.NewValidationError("no valid URL found in query")
	ErrUnsupportedPlatform = pkgerrors.NewValidationError("URL is not an Instagram, TikTok or YouTube link")
	ErrNotFound            = pkgerrors.NewNotFoundError("media not found, removed or private")
	ErrExtractionFailed    = pkgerrors.NewExtractionError("media extraction failed")
	ErrSizeExceeded        = pkgerrors.NewSizeLimitError("media exceeds the configured size limit")
	ErrUploadFailed        = pkgerrors.NewUploadError("upload to cache chat failed")
	ErrTelegramAPI         = pkgerrors.NewTransportError("telegram API error")
	ErrInvalidAction       = pkgerrors.NewValidationError("unknown settings action")
)
