// Package deps contains interface definitions for the media domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
)

// Extractor defines interface for resolving a URL into a downloaded asset
type Extractor interface {
	// Resolve downloads the media behind the request into a temp dir.
	// Fails fast with a SizeLimitError when the probed size exceeds
	// opts.MaxSizeBytes. The caller owns the asset's TempDir.
	Resolve(ctx context.Context, req entities.MediaRequest, opts entities.DownloadOptions) (*entities.MediaAsset, error)
}

// TelegramSender defines interface for delivering media via Telegram.
// This interface is used to break the cyclic dependency between UseCase
// and the Telegram handlers.
type TelegramSender interface {
	// UploadToCacheChat uploads the asset to the cache chat and returns
	// the reusable file reference. asDocument forces document delivery.
	UploadToCacheChat(ctx context.Context, asset *entities.MediaAsset, asDocument bool) (entities.FileRef, error)

	// EditInlineText replaces an inline message with plain text
	EditInlineText(ctx context.Context, inlineMessageID, text string) error

	// EditInlineMedia replaces an inline message with a cached media file
	EditInlineMedia(ctx context.Context, inlineMessageID string, ref entities.FileRef, caption string) error

	// SendStatusMessage sends a text message and returns its message id
	SendStatusMessage(ctx context.Context, chatID int64, text string) (int, error)

	// EditChatText replaces a chat message with plain text
	EditChatText(ctx context.Context, chatID int64, messageID int, text string) error

	// EditChatMedia replaces a chat message with a cached media file
	EditChatMedia(ctx context.Context, chatID int64, messageID int, ref entities.FileRef, caption string) error
}

// CacheRepository defines interface for the URL -> file_id cache store.
// Implementations must be safe for concurrent use.
type CacheRepository interface {
	// Get returns the cached entry for key, or (nil, nil) on a miss
	Get(ctx context.Context, key string) (*entities.CacheEntry, error)

	// Put stores an entry, overwriting any previous value for its key
	Put(ctx context.Context, entry *entities.CacheEntry) error

	// Close releases the underlying store
	Close() error
}

// SettingsRepository defines interface for per-user delivery preferences
type SettingsRepository interface {
	// Get returns the user's settings, defaults for unknown users
	Get(userID int64) entities.UserSettings

	// Set stores the user's settings
	Set(userID int64, settings entities.UserSettings)
}
