// Package buissines contains business logic for the media domain
package buissines

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Conte777/tgmedia-bot/config"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/deps"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/dto"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/tgmedia-bot/internal/domain/media/errors"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/link"
	pkgerrors "github.com/Conte777/tgmedia-bot/pkg/errors"
)

// maxCaptionLength is Telegram's caption limit
const maxCaptionLength = 1024

// UseCase contains business logic for the download pipeline
type UseCase struct {
	extractor deps.Extractor
	cache     deps.CacheRepository
	settings  deps.SettingsRepository
	sender    deps.TelegramSender
	group     singleflight.Group

	maxSizeBytes int64
	maxSizeMB    int
	logger       zerolog.Logger
}

// NewUseCase creates a new UseCase instance
// Note: sender is not passed here to break cyclic dependency
// Use SetSender after creating the Telegram handlers
func NewUseCase(
	extractor deps.Extractor,
	cache deps.CacheRepository,
	settings deps.SettingsRepository,
	cfg *config.MediaConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		extractor:    extractor,
		cache:        cache,
		settings:     settings,
		maxSizeBytes: cfg.MaxFileSizeBytes(),
		maxSizeMB:    cfg.MaxFileSizeMB,
		logger:       logger,
	}
}

// SetSender sets the TelegramSender after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetSender(sender deps.TelegramSender) {
	uc.sender = sender
}

// HandleStart handles /start command
func (uc *UseCase) HandleStart(ctx context.Context, req *dto.StartCommandRequest) (*dto.CommandResponse, error) {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("username", req.Username).
		Msg("User started bot")

	message := `👋 Hi! Send me an Instagram, TikTok or YouTube link and I will download it.

You can also use me inline: type @bot <link> in any chat.

/settings - delivery preferences`

	return &dto.CommandResponse{Message: message}, nil
}

// HandleInlineQuery decides which single inline article to offer.
// Invalid and unsupported queries get informational articles and never
// reach the extractor.
func (uc *UseCase) HandleInlineQuery(ctx context.Context, req *dto.InlineQueryRequest) *dto.InlineQueryResponse {
	mediaReq, err := link.ParseQuery(req.Query)

	switch {
	case err == nil:
		return &dto.InlineQueryResponse{
			Title:       "Download media",
			Description: mediaReq.SourceURL,
			MessageText: "Downloading...",
			Placeholder: true,
		}
	case errors.Is(err, mediaerrors.ErrUnsupportedPlatform):
		return &dto.InlineQueryResponse{
			Title:       "Unsupported site",
			Description: "Only Instagram, TikTok and YouTube links work",
			MessageText: "This link is not supported.",
		}
	default:
		return &dto.InlineQueryResponse{
			Title:       "No link found",
			Description: "Paste a URL after the bot name",
			MessageText: "Example: @bot https://youtu.be/...",
		}
	}
}

// DeliverInline resolves a chosen inline result and swaps the inline
// placeholder for the cached media. Every failure degrades to a
// user-visible text edit.
func (uc *UseCase) DeliverInline(ctx context.Context, req *dto.ChosenResultRequest) error {
	mediaReq, err := link.ParseQuery(req.Query)
	if err != nil {
		// The inline answer already filtered these out, a chosen result
		// with a bad query means the client resent a stale one
		return err
	}

	if err := uc.sender.EditInlineText(ctx, req.InlineMessageID, "Downloading..."); err != nil {
		uc.logger.Warn().Err(err).Str("url", mediaReq.SourceURL).Msg("Failed to set inline status text")
	}

	userSettings := uc.settings.Get(req.UserID)

	ref, err := uc.resolve(ctx, mediaReq, userSettings)
	if err != nil {
		uc.logger.Error().Err(err).Str("url", mediaReq.SourceURL).Msg("Inline delivery failed")
		if editErr := uc.sender.EditInlineText(ctx, req.InlineMessageID, uc.failureText(err)); editErr != nil {
			uc.logger.Warn().Err(editErr).Msg("Failed to report inline failure to user")
		}
		return err
	}

	caption := uc.caption(mediaReq.SourceURL, userSettings, ref.Kind)
	if err := uc.sender.EditInlineMedia(ctx, req.InlineMessageID, ref, caption); err != nil {
		// No retry path: log and drop
		uc.logger.Error().Err(err).Str("url", mediaReq.SourceURL).Msg("Failed to answer inline query with media")
		return fmt.Errorf("%w: %v", mediaerrors.ErrTelegramAPI, err)
	}

	uc.logger.Info().
		Str("url", mediaReq.SourceURL).
		Str("file_id", ref.FileID).
		Msg("Inline media delivered")
	return nil
}

// DeliverDirectLink handles a URL sent to the bot in private chat
func (uc *UseCase) DeliverDirectLink(ctx context.Context, req *dto.DirectLinkRequest) error {
	mediaReq, err := link.ParseQuery(req.Text)
	if err != nil {
		hint := "Send me a link from Instagram, TikTok or YouTube."
		if errors.Is(err, mediaerrors.ErrUnsupportedPlatform) {
			hint = "Only Instagram, TikTok and YouTube are supported."
		}
		if _, sendErr := uc.sender.SendStatusMessage(ctx, req.ChatID, hint); sendErr != nil {
			uc.logger.Warn().Err(sendErr).Int64("chat_id", req.ChatID).Msg("Failed to send hint")
		}
		return nil
	}

	messageID, err := uc.sender.SendStatusMessage(ctx, req.ChatID, "Downloading...")
	if err != nil {
		return fmt.Errorf("%w: %v", mediaerrors.ErrTelegramAPI, err)
	}

	userSettings := uc.settings.Get(req.UserID)

	ref, err := uc.resolve(ctx, mediaReq, userSettings)
	if err != nil {
		uc.logger.Error().Err(err).Str("url", mediaReq.SourceURL).Msg("Direct delivery failed")
		if editErr := uc.sender.EditChatText(ctx, req.ChatID, messageID, uc.failureText(err)); editErr != nil {
			uc.logger.Warn().Err(editErr).Msg("Failed to report failure to user")
		}
		return err
	}

	caption := uc.caption(mediaReq.SourceURL, userSettings, ref.Kind)
	if err := uc.sender.EditChatMedia(ctx, req.ChatID, messageID, ref, caption); err != nil {
		uc.logger.Error().Err(err).Str("url", mediaReq.SourceURL).Msg("Failed to replace status with media")
		return fmt.Errorf("%w: %v", mediaerrors.ErrTelegramAPI, err)
	}

	return nil
}

// resolve returns a reusable file reference for the request: from the
// cache when possible, otherwise extract + upload exactly once even
// under concurrent identical requests.
func (uc *UseCase) resolve(ctx context.Context, req entities.MediaRequest, userSettings entities.UserSettings) (entities.FileRef, error) {
	key := cacheKey(req.SourceURL, userSettings)

	if entry, err := uc.cache.Get(ctx, key); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
	} else if entry != nil {
		uc.logger.Debug().Str("key", key).Str("file_id", entry.FileID).Msg("Cache hit")
		return entities.FileRef{FileID: entry.FileID, Kind: entry.Kind}, nil
	}

	result, err, shared := uc.group.Do(key, func() (interface{}, error) {
		// Re-check: another flight may have populated the cache while
		// this call was waiting
		if entry, err := uc.cache.Get(ctx, key); err == nil && entry != nil {
			return entities.FileRef{FileID: entry.FileID, Kind: entry.Kind}, nil
		}

		asset, err := uc.extractor.Resolve(ctx, req, entities.DownloadOptions{
			Quality:      userSettings.VideoQuality,
			MaxSizeBytes: uc.maxSizeBytes,
		})
		if err != nil {
			return entities.FileRef{}, err
		}
		defer uc.discard(asset)

		ref, err := uc.sender.UploadToCacheChat(ctx, asset, userSettings.SendAsFile)
		if err != nil {
			return entities.FileRef{}, fmt.Errorf("%w: %v", mediaerrors.ErrUploadFailed, err)
		}

		if putErr := uc.cache.Put(ctx, &entities.CacheEntry{
			Key:       key,
			FileID:    ref.FileID,
			Kind:      ref.Kind,
			CreatedAt: time.Now(),
		}); putErr != nil {
			// A failed cache write only costs a future re-upload
			uc.logger.Warn().Err(putErr).Str("key", key).Msg("Cache write failed")
		}

		return ref, nil
	})
	if err != nil {
		return entities.FileRef{}, err
	}

	if shared {
		uc.logger.Debug().Str("key", key).Msg("Joined in-flight download")
	}

	return result.(entities.FileRef), nil
}

// discard removes the asset's temp dir after the upload
func (uc *UseCase) discard(asset *entities.MediaAsset) {
	if asset.TempDir == "" {
		return
	}
	if err := os.RemoveAll(asset.TempDir); err != nil {
		uc.logger.Warn().Err(err).Str("dir", asset.TempDir).Msg("Failed to remove temp dir")
	}
}

// caption builds the "Source: <url>" caption for videos when enabled
func (uc *UseCase) caption(url string, userSettings entities.UserSettings, kind entities.MediaKind) string {
	if !userSettings.AddLink || kind != entities.MediaKindVideo {
		return ""
	}

	caption := "Source: " + url
	if len(caption) > maxCaptionLength {
		caption = caption[:maxCaptionLength]
	}
	return caption
}

// failureText maps pipeline errors to user-visible messages
func (uc *UseCase) failureText(err error) string {
	switch {
	case pkgerrors.IsSizeLimitError(err):
		return fmt.Sprintf("The file is larger than the %d MB limit.", uc.maxSizeMB)
	case pkgerrors.IsNotFoundError(err):
		return "Media not found. It may be private or removed."
	case pkgerrors.IsUploadError(err):
		return "Could not upload the file to Telegram, try again."
	case pkgerrors.IsExtractionError(err):
		return "Could not download the media."
	default:
		return "Something went wrong, try again."
	}
}

// HandleSettingsView returns the settings text for /settings
func (uc *UseCase) HandleSettingsView(userID int64) *dto.SettingsResponse {
	userSettings := uc.settings.Get(userID)
	return &dto.SettingsResponse{
		Settings: userSettings,
		Text:     settingsText(userSettings),
	}
}

// ApplySettingsAction applies a settings keyboard action
// (qbest/q720/q480, link0/link1, file0/file1)
func (uc *UseCase) ApplySettingsAction(userID int64, action string) (*dto.SettingsActionResponse, error) {
	userSettings := uc.settings.Get(userID)
	changed := false

	switch {
	case strings.HasPrefix(action, "q"):
		quality := entities.VideoQuality(action[1:])
		switch quality {
		case entities.QualityBest, entities.Quality720, entities.Quality480:
		default:
			return nil, mediaerrors.ErrInvalidAction
		}
		changed = userSettings.VideoQuality != quality
		userSettings.VideoQuality = quality

	case strings.HasPrefix(action, "link"):
		value, err := parseToggle(action[len("link"):])
		if err != nil {
			return nil, err
		}
		changed = userSettings.AddLink != value
		userSettings.AddLink = value

	case strings.HasPrefix(action, "file"):
		value, err := parseToggle(action[len("file"):])
		if err != nil {
			return nil, err
		}
		changed = userSettings.SendAsFile != value
		userSettings.SendAsFile = value

	default:
		return nil, mediaerrors.ErrInvalidAction
	}

	if changed {
		uc.settings.Set(userID, userSettings)
		uc.logger.Debug().Int64("user_id", userID).Str("action", action).Msg("Settings updated")
	}

	return &dto.SettingsActionResponse{
		Settings: userSettings,
		Text:     settingsText(userSettings),
		Changed:  changed,
	}, nil
}

// parseToggle parses the 0/1 suffix of link and file actions
func parseToggle(value string) (bool, error) {
	switch value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, mediaerrors.ErrInvalidAction
	}
}

// settingsText renders the current settings for the settings message
func settingsText(s entities.UserSettings) string {
	quality := "Best"
	if s.VideoQuality != entities.QualityBest {
		quality = string(s.VideoQuality) + "p"
	}

	return fmt.Sprintf(
		"Current settings:\nVideo quality: %s\nSource link in caption: %s\nSend videos: %s",
		quality, onOff(s.AddLink), asFileLabel(s.SendAsFile))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func asFileLabel(asFile bool) string {
	if asFile {
		return "as file"
	}
	return "as video"
}

// cacheKey identifies a source URL variant. Quality and the
// video-vs-file choice change the uploaded object, so they are part
// of the key.
func cacheKey(url string, s entities.UserSettings) string {
	key := url + "|" + string(s.VideoQuality)
	if s.SendAsFile {
		key += "|file"
	}
	return key
}
