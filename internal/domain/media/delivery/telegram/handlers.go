// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/consts"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/dto"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/usecase/buissines"
)

// Constants for Telegram API
const (
	RequestTimeout = 30 * time.Second
	UploadTimeout  = 2 * time.Minute
	// DeliverTimeout bounds a whole chosen-result pipeline: probe,
	// download and upload
	DeliverTimeout = 15 * time.Minute
)

// Handlers contains Telegram update handlers
// Implements deps.TelegramSender interface
type Handlers struct {
	uc          *buissines.UseCase
	bot         *tgbot.Bot
	cacheChatID int64
	logger      zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, bot *tgbot.Bot, cacheChatID int64, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:          uc,
		bot:         bot,
		cacheChatID: cacheChatID,
		logger:      logger,
	}
}

// UploadToCacheChat implements deps.TelegramSender interface.
// The media is sent to the cache chat only to obtain a reusable
// file_id; the requesting chat never sees this message.
func (h *Handlers) UploadToCacheChat(ctx context.Context, asset *entities.MediaAsset, asDocument bool) (entities.FileRef, error) {
	file, err := os.Open(asset.LocalPath)
	if err != nil {
		return entities.FileRef{}, fmt.Errorf("failed to open downloaded file: %w", err)
	}
	defer file.Close()

	upCtx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	input := &models.InputFileUpload{Filename: filepath.Base(asset.LocalPath), Data: file}

	kind := asset.Kind
	if asDocument && kind == entities.MediaKindVideo {
		kind = entities.MediaKindDocument
	}

	var msg *models.Message
	switch kind {
	case entities.MediaKindImage:
		msg, err = h.bot.SendPhoto(upCtx, &tgbot.SendPhotoParams{
			ChatID: h.cacheChatID,
			Photo:  input,
		})
	case entities.MediaKindVideo:
		msg, err = h.bot.SendVideo(upCtx, &tgbot.SendVideoParams{
			ChatID:            h.cacheChatID,
			Video:             input,
			SupportsStreaming: true,
		})
	default:
		msg, err = h.bot.SendDocument(upCtx, &tgbot.SendDocumentParams{
			ChatID:                      h.cacheChatID,
			Document:                    input,
			DisableContentTypeDetection: true,
		})
	}
	if err != nil {
		return entities.FileRef{}, fmt.Errorf("failed to upload to cache chat: %w", err)
	}

	fileID := extractFileID(msg, kind)
	if fileID == "" {
		return entities.FileRef{}, fmt.Errorf("cache chat response carried no file_id")
	}

	h.logger.Debug().
		Str("file_id", fileID).
		Str("kind", string(kind)).
		Int64("size_bytes", asset.SizeBytes).
		Msg("Media uploaded to cache chat")

	return entities.FileRef{FileID: fileID, Kind: kind}, nil
}

// extractFileID extracts the file_id from the cache chat message
func extractFileID(msg *models.Message, kind entities.MediaKind) string {
	if msg == nil {
		return ""
	}

	switch kind {
	case entities.MediaKindImage:
		// Photo array contains multiple sizes, take the largest (last one)
		if len(msg.Photo) > 0 {
			return msg.Photo[len(msg.Photo)-1].FileID
		}
	case entities.MediaKindVideo:
		if msg.Video != nil {
			return msg.Video.FileID
		}
	default:
		if msg.Document != nil {
			return msg.Document.FileID
		}
	}

	return ""
}

// EditInlineText implements deps.TelegramSender interface
func (h *Handlers) EditInlineText(ctx context.Context, inlineMessageID, text string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
		InlineMessageID: inlineMessageID,
		Text:            text,
	})
	return err
}

// EditInlineMedia implements deps.TelegramSender interface
func (h *Handlers) EditInlineMedia(ctx context.Context, inlineMessageID string, ref entities.FileRef, caption string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageMedia(msgCtx, &tgbot.EditMessageMediaParams{
		InlineMessageID: inlineMessageID,
		Media:           inputMediaFor(ref, caption),
	})
	return err
}

// SendStatusMessage implements deps.TelegramSender interface
func (h *Handlers) SendStatusMessage(ctx context.Context, chatID int64, text string) (int, error) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	msg, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// EditChatText implements deps.TelegramSender interface
func (h *Handlers) EditChatText(ctx context.Context, chatID int64, messageID int, text string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	return err
}

// EditChatMedia implements deps.TelegramSender interface
func (h *Handlers) EditChatMedia(ctx context.Context, chatID int64, messageID int, ref entities.FileRef, caption string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageMedia(msgCtx, &tgbot.EditMessageMediaParams{
		ChatID:    chatID,
		MessageID: messageID,
		Media:     inputMediaFor(ref, caption),
	})
	return err
}

// inputMediaFor builds the InputMedia referencing an already cached file
func inputMediaFor(ref entities.FileRef, caption string) models.InputMedia {
	switch ref.Kind {
	case entities.MediaKindImage:
		return &models.InputMediaPhoto{Media: ref.FileID, Caption: caption}
	case entities.MediaKindVideo:
		return &models.InputMediaVideo{Media: ref.FileID, Caption: caption, SupportsStreaming: true}
	default:
		return &models.InputMediaDocument{Media: ref.FileID, Caption: caption, DisableContentTypeDetection: true}
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	resp, err := h.uc.HandleStart(ctx, &dto.StartCommandRequest{
		UserID:   userID,
		Username: update.Message.From.Username,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to handle /start")
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
}

// HandleSettings handles /settings command, private chats only
func (h *Handlers) HandleSettings(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message.Chat.Type != "private" || update.Message.From == nil {
		return
	}

	view := h.uc.HandleSettingsView(update.Message.From.ID)

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        view.Text,
		ReplyMarkup: settingsKeyboard(view.Settings),
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", update.Message.From.ID).Msg("Failed to send settings")
	}
}

// HandleNoopCallback answers the placeholder keyboard button
func (h *Handlers) HandleNoopCallback(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.answerCallback(ctx, update.CallbackQuery.ID, "", false)
}

// HandleSettingsCallback handles the settings keyboard buttons
func (h *Handlers) HandleSettingsCallback(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	userID := cb.From.ID

	result, err := h.uc.ApplySettingsAction(userID, cb.Data)
	if err != nil {
		h.answerCallback(ctx, cb.ID, "Unknown action", true)
		return
	}

	if result.Changed && cb.Message.Message != nil {
		msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()

		_, err := h.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
			ChatID:      cb.Message.Message.Chat.ID,
			MessageID:   cb.Message.Message.ID,
			Text:        result.Text,
			ReplyMarkup: settingsKeyboard(result.Settings),
		})
		if err != nil {
			h.logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to refresh settings message")
		}
	}

	answer := "Settings saved"
	if !result.Changed {
		answer = "Already selected"
	}
	h.answerCallback(ctx, cb.ID, answer, false)
}

// HandleInlineQuery answers an inline query with a single article.
// For valid URLs the article is a placeholder carrying a no-op
// keyboard: Telegram provides an inline_message_id only when
// reply_markup is present.
func (h *Handlers) HandleInlineQuery(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	query := update.InlineQuery

	var userID int64
	if query.From != nil {
		userID = query.From.ID
	}

	resp := h.uc.HandleInlineQuery(ctx, &dto.InlineQueryRequest{
		QueryID: query.ID,
		UserID:  userID,
		Query:   query.Query,
	})

	article := &models.InlineQueryResultArticle{
		ID:          uuid.NewString(),
		Title:       resp.Title,
		Description: resp.Description,
		InputMessageContent: &models.InputTextMessageContent{
			MessageText: resp.MessageText,
		},
	}
	if resp.Placeholder {
		article.ReplyMarkup = models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "...", CallbackData: consts.CallbackNoop}},
			},
		}
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.AnswerInlineQuery(msgCtx, &tgbot.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       []models.InlineQueryResult{article},
		IsPersonal:    true,
		CacheTime:     0,
	})
	if err != nil {
		// Nothing else to do, the query expires on Telegram's side
		h.logger.Warn().Err(err).Str("query", query.Query).Msg("Failed to answer inline query")
	}
}

// HandleChosenInlineResult starts the download pipeline for a chosen
// placeholder. Runs in the background so the update loop stays free.
func (h *Handlers) HandleChosenInlineResult(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	chosen := update.ChosenInlineResult
	// Without an inline_message_id the placeholder can never be edited
	if chosen.InlineMessageID == "" {
		return
	}

	req := &dto.ChosenResultRequest{
		UserID:          chosen.From.ID,
		InlineMessageID: chosen.InlineMessageID,
		Query:           chosen.Query,
	}

	go func() {
		deliverCtx, cancel := context.WithTimeout(context.Background(), DeliverTimeout)
		defer cancel()

		if err := h.uc.DeliverInline(deliverCtx, req); err != nil {
			h.logger.Error().Err(err).Str("query", chosen.Query).Msg("Inline delivery finished with error")
		}
	}()
}

// HandleDirectMessage handles non-command private chat text
func (h *Handlers) HandleDirectMessage(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil {
		return
	}

	deliverCtx, cancel := context.WithTimeout(ctx, DeliverTimeout)
	defer cancel()

	err := h.uc.DeliverDirectLink(deliverCtx, &dto.DirectLinkRequest{
		UserID: msg.From.ID,
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Direct delivery finished with error")
	}
}

// MatchInlineQuery matches inline query updates
func MatchInlineQuery(update *models.Update) bool {
	return update.InlineQuery != nil
}

// MatchChosenInlineResult matches chosen inline result updates
func MatchChosenInlineResult(update *models.Update) bool {
	return update.ChosenInlineResult != nil
}

// MatchDirectMessage matches non-command private chat text messages
func MatchDirectMessage(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Text != "" &&
		!strings.HasPrefix(update.Message.Text, "/") &&
		update.Message.Chat.Type == "private"
}

// sendResponse sends a plain text response
func (h *Handlers) sendResponse(ctx context.Context, chatID int64, text string) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// answerCallback acknowledges a callback query
func (h *Handlers) answerCallback(ctx context.Context, callbackID, text string, showAlert bool) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.AnswerCallbackQuery(msgCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer callback query")
	}
}

// settingsKeyboard builds the settings inline keyboard
func settingsKeyboard(s entities.UserSettings) models.InlineKeyboardMarkup {
	return models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{
					Text:         checked(s.VideoQuality == entities.QualityBest, "Best"),
					CallbackData: consts.CallbackQualityPrefix + string(entities.QualityBest),
				},
				{
					Text:         checked(s.VideoQuality == entities.Quality720, "720p"),
					CallbackData: consts.CallbackQualityPrefix + string(entities.Quality720),
				},
				{
					Text:         checked(s.VideoQuality == entities.Quality480, "480p"),
					CallbackData: consts.CallbackQualityPrefix + string(entities.Quality480),
				},
			},
			{
				{Text: checked(s.AddLink, "Link: on"), CallbackData: consts.CallbackLinkPrefix + "1"},
				{Text: checked(!s.AddLink, "Link: off"), CallbackData: consts.CallbackLinkPrefix + "0"},
			},
			{
				{Text: checked(!s.SendAsFile, "Send: video"), CallbackData: consts.CallbackFilePrefix + "0"},
				{Text: checked(s.SendAsFile, "Send: file"), CallbackData: consts.CallbackFilePrefix + "1"},
			},
		},
	}
}

// checked prefixes the selected option with a check mark
func checked(selected bool, label string) string {
	if selected {
		return "✅ " + label
	}
	return label
}
