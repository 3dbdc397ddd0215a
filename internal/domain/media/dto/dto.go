// Package dto contains data transfer objects for the media domain
package dto

import "github.com/Conte777/tgmedia-bot/internal/domain/media/entities"

// StartCommandRequest represents a request to handle /start command
type StartCommandRequest struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// CommandResponse represents a response for bot commands
type CommandResponse struct {
	Message string `json:"message"`
}

// InlineQueryRequest represents an incoming inline query
type InlineQueryRequest struct {
	QueryID string `json:"queryId"`
	UserID  int64  `json:"userId"`
	Query   string `json:"query"`
}

// InlineQueryResponse describes the single inline article to offer.
// Placeholder is true only for valid supported URLs: the article then
// carries a no-op keyboard so Telegram assigns an inline_message_id.
type InlineQueryResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MessageText string `json:"messageText"`
	Placeholder bool   `json:"placeholder"`
}

// ChosenResultRequest represents a chosen inline result to deliver
type ChosenResultRequest struct {
	UserID          int64  `json:"userId"`
	InlineMessageID string `json:"inlineMessageId"`
	Query           string `json:"query"`
}

// DirectLinkRequest represents a URL sent to the bot in a private chat
type DirectLinkRequest struct {
	UserID int64  `json:"userId"`
	ChatID int64  `json:"chatId"`
	Text   string `json:"text"`
}

// SettingsResponse represents the current settings view for a user
type SettingsResponse struct {
	Settings entities.UserSettings `json:"settings"`
	Text     string                `json:"text"`
}

// SettingsActionResponse represents the outcome of a settings button press
type SettingsActionResponse struct {
	Settings entities.UserSettings `json:"settings"`
	Text     string                `json:"text"`
	Changed  bool                  `json:"changed"`
}
