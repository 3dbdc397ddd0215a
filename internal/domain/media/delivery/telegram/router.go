// Package telegram contains Telegram delivery layer
package telegram

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	// Commands
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, consts.CommandStart, tgbot.MatchTypeExact, r.handlers.HandleStart)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, consts.CommandSettings, tgbot.MatchTypeExact, r.handlers.HandleSettings)

	// Settings keyboard callbacks
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackNoop, tgbot.MatchTypeExact, r.handlers.HandleNoopCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackQualityPrefix, tgbot.MatchTypePrefix, r.handlers.HandleSettingsCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackLinkPrefix, tgbot.MatchTypePrefix, r.handlers.HandleSettingsCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackFilePrefix, tgbot.MatchTypePrefix, r.handlers.HandleSettingsCallback)

	// Inline pipeline
	bot.RegisterHandlerMatchFunc(MatchInlineQuery, r.handlers.HandleInlineQuery)
	bot.RegisterHandlerMatchFunc(MatchChosenInlineResult, r.handlers.HandleChosenInlineResult)

	// Direct links in private chats
	bot.RegisterHandlerMatchFunc(MatchDirectMessage, r.handlers.HandleDirectMessage)

	r.logger.Info().Msg("All Telegram handlers registered successfully")
}
