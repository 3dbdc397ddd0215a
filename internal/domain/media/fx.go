// Package media contains the media download domain module
package media

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/tgmedia-bot/config"
	telegramDelivery "github.com/Conte777/tgmedia-bot/internal/domain/media/delivery/telegram"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/deps"
	cacheRepo "github.com/Conte777/tgmedia-bot/internal/domain/media/repository/cache"
	settingsRepo "github.com/Conte777/tgmedia-bot/internal/domain/media/repository/settings"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/repository/ytdlp"
	"github.com/Conte777/tgmedia-bot/internal/domain/media/usecase/buissines"
	"github.com/Conte777/tgmedia-bot/internal/infrastructure/telegram"
)

// Module provides media domain components for fx dependency injection
var Module = fx.Module("media",
	// Repository
	fx.Provide(provideCacheRepository),
	fx.Provide(provideSettingsRepository),
	fx.Provide(provideExtractor),

	// UseCase
	fx.Provide(buissines.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

// provideCacheRepository selects the cache store backend from config
func provideCacheRepository(cfg *config.CacheConfig, logger zerolog.Logger) (deps.CacheRepository, error) {
	storeLogger := logger.With().Str("component", "cache-store").Logger()

	switch cfg.Backend {
	case config.CacheBackendSQLite:
		return cacheRepo.NewSQLiteStore(cfg.DBPath, storeLogger)
	case config.CacheBackendRedis:
		return cacheRepo.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, storeLogger), nil
	case config.CacheBackendMemory:
		return cacheRepo.NewMemoryStore(storeLogger), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// provideSettingsRepository creates the per-user settings store
func provideSettingsRepository() deps.SettingsRepository {
	return settingsRepo.NewMemoryStore()
}

// provideExtractor creates the yt-dlp extractor
func provideExtractor(cfg *config.MediaConfig, logger zerolog.Logger) deps.Extractor {
	return ytdlp.New(cfg.YTDLPPath, cfg.CookiesFile, logger.With().Str("component", "ytdlp").Logger())
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(uc *buissines.UseCase, bot *telegram.Bot, cfg *config.TelegramConfig, logger zerolog.Logger) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), cfg.CacheChatID, logger)
}

// wireAndRegister resolves cyclic dependency and registers routes
func wireAndRegister(
	lc fx.Lifecycle,
	uc *buissines.UseCase,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
	cache deps.CacheRepository,
) {
	// Handlers implements deps.TelegramSender interface
	// This resolves the cyclic dependency: UseCase -> TelegramSender <- Handlers -> UseCase
	uc.SetSender(handlers)

	// Register Telegram routes
	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return cache.Close()
		},
	})
}
