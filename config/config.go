package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the bot
type Config struct {
	Telegram TelegramConfig
	Media    MediaConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken    string
	CacheChatID int64
}

// MediaConfig holds media extraction configuration
type MediaConfig struct {
	MaxFileSizeMB int
	CookiesFile   string
	YTDLPPath     string
}

// MaxFileSizeBytes returns the size ceiling in bytes.
// Telegram bots cannot upload files above ~50 MB, hence the 49 MB default.
func (c *MediaConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1_000_000
}

// CacheConfig holds the file-id cache store configuration
type CacheConfig struct {
	Backend       string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Supported cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
)

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Media    *MediaConfig
	Cache    *CacheConfig
	Logging  *LoggingConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Media:    &cfg.Media,
		Cache:    &cfg.Cache,
		Logging:  &cfg.Logging,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cacheChatID, err := parseCacheChatID(getEnv("CACHE_CHAT_ID", ""))
	if err != nil {
		return nil, err
	}

	maxSizeMB, err := getEnvInt("MAX_FILE_SIZE_MB", 49)
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:    getEnv("BOT_TOKEN", ""),
			CacheChatID: cacheChatID,
		},
		Media: MediaConfig{
			MaxFileSizeMB: maxSizeMB,
			CookiesFile:   getEnv("COOKIES_FILE", ""),
			YTDLPPath:     getEnv("YTDLP_PATH", "yt-dlp"),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
			DBPath:        getEnv("CACHE_DB_PATH", "tgmedia-cache.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	if c.Telegram.CacheChatID == 0 {
		return fmt.Errorf("CACHE_CHAT_ID is required (example: -1001234567890)")
	}

	if c.Media.MaxFileSizeMB <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive")
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendSQLite, CacheBackendRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, sqlite, redis")
	}

	return nil
}

// parseCacheChatID parses the cache chat id, empty input is caught by Validate
func parseCacheChatID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("CACHE_CHAT_ID must be an integer (example: -1001234567890)")
	}

	return id, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}

	return parsed, nil
}
