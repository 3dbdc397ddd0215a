package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("CACHE_CHAT_ID", "-1001234567890")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Telegram.BotToken)
	assert.Equal(t, int64(-1001234567890), cfg.Telegram.CacheChatID)
	assert.Equal(t, 49, cfg.Media.MaxFileSizeMB)
	assert.Equal(t, int64(49_000_000), cfg.Media.MaxFileSizeBytes())
	assert.Equal(t, "yt-dlp", cfg.Media.YTDLPPath)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("CACHE_CHAT_ID", "-100123")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_MissingCacheChatID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("CACHE_CHAT_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_CHAT_ID")
}

func TestLoad_BadCacheChatID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("CACHE_CHAT_ID", "@my_channel")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_CHAT_ID must be an integer")
}

func TestLoad_MaxFileSize(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMB  int
		wantErr bool
	}{
		{name: "Custom limit", value: "20", wantMB: 20},
		{name: "Zero is rejected", value: "0", wantErr: true},
		{name: "Negative is rejected", value: "-5", wantErr: true},
		{name: "Non-numeric is rejected", value: "big", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("MAX_FILE_SIZE_MB", tt.value)

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMB, cfg.Media.MaxFileSizeMB)
			assert.Equal(t, int64(tt.wantMB)*1_000_000, cfg.Media.MaxFileSizeBytes())
		})
	}
}

func TestLoad_CacheBackend(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "Memory", value: "memory", want: CacheBackendMemory},
		{name: "SQLite", value: "sqlite", want: CacheBackendSQLite},
		{name: "Redis uppercased", value: "REDIS", want: CacheBackendRedis},
		{name: "Unknown backend", value: "mongodb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("CACHE_BACKEND", tt.value)

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "CACHE_BACKEND")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Cache.Backend)
		})
	}
}

func TestOut_ProvidesAllSections(t *testing.T) {
	setRequired(t)

	result, err := Out()
	require.NoError(t, err)

	require.NotNil(t, result.Config)
	assert.Equal(t, &result.Config.Telegram, result.Telegram)
	assert.Equal(t, &result.Config.Media, result.Media)
	assert.Equal(t, &result.Config.Cache, result.Cache)
	assert.Equal(t, &result.Config.Logging, result.Logging)
}
