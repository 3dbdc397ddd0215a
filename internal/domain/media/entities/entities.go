// Package entities contains domain entities
package entities

import (
	"path/filepath"
	"strings"
	"time"
)

// Platform identifies a supported media source
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// MediaRequest represents a single URL to resolve, created per query
type MediaRequest struct {
	SourceURL string
	Platform  Platform
}

// MediaKind represents how a file is sent to Telegram
type MediaKind string

const (
	MediaKindImage    MediaKind = "image"
	MediaKindVideo    MediaKind = "video"
	MediaKindDocument MediaKind = "document"
)

// MediaAsset represents a downloaded media file, owned by a single request
type MediaAsset struct {
	LocalPath       string
	TempDir         string
	SizeBytes       int64
	MimeType        string
	DurationSeconds float64
	Kind            MediaKind
}

// FileRef is a reusable Telegram file reference obtained after an upload
type FileRef struct {
	FileID string
	Kind   MediaKind
}

// CacheEntry maps a source URL variant to a cached Telegram file reference
type CacheEntry struct {
	Key       string
	FileID    string
	Kind      MediaKind
	CreatedAt time.Time
}

// VideoQuality is the requested video quality ceiling
type VideoQuality string

const (
	QualityBest VideoQuality = "best"
	Quality720  VideoQuality = "720"
	Quality480  VideoQuality = "480"
)

// UserSettings holds per-user delivery preferences
type UserSettings struct {
	VideoQuality VideoQuality
	AddLink      bool
	SendAsFile   bool
}

// DefaultSettings returns the settings applied to users who never changed them
func DefaultSettings() UserSettings {
	return UserSettings{
		VideoQuality: QualityBest,
		AddLink:      true,
		SendAsFile:   false,
	}
}

// DownloadOptions carries extraction parameters derived from config and settings
type DownloadOptions struct {
	Quality      VideoQuality
	MaxSizeBytes int64
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".bmp": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".m4v": true, ".webm": true, ".mkv": true, ".avi": true, ".gif": true,
}

// KindForPath classifies a downloaded file by its extension
func KindForPath(path string) MediaKind {
	ext := strings.ToLower(filepath.Ext(path))
	if imageExtensions[ext] {
		return MediaKindImage
	}
	if videoExtensions[ext] {
		return MediaKindVideo
	}
	return MediaKindDocument
}
