// Package link extracts and validates media URLs from raw query text
package link

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/tgmedia-bot/internal/domain/media/errors"
)

var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// platformByDomain maps a hostname (or any of its subdomains) to a platform
var platformByDomain = map[string]entities.Platform{
	"instagram.com": entities.PlatformInstagram,
	"instagr.am":    entities.PlatformInstagram,
	"tiktok.com":    entities.PlatformTikTok,
	"youtube.com":   entities.PlatformYouTube,
	"youtu.be":      entities.PlatformYouTube,
}

// Extract returns the first URL found in text, or empty string.
// Trailing punctuation from surrounding prose is trimmed.
func Extract(text string) string {
	raw := urlPattern.FindString(text)
	for len(raw) > 0 && strings.ContainsRune(").,", rune(raw[len(raw)-1])) {
		raw = raw[:len(raw)-1]
	}
	return raw
}

// DetectPlatform matches the URL hostname against the supported platforms
func DetectPlatform(rawURL string) (entities.Platform, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", false
	}

	for domain, platform := range platformByDomain {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return platform, true
		}
	}

	return "", false
}

// ParseQuery turns raw query text into a MediaRequest.
// Returns ErrInvalidURL when no URL is present and ErrUnsupportedPlatform
// when the URL does not belong to Instagram, TikTok or YouTube.
func ParseQuery(text string) (entities.MediaRequest, error) {
	rawURL := Extract(text)
	if rawURL == "" {
		return entities.MediaRequest{}, mediaerrors.ErrInvalidURL
	}

	platform, ok := DetectPlatform(rawURL)
	if !ok {
		return entities.MediaRequest{}, mediaerrors.ErrUnsupportedPlatform
	}

	return entities.MediaRequest{SourceURL: rawURL, Platform: platform}, nil
}
