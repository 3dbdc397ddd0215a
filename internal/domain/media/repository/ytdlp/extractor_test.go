package ytdlp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/tgmedia-bot/internal/domain/media/errors"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name       string
		quality    entities.VideoQuality
		haveFFmpeg bool
		want       string
	}{
		{
			name:       "Best with ffmpeg merges streams",
			quality:    entities.QualityBest,
			haveFFmpeg: true,
			want:       "bv*+ba/best",
		},
		{
			name:       "720p with ffmpeg",
			quality:    entities.Quality720,
			haveFFmpeg: true,
			want:       "bv*[height<=720]+ba/b[height<=720]/best[height<=720]",
		},
		{
			name:       "480p with ffmpeg",
			quality:    entities.Quality480,
			haveFFmpeg: true,
			want:       "bv*[height<=480]+ba/b[height<=480]/best[height<=480]",
		},
		{
			name:    "Best without ffmpeg",
			quality: entities.QualityBest,
			want:    "best",
		},
		{
			name:    "720p without ffmpeg avoids merging",
			quality: entities.Quality720,
			want:    "best[height<=720]/best",
		},
		{
			name:    "480p without ffmpeg avoids merging",
			quality: entities.Quality480,
			want:    "best[height<=480]/best",
		},
		{
			name:       "Unknown quality falls back to best",
			quality:    entities.VideoQuality("1080"),
			haveFFmpeg: true,
			want:       "bv*+ba/best",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFor(tt.quality, tt.haveFFmpeg))
		})
	}
}

func TestExceedsLimit(t *testing.T) {
	tests := []struct {
		name  string
		size  int64
		limit int64
		want  bool
	}{
		{name: "Under limit", size: 48_999_999, limit: 49_000_000, want: false},
		{name: "Exactly at limit", size: 49_000_000, limit: 49_000_000, want: false},
		{name: "One byte over", size: 49_000_001, limit: 49_000_000, want: true},
		{name: "Unknown size never rejects", size: 0, limit: 49_000_000, want: false},
		{name: "No limit configured", size: 100_000_000, limit: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exceedsLimit(tt.size, tt.limit))
		})
	}
}

func TestReportedSize(t *testing.T) {
	t.Run("Exact size preferred", func(t *testing.T) {
		info := probeInfo{Filesize: 100, FilesizeApprox: 200}
		assert.Equal(t, int64(100), info.reportedSize())
	})

	t.Run("Approximation as fallback", func(t *testing.T) {
		info := probeInfo{FilesizeApprox: 200}
		assert.Equal(t, int64(200), info.reportedSize())
	})

	t.Run("Unknown", func(t *testing.T) {
		info := probeInfo{}
		assert.Equal(t, int64(0), info.reportedSize())
	})
}

func TestProbeArgs(t *testing.T) {
	t.Run("Without cookies", func(t *testing.T) {
		e := New("yt-dlp", "", zerolog.Nop())
		args := e.probeArgs(entities.DownloadOptions{Quality: entities.QualityBest})

		assert.Contains(t, args, "-J")
		assert.Contains(t, args, "--no-playlist")
		assert.NotContains(t, args, "--cookies")
	})

	t.Run("With cookies", func(t *testing.T) {
		e := New("yt-dlp", "/etc/cookies.txt", zerolog.Nop())
		args := e.probeArgs(entities.DownloadOptions{Quality: entities.QualityBest})

		require.Contains(t, args, "--cookies")
		assert.Contains(t, args, "/etc/cookies.txt")
	})
}

func TestDownloadArgs(t *testing.T) {
	e := New("yt-dlp", "", zerolog.Nop())
	args := e.downloadArgs("/tmp/dl", entities.DownloadOptions{
		Quality:      entities.Quality720,
		MaxSizeBytes: 49_000_000,
	})

	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "--max-filesize")
	assert.Contains(t, args, "49000000")
	assert.Contains(t, args, filepath.Join("/tmp/dl", "media.%(ext)s"))
}

func TestClassifyRunError(t *testing.T) {
	e := New("yt-dlp", "", zerolog.Nop())
	runErr := errors.New("exit status 1")

	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{
			name:   "Removed video",
			stderr: "ERROR: [youtube] abc: Video unavailable",
			want:   mediaerrors.ErrNotFound,
		},
		{
			name:   "Private account",
			stderr: "ERROR: [instagram] xyz: Private account, login required",
			want:   mediaerrors.ErrNotFound,
		},
		{
			name:   "HTTP 404",
			stderr: "ERROR: unable to download: HTTP Error 404: Not Found",
			want:   mediaerrors.ErrNotFound,
		},
		{
			name:   "Aborted by max-filesize",
			stderr: "ERROR: file is larger than max-filesize (52000000 > 49000000)",
			want:   mediaerrors.ErrSizeExceeded,
		},
		{
			name:   "Anything else is an extraction failure",
			stderr: "ERROR: connection reset by peer",
			want:   mediaerrors.ErrExtractionFailed,
		},
		{
			name: "Empty stderr",
			want: mediaerrors.ErrExtractionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.classifyRunError("https://youtu.be/abc", runErr, tt.stderr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLocateDownload(t *testing.T) {
	t.Run("Finds the media file", func(t *testing.T) {
		dir := t.TempDir()
		want := filepath.Join(dir, "media.mp4")
		require.NoError(t, os.WriteFile(want, []byte("x"), 0o644))

		got, err := locateDownload(dir)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Skips partial downloads", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "media.mp4.part"), []byte("x"), 0o644))

		_, err := locateDownload(dir)
		require.ErrorIs(t, err, mediaerrors.ErrExtractionFailed)
	})

	t.Run("Skips subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "fragments"), 0o755))
		want := filepath.Join(dir, "media.webm")
		require.NoError(t, os.WriteFile(want, []byte("x"), 0o644))

		got, err := locateDownload(dir)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Empty dir", func(t *testing.T) {
		_, err := locateDownload(t.TempDir())
		require.ErrorIs(t, err, mediaerrors.ErrExtractionFailed)
	})
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "ERROR: oops", firstLine("ERROR: oops\nmore context\n"))
	assert.Equal(t, "single", firstLine("  single  "))
	assert.Equal(t, "", firstLine(""))
}

func TestMimeForPath(t *testing.T) {
	assert.Equal(t, "video/mp4", mimeForPath("/tmp/media.mp4"))
	assert.Equal(t, "application/octet-stream", mimeForPath("/tmp/media.weird"))
}
