// Package ytdlp resolves media URLs by shelling out to the yt-dlp binary
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/tgmedia-bot/internal/domain/media/errors"
)

// Timeouts bound a single extraction so one request cannot hold a
// worker slot indefinitely
const (
	ProbeTimeout    = 60 * time.Second
	DownloadTimeout = 10 * time.Minute
)

// outputTemplate keeps downloads inside the per-request temp dir
const outputTemplate = "media.%(ext)s"

// Extractor invokes yt-dlp for probing and downloading
type Extractor struct {
	binPath     string
	cookiesFile string
	logger      zerolog.Logger
}

// New creates a yt-dlp backed extractor
func New(binPath, cookiesFile string, logger zerolog.Logger) *Extractor {
	return &Extractor{
		binPath:     binPath,
		cookiesFile: cookiesFile,
		logger:      logger,
	}
}

// probeInfo is the subset of `yt-dlp -J` output the extractor needs
type probeInfo struct {
	Filesize       int64       `json:"filesize"`
	FilesizeApprox int64       `json:"filesize_approx"`
	Duration       float64     `json:"duration"`
	Ext            string      `json:"ext"`
	Entries        []probeInfo `json:"entries"`
}

// reportedSize returns the best size estimate the probe produced, 0 if unknown
func (p *probeInfo) reportedSize() int64 {
	if p.Filesize > 0 {
		return p.Filesize
	}
	return p.FilesizeApprox
}

// Resolve implements deps.Extractor. It probes first and rejects
// oversized media before any bytes are downloaded.
func (e *Extractor) Resolve(ctx context.Context, req entities.MediaRequest, opts entities.DownloadOptions) (*entities.MediaAsset, error) {
	info, err := e.probe(ctx, req.SourceURL, opts)
	if err != nil {
		return nil, err
	}

	if size := info.reportedSize(); exceedsLimit(size, opts.MaxSizeBytes) {
		return nil, fmt.Errorf("%w: reported %d bytes, limit %d bytes",
			mediaerrors.ErrSizeExceeded, size, opts.MaxSizeBytes)
	}

	return e.download(ctx, req.SourceURL, opts, info)
}

// probe fetches metadata without downloading
func (e *Extractor) probe(ctx context.Context, url string, opts entities.DownloadOptions) (*probeInfo, error) {
	pctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	args := append(e.probeArgs(opts), url)
	cmd := exec.CommandContext(pctx, e.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug().Str("url", url).Msg("Probing media")

	if err := cmd.Run(); err != nil {
		return nil, e.classifyRunError(url, err, stderr.String())
	}

	var info probeInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("%w: unreadable probe output", mediaerrors.ErrExtractionFailed)
	}

	// Playlists are disabled, but some extractors still wrap a single
	// item in an entries list
	if len(info.Entries) > 0 {
		info = info.Entries[0]
	}

	return &info, nil
}

// download runs yt-dlp into a fresh temp dir and locates the result
func (e *Extractor) download(ctx context.Context, url string, opts entities.DownloadOptions, info *probeInfo) (*entities.MediaAsset, error) {
	tmpDir, err := os.MkdirTemp("", "tgmedia_")
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create temp dir", mediaerrors.ErrExtractionFailed)
	}

	dctx, cancel := context.WithTimeout(ctx, DownloadTimeout)
	defer cancel()

	args := append(e.downloadArgs(tmpDir, opts), url)
	cmd := exec.CommandContext(dctx, e.binPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.logger.Info().Str("url", url).Msg("Downloading media")

	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, e.classifyRunError(url, err, stderr.String())
	}

	localPath, err := locateDownload(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	stat, err := os.Stat(localPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("%w: downloaded file not found", mediaerrors.ErrExtractionFailed)
	}

	// Probe sizes can be approximate, re-check the real file
	if exceedsLimit(stat.Size(), opts.MaxSizeBytes) {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("%w: downloaded %d bytes, limit %d bytes",
			mediaerrors.ErrSizeExceeded, stat.Size(), opts.MaxSizeBytes)
	}

	return &entities.MediaAsset{
		LocalPath:       localPath,
		TempDir:         tmpDir,
		SizeBytes:       stat.Size(),
		MimeType:        mimeForPath(localPath),
		DurationSeconds: info.Duration,
		Kind:            entities.KindForPath(localPath),
	}, nil
}

// probeArgs builds the metadata-only invocation
func (e *Extractor) probeArgs(opts entities.DownloadOptions) []string {
	args := []string{
		"-J",
		"--no-playlist",
		"--no-warnings",
		"-f", formatFor(opts.Quality, ffmpegAvailable()),
	}
	if e.cookiesFile != "" {
		args = append(args, "--cookies", e.cookiesFile)
	}
	return args
}

// downloadArgs builds the download invocation
func (e *Extractor) downloadArgs(tmpDir string, opts entities.DownloadOptions) []string {
	haveFFmpeg := ffmpegAvailable()

	args := []string{
		"-o", filepath.Join(tmpDir, outputTemplate),
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--max-filesize", strconv.FormatInt(opts.MaxSizeBytes, 10),
		"-f", formatFor(opts.Quality, haveFFmpeg),
	}
	if haveFFmpeg {
		args = append(args, "--merge-output-format", "mp4")
	}
	if e.cookiesFile != "" {
		args = append(args, "--cookies", e.cookiesFile)
	}
	return args
}

// formatFor picks the yt-dlp format string. Merging separate video and
// audio streams requires ffmpeg; without it only ready-made single-file
// formats are requested.
func formatFor(quality entities.VideoQuality, haveFFmpeg bool) string {
	if haveFFmpeg {
		switch quality {
		case entities.Quality720:
			return "bv*[height<=720]+ba/b[height<=720]/best[height<=720]"
		case entities.Quality480:
			return "bv*[height<=480]+ba/b[height<=480]/best[height<=480]"
		default:
			return "bv*+ba/best"
		}
	}

	switch quality {
	case entities.Quality720:
		return "best[height<=720]/best"
	case entities.Quality480:
		return "best[height<=480]/best"
	default:
		return "best"
	}
}

// exceedsLimit reports whether size is known and above the ceiling
func exceedsLimit(size, limit int64) bool {
	return size > 0 && limit > 0 && size > limit
}

// ffmpegAvailable checks whether ffmpeg is on PATH
func ffmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// locateDownload finds the produced media file inside the temp dir
func locateDownload(tmpDir string) (string, error) {
	dirEntries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", fmt.Errorf("%w: downloaded file not found", mediaerrors.ErrExtractionFailed)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".part") {
			continue
		}
		return filepath.Join(tmpDir, entry.Name()), nil
	}

	return "", fmt.Errorf("%w: downloaded file not found", mediaerrors.ErrExtractionFailed)
}

// notFoundMarkers are yt-dlp messages indicating removed or private content
var notFoundMarkers = []string{
	"video unavailable",
	"this video is unavailable",
	"private video",
	"private account",
	"http error 404",
	"http error 410",
	"no video formats found",
	"content is not available",
}

// classifyRunError maps a yt-dlp failure to the domain error taxonomy
func (e *Extractor) classifyRunError(url string, err error, stderr string) error {
	lower := strings.ToLower(stderr)

	for _, marker := range notFoundMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: %s", mediaerrors.ErrNotFound, url)
		}
	}

	if strings.Contains(lower, "larger than max-filesize") {
		return fmt.Errorf("%w: %s", mediaerrors.ErrSizeExceeded, url)
	}

	e.logger.Error().Err(err).Str("url", url).Str("stderr", firstLine(stderr)).Msg("yt-dlp failed")
	return fmt.Errorf("%w: %s", mediaerrors.ErrExtractionFailed, url)
}

// firstLine trims stderr down to something loggable
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// mimeForPath guesses the mime type from the file extension
func mimeForPath(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
