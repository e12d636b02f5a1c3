package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/AzSumToshko/youtube-to-mp3/internal/metadata"
)

// DownloadError reports a failed download/convert attempt. It carries
// the tail of yt-dlp's stderr so the failure report can say why the
// source was unusable (unavailable, private, region-locked...).
type DownloadError struct {
	URL    string
	Err    error
	Output string
}

func (e *DownloadError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("downloading %s: %v: %s", e.URL, e.Err, e.Output)
	}
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// DependencyReport lists the external binaries the downloader needs.
type DependencyReport struct {
	YTDLPFound  bool
	YTDLPPath   string
	FFmpegFound bool
	FFmpegPath  string
}

// DependencyStatus probes PATH for yt-dlp and ffmpeg.
func DependencyStatus() DependencyReport {
	report := DependencyReport{}
	if path, err := exec.LookPath("yt-dlp"); err == nil {
		report.YTDLPFound = true
		report.YTDLPPath = path
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		report.FFmpegFound = true
		report.FFmpegPath = path
	}
	return report
}

// CheckDependencies returns an error naming any missing binary. Run this
// before the batch loop; a missing dependency is fatal, not a per-item
// failure.
func CheckDependencies() error {
	report := DependencyStatus()
	if !report.YTDLPFound {
		return fmt.Errorf("missing dependency: yt-dlp is not installed or not on PATH")
	}
	if !report.FFmpegFound {
		return fmt.Errorf("missing dependency: ffmpeg is required for MP3 conversion and was not found on PATH")
	}
	return nil
}

// Downloader invokes yt-dlp to fetch a URL's audio as MP3.
type Downloader struct {
	binary       string
	audioQuality string
}

// NewDownloader creates a Downloader. audioQuality is passed to yt-dlp's
// --audio-quality (e.g. "192K"); empty falls back to "192K".
func NewDownloader(audioQuality string) *Downloader {
	if audioQuality == "" {
		audioQuality = "192K"
	}
	return &Downloader{
		binary:       "yt-dlp",
		audioQuality: audioQuality,
	}
}

// Fetch downloads the URL's audio into workDir as MP3 and returns the
// file path plus the raw metadata record yt-dlp printed.
//
// workDir should be a per-item temporary directory owned by the caller.
// The returned metadata may be nil when yt-dlp produced a playable file
// but its info JSON could not be parsed; the normalizer tolerates that.
func (d *Downloader) Fetch(ctx context.Context, url, workDir string) (string, *metadata.RawInfo, error) {
	args := []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", d.audioQuality,
		"--no-playlist",
		"--print-json",
		"--no-progress",
		"--no-colors",
		"--output", filepath.Join(workDir, "%(title)s.%(ext)s"),
		url,
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", nil, &DownloadError{URL: url, Err: err, Output: tail(stderr.String())}
	}

	mp3Path, err := findMP3(workDir)
	if err != nil {
		return "", nil, &DownloadError{URL: url, Err: err, Output: tail(stderr.String())}
	}

	return mp3Path, extractInfoJSON(stdout.Bytes()), nil
}

// extractInfoJSON pulls the info record out of yt-dlp's stdout.
// --print-json emits one JSON document per downloaded item; with
// --no-playlist there is exactly one. Returns nil when no line parses.
func extractInfoJSON(stdout []byte) *metadata.RawInfo {
	for _, line := range bytes.Split(stdout, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		if info, err := metadata.ParseRawInfo(line); err == nil {
			return info
		}
	}
	return nil
}

// findMP3 locates the single MP3 yt-dlp produced in workDir.
func findMP3(workDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(workDir, "*.mp3"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no MP3 file produced in %s", workDir)
	}
	return matches[0], nil
}

// tail returns the last few lines of process output, enough for a
// failure record without dumping the whole log.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " | ")
}
