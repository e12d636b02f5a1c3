package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AzSumToshko/youtube-to-mp3/internal/artwork"
	"github.com/AzSumToshko/youtube-to-mp3/internal/audio"
	"github.com/AzSumToshko/youtube-to-mp3/internal/config"
	"github.com/AzSumToshko/youtube-to-mp3/internal/httpx"
	"github.com/AzSumToshko/youtube-to-mp3/internal/ioutils"
	"github.com/AzSumToshko/youtube-to-mp3/internal/metadata"
	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
	"github.com/AzSumToshko/youtube-to-mp3/internal/transfer"
	"github.com/AzSumToshko/youtube-to-mp3/internal/ytdlp"
)

// ErrNoWorkItems is returned by Run when the item list is empty. It is
// the only error Run produces; everything past that point is contained
// per item.
var ErrNoWorkItems = errors.New("no work items to process")

// ProgressLevel indicates the severity/type of a progress event.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent carries a progress update from the batch run. Verbose
// events are emitted unconditionally; consumers filter on their own
// verbosity setting.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ProgressFunc receives progress events. May be nil.
type ProgressFunc func(ProgressEvent)

// Downloader fetches one URL into workDir and returns the path of the
// produced MP3 plus the source's raw metadata (which may be nil).
// *ytdlp.Downloader satisfies it.
type Downloader interface {
	Fetch(ctx context.Context, url, workDir string) (string, *metadata.RawInfo, error)
}

// CoverResolver picks and fetches the best cover candidate, returning
// nil when no cover could be resolved. *artwork.Resolver satisfies it.
type CoverResolver interface {
	Resolve(ctx context.Context, candidates []artwork.Candidate) *model.CoverImage
}

// Embedder writes tags and cover art into an MP3 file. *audio.Tagger
// satisfies it.
type Embedder interface {
	Embed(path string, tags model.Tags, cover *model.CoverImage) error
}

// Manager orchestrates the download/tag/place pipeline for a batch of
// work items.
type Manager struct {
	settings   *config.Settings
	downloader Downloader
	resolver   CoverResolver
	embedder   Embedder
	placer     transfer.Placer
	onProgress ProgressFunc

	processed atomic.Int32
	total     atomic.Int32
}

// NewManager creates a Manager with collaborators built from settings:
// a yt-dlp downloader, an HTTP cover resolver, the ID3 tagger, and a
// local or scp placer depending on settings.RemotePlacement.
func NewManager(settings *config.Settings, onProgress ProgressFunc) *Manager {
	timeout := time.Duration(settings.CoverFetchTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = httpx.DefaultTimeout
	}

	resolver := artwork.NewResolver(httpx.NewClient(timeout), artwork.Options{
		Resize:        settings.CoverArtResize,
		MaxSize:       settings.CoverArtMaxSize,
		ConvertToJPEG: settings.ConvertCoverArtToJPG,
	})

	var placer transfer.Placer
	if settings.RemotePlacement {
		placer = transfer.NewSCPPlacer(transfer.SCPConfig{
			User:     settings.SSHUser,
			Host:     settings.SSHHost,
			Port:     settings.SSHPort,
			KeyPath:  settings.SSHKeyPath,
			BasePath: settings.RemoteBasePath,
		})
	} else {
		placer = transfer.NewLocalPlacer(settings.MusicFolder)
	}

	return NewManagerWith(settings, ytdlp.NewDownloader(settings.AudioQuality), resolver, audio.NewTagger(), placer, onProgress)
}

// NewManagerWith creates a Manager with explicit collaborators.
func NewManagerWith(settings *config.Settings, downloader Downloader, resolver CoverResolver, embedder Embedder, placer transfer.Placer, onProgress ProgressFunc) *Manager {
	return &Manager{
		settings:   settings,
		downloader: downloader,
		resolver:   resolver,
		embedder:   embedder,
		placer:     placer,
		onProgress: onProgress,
	}
}

// Progress returns how many items have finished (either way) out of the
// batch total. Safe to call from another goroutine while Run is active.
func (m *Manager) Progress() (done, total int) {
	return int(m.processed.Load()), int(m.total.Load())
}

// Run processes every work item and returns the accumulated result.
//
// Item failures never abort the batch: each failed item becomes a
// FailureRecord on the result and processing continues. Cancelling ctx
// stops new items from starting; items already finished stay in the
// result so a report can still be written.
func (m *Manager) Run(ctx context.Context, items []model.WorkItem) (*model.BatchResult, error) {
	if len(items) == 0 {
		return nil, ErrNoWorkItems
	}

	m.total.Store(int32(len(items)))
	m.processed.Store(0)
	result := model.NewBatchResult()

	limit := m.settings.MaxConcurrentDownloads
	if limit < 1 {
		limit = 1
	}

	var group errgroup.Group
	group.SetLimit(limit)

	for _, item := range items {
		item := item
		group.Go(func() error {
			if ctx.Err() == nil {
				m.processItem(ctx, item, result)
			}
			m.processed.Add(1)
			return nil
		})
	}

	// Item goroutines never return errors.
	_ = group.Wait()

	if m.settings.CreatePlaylist && !m.settings.RemotePlacement {
		m.writePlaylists(result)
	}

	m.progressf(LevelInfo, "Batch complete: %d succeeded, %d failed", result.Succeeded(), result.Failed())
	return result, nil
}

// processItem runs the full pipeline for one work item. Every failure
// path records exactly one FailureRecord and returns.
func (m *Manager) processItem(ctx context.Context, item model.WorkItem, result *model.BatchResult) {
	m.progressf(LevelInfo, "Processing %s", item.URL)

	workDir, err := os.MkdirTemp("", "yt2mp3-*")
	if err != nil {
		result.AddFailure(item.URL, item.Destination, err)
		m.progressf(LevelError, "Could not create working directory: %v", err)
		return
	}
	defer os.RemoveAll(workDir)

	mp3Path, info, err := m.downloader.Fetch(ctx, item.URL, workDir)
	if err != nil {
		result.AddFailure(item.URL, item.Destination, err)
		m.progressf(LevelError, "Download failed for %s: %v", item.URL, err)
		return
	}

	tags := model.Tags{Title: titleFromPath(mp3Path)}

	if m.settings.ModifyTags {
		tags = metadata.Normalize(info, tags.Title)

		var cover *model.CoverImage
		if m.settings.SaveCoverArtInTags && info != nil {
			cover = m.resolver.Resolve(ctx, coverCandidates(info.Thumbnails))
			if cover == nil {
				m.progressf(LevelVerbose, "No cover art resolved for %s", tags.Title)
			}
		}

		if err := m.embedder.Embed(mp3Path, tags, cover); err != nil {
			result.AddFailure(item.URL, item.Destination, err)
			m.progressf(LevelError, "Tag embedding failed for %s: %v", tags.Title, err)
			if !m.settings.KeepUntaggedOnError {
				return
			}
			// Keep the download: place the untagged file, but the item
			// still counts as failed.
			if _, placeErr := m.placer.Place(ctx, mp3Path, item.Destination); placeErr != nil {
				m.progressf(LevelWarning, "Could not keep untagged file for %s: %v", item.URL, placeErr)
			}
			return
		}
	}

	finalPath, err := m.placer.Place(ctx, mp3Path, item.Destination)
	if err != nil {
		result.AddFailure(item.URL, item.Destination, err)
		m.progressf(LevelError, "Placement failed for %s: %v", tags.Title, err)
		return
	}

	var duration float64
	if info != nil {
		duration = info.Duration
	}

	result.AddSuccess(model.DownloadedTrack{
		Title:       tags.Title,
		Artist:      tags.Artist,
		Duration:    duration,
		Path:        finalPath,
		Destination: item.Destination,
	})
	m.progressf(LevelSuccess, "Finished %s", tags.Title)
}

// writePlaylists writes one playlist per destination folder, next to the
// placed tracks. Playlist failures are warnings, never item failures.
func (m *Manager) writePlaylists(result *model.BatchResult) {
	tracks := result.Tracks()
	if len(tracks) == 0 {
		return
	}

	byDest := make(map[string][]model.DownloadedTrack)
	var order []string
	for _, track := range tracks {
		if _, seen := byDest[track.Destination]; !seen {
			order = append(order, track.Destination)
		}
		byDest[track.Destination] = append(byDest[track.Destination], track)
	}

	creator := audio.NewPlaylistCreator(playlistFormat(m.settings.PlaylistFormat), m.settings.M3UExtended)

	for _, dest := range order {
		name := ioutils.SanitizeFileName(dest)
		content := creator.Create(name, byDest[dest])
		path := filepath.Join(m.settings.MusicFolder, name, name+playlistFormat(m.settings.PlaylistFormat).Extension())
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			m.progressf(LevelWarning, "Could not write playlist for %s: %v", dest, err)
			continue
		}
		m.progressf(LevelVerbose, "Wrote playlist %s", path)
	}
}

func (m *Manager) progressf(level ProgressLevel, format string, args ...interface{}) {
	if m.onProgress == nil {
		return
	}
	m.onProgress(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
}

// coverCandidates converts the source's thumbnail list into resolver
// candidates.
func coverCandidates(thumbnails []metadata.Thumbnail) []artwork.Candidate {
	candidates := make([]artwork.Candidate, 0, len(thumbnails))
	for _, t := range thumbnails {
		candidates = append(candidates, artwork.Candidate{URL: t.URL, Width: t.Width, Height: t.Height})
	}
	return candidates
}

// titleFromPath derives a fallback title from the downloaded file name.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func playlistFormat(name string) audio.PlaylistFormat {
	if strings.EqualFold(name, "pls") {
		return audio.FormatPLS
	}
	return audio.FormatM3U
}
