package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/AzSumToshko/youtube-to-mp3/internal/artwork"
	"github.com/AzSumToshko/youtube-to-mp3/internal/config"
	"github.com/AzSumToshko/youtube-to-mp3/internal/metadata"
	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
)

// fakeDownloader writes a dummy MP3 into workDir, or fails for URLs
// listed in failures.
type fakeDownloader struct {
	failures map[string]error
	titles   map[string]string
	info     *metadata.RawInfo
}

func (d *fakeDownloader) Fetch(_ context.Context, url, workDir string) (string, *metadata.RawInfo, error) {
	if err, ok := d.failures[url]; ok {
		return "", nil, err
	}
	title := d.titles[url]
	if title == "" {
		title = "track"
	}
	path := filepath.Join(workDir, title+".mp3")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		return "", nil, err
	}
	return path, d.info, nil
}

type fakeResolver struct {
	cover *model.CoverImage
	calls int
}

func (r *fakeResolver) Resolve(_ context.Context, _ []artwork.Candidate) *model.CoverImage {
	r.calls++
	return r.cover
}

type fakeEmbedder struct {
	err   error
	calls int
	tags  []model.Tags
}

func (e *fakeEmbedder) Embed(_ string, tags model.Tags, _ *model.CoverImage) error {
	e.calls++
	e.tags = append(e.tags, tags)
	return e.err
}

// fakePlacer copies files into baseDir/destination, like the local
// placer but without sanitization.
type fakePlacer struct {
	baseDir string
	err     error

	mu     sync.Mutex
	placed []string
}

func (p *fakePlacer) Place(_ context.Context, localPath, destination string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	dir := filepath.Join(p.baseDir, destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	finalPath := filepath.Join(dir, filepath.Base(localPath))
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(finalPath, data, 0644); err != nil {
		return "", err
	}
	p.mu.Lock()
	p.placed = append(p.placed, finalPath)
	p.mu.Unlock()
	return finalPath, nil
}

func (p *fakePlacer) placedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.placed)
}

func testManager(t *testing.T, settings *config.Settings, downloader Downloader, resolver CoverResolver, embedder Embedder, placer *fakePlacer) *Manager {
	t.Helper()
	if placer.baseDir == "" {
		placer.baseDir = settings.MusicFolder
	}
	return NewManagerWith(settings, downloader, resolver, embedder, placer, nil)
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	settings := config.DefaultSettings()
	settings.MusicFolder = t.TempDir()
	return settings
}

func TestManager_Run_NoItems(t *testing.T) {
	settings := testSettings(t)
	manager := testManager(t, settings, &fakeDownloader{}, &fakeResolver{}, &fakeEmbedder{}, &fakePlacer{})

	_, err := manager.Run(context.Background(), nil)
	if !errors.Is(err, ErrNoWorkItems) {
		t.Fatalf("err = %v, want ErrNoWorkItems", err)
	}
}

func TestManager_Run_MixedOutcome(t *testing.T) {
	settings := testSettings(t)
	downloader := &fakeDownloader{
		failures: map[string]error{"https://youtu.be/bad": errors.New("video unavailable")},
		titles:   map[string]string{"https://youtu.be/good": "Good Song"},
		info:     &metadata.RawInfo{Title: "Good Song", Uploader: "Uploader", Duration: 180},
	}
	placer := &fakePlacer{}
	manager := testManager(t, settings, downloader, &fakeResolver{}, &fakeEmbedder{}, placer)

	items := []model.WorkItem{
		{URL: "https://youtu.be/good", Destination: "Rock"},
		{URL: "https://youtu.be/bad", Destination: "Pop"},
	}

	result, err := manager.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Succeeded() != 1 || result.Failed() != 1 {
		t.Fatalf("succeeded/failed = %d/%d, want 1/1", result.Succeeded(), result.Failed())
	}

	failures := result.Failures()
	if failures[0].URL != "https://youtu.be/bad" || failures[0].Destination != "Pop" {
		t.Errorf("unexpected failure record: %+v", failures[0])
	}
	if !strings.Contains(failures[0].Message, "video unavailable") {
		t.Errorf("failure message = %q", failures[0].Message)
	}

	tracks := result.Tracks()
	if tracks[0].Title != "Good Song" || tracks[0].Artist != "Uploader" {
		t.Errorf("unexpected track: %+v", tracks[0])
	}
	if tracks[0].Duration != 180 {
		t.Errorf("duration = %v, want 180", tracks[0].Duration)
	}
	if _, err := os.Stat(tracks[0].Path); err != nil {
		t.Errorf("placed file missing: %v", err)
	}

	done, total := manager.Progress()
	if done != 2 || total != 2 {
		t.Errorf("progress = %d/%d, want 2/2", done, total)
	}
}

func TestManager_Run_TaggingDisabled(t *testing.T) {
	settings := testSettings(t)
	settings.ModifyTags = false

	embedder := &fakeEmbedder{}
	resolver := &fakeResolver{}
	placer := &fakePlacer{}
	downloader := &fakeDownloader{titles: map[string]string{"https://youtu.be/a": "Plain"}}
	manager := testManager(t, settings, downloader, resolver, embedder, placer)

	result, err := manager.Run(context.Background(), []model.WorkItem{{URL: "https://youtu.be/a", Destination: "Rock"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if embedder.calls != 0 {
		t.Errorf("embedder called %d times with tagging disabled", embedder.calls)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver called %d times with tagging disabled", resolver.calls)
	}
	if result.Succeeded() != 1 {
		t.Errorf("succeeded = %d, want 1", result.Succeeded())
	}
	if result.Tracks()[0].Title != "Plain" {
		t.Errorf("title = %q, want file-derived %q", result.Tracks()[0].Title, "Plain")
	}
}

func TestManager_Run_EmbedFailureKeepsUntagged(t *testing.T) {
	settings := testSettings(t)
	settings.KeepUntaggedOnError = true

	embedder := &fakeEmbedder{err: errors.New("no tag header")}
	placer := &fakePlacer{}
	downloader := &fakeDownloader{titles: map[string]string{"https://youtu.be/a": "Broken"}}
	manager := testManager(t, settings, downloader, &fakeResolver{}, embedder, placer)

	result, err := manager.Run(context.Background(), []model.WorkItem{{URL: "https://youtu.be/a", Destination: "Rock"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Failed() != 1 || result.Succeeded() != 0 {
		t.Fatalf("succeeded/failed = %d/%d, want 0/1", result.Succeeded(), result.Failed())
	}
	if placer.placedCount() != 1 {
		t.Errorf("untagged file should still be placed, placed = %d", placer.placedCount())
	}
}

func TestManager_Run_EmbedFailureDiscards(t *testing.T) {
	settings := testSettings(t)
	settings.KeepUntaggedOnError = false

	embedder := &fakeEmbedder{err: errors.New("no tag header")}
	placer := &fakePlacer{}
	downloader := &fakeDownloader{titles: map[string]string{"https://youtu.be/a": "Broken"}}
	manager := testManager(t, settings, downloader, &fakeResolver{}, embedder, placer)

	result, err := manager.Run(context.Background(), []model.WorkItem{{URL: "https://youtu.be/a", Destination: "Rock"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", result.Failed())
	}
	if placer.placedCount() != 0 {
		t.Errorf("discarded file was placed anyway, placed = %d", placer.placedCount())
	}
}

func TestManager_Run_PlacementFailure(t *testing.T) {
	settings := testSettings(t)
	placer := &fakePlacer{err: errors.New("disk full")}
	downloader := &fakeDownloader{titles: map[string]string{"https://youtu.be/a": "Song"}}
	manager := testManager(t, settings, downloader, &fakeResolver{}, &fakeEmbedder{}, placer)

	result, err := manager.Run(context.Background(), []model.WorkItem{{URL: "https://youtu.be/a", Destination: "Rock"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Failed() != 1 || result.Succeeded() != 0 {
		t.Errorf("succeeded/failed = %d/%d, want 0/1", result.Succeeded(), result.Failed())
	}
	if !strings.Contains(result.Failures()[0].Message, "disk full") {
		t.Errorf("failure message = %q", result.Failures()[0].Message)
	}
}

func TestManager_Run_WritesPlaylists(t *testing.T) {
	settings := testSettings(t)
	settings.CreatePlaylist = true
	settings.PlaylistFormat = "m3u"
	settings.M3UExtended = true

	downloader := &fakeDownloader{
		titles: map[string]string{
			"https://youtu.be/a": "First",
			"https://youtu.be/b": "Second",
		},
		info: &metadata.RawInfo{Uploader: "Artist", Duration: 60},
	}
	placer := &fakePlacer{}
	manager := testManager(t, settings, downloader, &fakeResolver{}, &fakeEmbedder{}, placer)

	items := []model.WorkItem{
		{URL: "https://youtu.be/a", Destination: "Rock"},
		{URL: "https://youtu.be/b", Destination: "Rock"},
	}
	if _, err := manager.Run(context.Background(), items); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(settings.MusicFolder, "Rock", "Rock.m3u"))
	if err != nil {
		t.Fatalf("playlist not written: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Errorf("missing EXTM3U header:\n%s", content)
	}
	if !strings.Contains(content, "First.mp3") || !strings.Contains(content, "Second.mp3") {
		t.Errorf("playlist missing tracks:\n%s", content)
	}
}

func TestManager_Run_CancelledContextSkipsRemaining(t *testing.T) {
	settings := testSettings(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	downloader := &fakeDownloader{titles: map[string]string{"https://youtu.be/a": "Song"}}
	placer := &fakePlacer{}
	manager := testManager(t, settings, downloader, &fakeResolver{}, &fakeEmbedder{}, placer)

	result, err := manager.Run(ctx, []model.WorkItem{{URL: "https://youtu.be/a", Destination: "Rock"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Succeeded() != 0 || result.Failed() != 0 {
		t.Errorf("cancelled run processed items: %d/%d", result.Succeeded(), result.Failed())
	}
}
