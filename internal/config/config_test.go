package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatch(t *testing.T) {
	path := writeTemp(t, `{
		"tracks": [
			{"url": "https://youtu.be/aaa", "destination": "Rock"},
			{"url": "https://youtu.be/bbb"}
		],
		"default_destination": "Pop"
	}`)

	items, warnings, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("LoadBatch failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Destination != "Rock" {
		t.Errorf("items[0].Destination = %q, want Rock", items[0].Destination)
	}
	if items[1].Destination != "Pop" {
		t.Errorf("items[1].Destination = %q, want default Pop", items[1].Destination)
	}
}

func TestLoadBatch_SkipsTracksWithoutURL(t *testing.T) {
	path := writeTemp(t, `{
		"tracks": [
			{"destination": "Rock"},
			{"url": "https://youtu.be/ok"}
		]
	}`)

	items, warnings, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("LoadBatch failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Destination != DefaultDestination {
		t.Errorf("Destination = %q, want %q", items[0].Destination, DefaultDestination)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestLoadBatch_NoUsableTracks(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing tracks key", `{"default_destination": "Pop"}`},
		{"empty tracks", `{"tracks": []}`},
		{"only url-less tracks", `{"tracks": [{"destination": "X"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadBatch(writeTemp(t, tt.content))
			if !errors.Is(err, ErrNoTracks) {
				t.Errorf("err = %v, want ErrNoTracks", err)
			}
		})
	}
}

func TestLoadBatch_MalformedJSON(t *testing.T) {
	_, _, err := LoadBatch(writeTemp(t, `{"tracks": [`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadBatch_MissingFile(t *testing.T) {
	_, _, err := LoadBatch(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSettings_LoadDefaultsWhenMissing(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !settings.ModifyTags {
		t.Error("default ModifyTags should be true")
	}
	if settings.MaxConcurrentDownloads != 1 {
		t.Errorf("default MaxConcurrentDownloads = %d, want 1", settings.MaxConcurrentDownloads)
	}
	if settings.FailureReportPath != "failed_tracks.txt" {
		t.Errorf("default FailureReportPath = %q", settings.FailureReportPath)
	}
}

func TestSettings_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")

	settings := DefaultSettings()
	settings.MusicFolder = "/srv/music"
	settings.RemotePlacement = true
	settings.SSHHost = "media.example.com"

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.MusicFolder != "/srv/music" {
		t.Errorf("MusicFolder = %q", loaded.MusicFolder)
	}
	if !loaded.RemotePlacement || loaded.SSHHost != "media.example.com" {
		t.Errorf("remote settings not preserved: %+v", loaded)
	}
}
