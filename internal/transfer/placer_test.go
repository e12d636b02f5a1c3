package transfer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalPlacer_Place(t *testing.T) {
	musicDir := t.TempDir()
	srcDir := t.TempDir()

	src := filepath.Join(srcDir, "My Song.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	placer := NewLocalPlacer(musicDir)
	finalPath, err := placer.Place(context.Background(), src, "Rock")
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	want := filepath.Join(musicDir, "Rock", "My Song.mp3")
	if finalPath != want {
		t.Errorf("finalPath = %q, want %q", finalPath, want)
	}
	if _, err := os.Stat(finalPath); err != nil {
		t.Errorf("placed file missing: %v", err)
	}
}

func TestLocalPlacer_SanitizesDestination(t *testing.T) {
	musicDir := t.TempDir()
	srcDir := t.TempDir()

	src := filepath.Join(srcDir, "track.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	placer := NewLocalPlacer(musicDir)
	finalPath, err := placer.Place(context.Background(), src, "Synth/Wave")
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if filepath.Dir(finalPath) != filepath.Join(musicDir, "Synth_Wave") {
		t.Errorf("destination not sanitized: %q", finalPath)
	}
}

func TestLocalPlacer_MissingSource(t *testing.T) {
	placer := NewLocalPlacer(t.TempDir())
	_, err := placer.Place(context.Background(), filepath.Join(t.TempDir(), "gone.mp3"), "Rock")
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, ok := err.(*PlacementError); !ok {
		t.Errorf("expected *PlacementError, got %T", err)
	}
}

func TestSCPPlacer_MissingSource(t *testing.T) {
	placer := NewSCPPlacer(SCPConfig{User: "u", Host: "h", BasePath: "/srv/music"})
	_, err := placer.Place(context.Background(), filepath.Join(t.TempDir(), "gone.mp3"), "Rock")
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
