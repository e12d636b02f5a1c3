package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
)

// DefaultDestination is used when neither a track nor the batch file
// names a destination folder.
const DefaultDestination = "Music"

// ErrNoTracks is returned when a batch file resolves to zero usable
// work items. This is a startup-level error: no batch is run and no
// failure report is written.
var ErrNoTracks = errors.New("no usable tracks in batch file")

// TrackEntry is one track descriptor in a batch file.
type TrackEntry struct {
	URL         string `json:"url"`
	Destination string `json:"destination"`
}

// BatchFile is the on-disk batch configuration format:
//
//	{
//	  "tracks": [
//	    {"url": "https://youtu.be/...", "destination": "Rock"},
//	    {"url": "https://youtu.be/..."}
//	  ],
//	  "default_destination": "Pop"
//	}
type BatchFile struct {
	Tracks             []TrackEntry `json:"tracks"`
	DefaultDestination string       `json:"default_destination"`
}

// LoadBatch reads a batch file and resolves it into work items.
//
// Tracks without a URL are skipped; a human-readable warning per skipped
// entry is returned alongside the items. Missing destinations fall back
// to the batch default, then to DefaultDestination. A batch with no
// usable tracks returns ErrNoTracks.
func LoadBatch(path string) ([]model.WorkItem, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading batch file: %w", err)
	}

	var batch BatchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, nil, fmt.Errorf("parsing batch file: %w", err)
	}

	if batch.Tracks == nil {
		return nil, nil, fmt.Errorf("batch file must contain a %q list: %w", "tracks", ErrNoTracks)
	}

	fallback := strings.TrimSpace(batch.DefaultDestination)
	if fallback == "" {
		fallback = DefaultDestination
	}

	var items []model.WorkItem
	var warnings []string
	for i, track := range batch.Tracks {
		url := strings.TrimSpace(track.URL)
		if url == "" {
			warnings = append(warnings, fmt.Sprintf("skipping track %d: missing URL", i+1))
			continue
		}

		destination := strings.TrimSpace(track.Destination)
		if destination == "" {
			destination = fallback
		}

		items = append(items, model.WorkItem{URL: url, Destination: destination})
	}

	if len(items) == 0 {
		return nil, warnings, ErrNoTracks
	}

	return items, warnings, nil
}
