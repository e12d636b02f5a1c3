package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible). Can be extended
	// with EXTINF lines carrying duration and title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// Extension returns the file extension for the playlist format,
// including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatPLS:
		return ".pls"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates playlist files for a batch run.
//
// After a batch finishes, the orchestrator groups successfully placed
// tracks by destination and can write one playlist per destination
// folder. Track paths in the playlist are relative (just the filename),
// assuming the playlist sits next to the tracks.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.Create("Rock", rockTracks)
//	os.WriteFile("/music/Rock/Rock.m3u", []byte(content), 0644)
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator. extended only
// affects the M3U format.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Create generates playlist content for one destination's tracks.
func (p *PlaylistCreator) Create(name string, tracks []model.DownloadedTrack) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(tracks)
	default:
		return p.createM3U(tracks)
	}
}

func (p *PlaylistCreator) createM3U(tracks []model.DownloadedTrack) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", int(track.Duration), track.Artist, track.Title))
		}
		sb.WriteString(filepath.Base(track.Path) + "\n")
	}

	return sb.String()
}

func (p *PlaylistCreator) createPLS(tracks []model.DownloadedTrack) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range tracks {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(track.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, track.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, int(track.Duration)))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(tracks)))
	sb.WriteString("Version=2\n")

	return sb.String()
}
