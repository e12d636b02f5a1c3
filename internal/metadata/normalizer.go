package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/AzSumToshko/youtube-to-mp3/internal/ioutils"
	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
)

// MaxCommentLength bounds the description portion of the comment frame,
// in runes. Long video descriptions would otherwise bloat every file.
const MaxCommentLength = 500

// Normalize transforms a raw metadata record into the fixed tag schema.
//
// Normalize never fails. Every field of the returned Tags resolves to a
// value or a documented default:
//
//   - Title: raw title if non-empty, else fallbackTitle
//   - Artist/AlbumArtist: uploader, else channel, else model.UnknownArtist
//   - Album: playlist title, else "<artist> - Singles"
//   - ReleaseDate: upload_date (YYYYMMDD) as YYYY-MM-DD, else ""
//   - Genre: categories joined with ", ", else tags, else model.UnknownGenre
//   - TrackNumber: playlist index when the item has a playlist context,
//     else 0 (no frame written)
//   - Comment: bounded description plus view/like stats, else ""
//
// String fields destined for frames and filenames are sanitized with the
// same rules the filename sanitizer applies.
func Normalize(raw *RawInfo, fallbackTitle string) model.Tags {
	if raw == nil {
		raw = &RawInfo{}
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = fallbackTitle
	}

	artist := strings.TrimSpace(raw.Uploader)
	if artist == "" {
		artist = strings.TrimSpace(raw.Channel)
	}
	if artist == "" {
		artist = model.UnknownArtist
	}

	album := playlistTitle(raw)
	if album == "" {
		album = artist + model.SinglesAlbumSuffix
	}

	track := 0
	if raw.PlaylistIndex != nil && playlistTitle(raw) != "" {
		track = *raw.PlaylistIndex
	}

	return model.Tags{
		Title:       ioutils.SanitizeFileName(title),
		Artist:      ioutils.SanitizeFileName(artist),
		Album:       ioutils.SanitizeFileName(album),
		AlbumArtist: ioutils.SanitizeFileName(artist),
		ReleaseDate: parseUploadDate(raw.UploadDate),
		Genre:       genre(raw),
		TrackNumber: track,
		Comment:     comment(raw),
	}
}

func playlistTitle(raw *RawInfo) string {
	if t := strings.TrimSpace(raw.PlaylistTitle); t != "" {
		return t
	}
	return strings.TrimSpace(raw.Playlist)
}

// parseUploadDate converts an 8-digit YYYYMMDD value into YYYY-MM-DD.
// Absent or unparseable dates yield "" rather than an error.
func parseUploadDate(d *UploadDate) string {
	if d == nil || len(d.Raw) != 8 {
		return ""
	}
	t, err := time.Parse("20060102", d.Raw)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// genre joins the category list with commas, falling back to the tag
// list, then to UnknownGenre. Empty entries are skipped.
func genre(raw *RawInfo) string {
	for _, list := range [][]string{raw.Categories, raw.Tags} {
		var parts []string
		for _, entry := range list {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				parts = append(parts, ioutils.SanitizeFileName(entry))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return model.UnknownGenre
}

// comment builds the COMM frame text: the description truncated to
// MaxCommentLength runes, followed by basic stats when available.
func comment(raw *RawInfo) string {
	desc := strings.TrimSpace(raw.Description)
	if runes := []rune(desc); len(runes) > MaxCommentLength {
		desc = string(runes[:MaxCommentLength]) + "..."
	}

	var stats []string
	if raw.ViewCount != nil {
		stats = append(stats, fmt.Sprintf("Views: %d", *raw.ViewCount))
	}
	if raw.LikeCount != nil {
		stats = append(stats, fmt.Sprintf("Likes: %d", *raw.LikeCount))
	}

	statLine := strings.Join(stats, " | ")
	switch {
	case desc == "":
		return statLine
	case statLine == "":
		return desc
	default:
		return desc + "\n\n" + statLine
	}
}
