package audio

import (
	"fmt"
	"time"

	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
	"github.com/bogem/id3v2"
)

// TagWriteError reports that the audio container could not be opened or
// the tag write could not be committed. The file keeps its pre-embed
// state when this is returned.
type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("writing tags to %s: %v", e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error { return e.Err }

// managedTextFrames are the text frame IDs this tagger owns. They are
// cleared before every embed so re-running with the same tags never
// duplicates or accumulates frames.
var managedTextFrames = []string{
	"TIT2", // Title
	"TPE1", // Lead artist
	"TALB", // Album
	"TPE2", // Album artist
	"TYER", // Year (ID3v2.3)
	"TDRC", // Recording time (ID3v2.4)
	"TCON", // Genre
	"TRCK", // Track number
}

// Tagger writes the normalized tag schema into MP3 files.
//
// Tagger replaces the frames it manages and leaves unrelated frames it
// does not understand alone. The underlying save is
// write-to-temp-then-rename, so from the caller's perspective either the
// full tag set is committed or the file is unchanged.
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Embed writes tags and, when present, the cover image into the MP3 at
// path. Fields with empty defaults (release date, comment, track number
// zero) produce no frame. Returns a *TagWriteError on failure.
func (t *Tagger) Embed(path string, tags model.Tags, cover *model.CoverImage) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	defer tag.Close()

	t.clearManagedFrames(tag)
	t.writeTextFrames(tag, tags)

	if cover != nil {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    cover.MIME,
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     cover.Data,
		})
	}

	if err := tag.Save(); err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	return nil
}

// clearManagedFrames removes any pre-existing frames for the fields this
// tagger owns, including comments and attached pictures.
func (t *Tagger) clearManagedFrames(tag *id3v2.Tag) {
	for _, id := range managedTextFrames {
		tag.DeleteFrames(id)
	}
	tag.DeleteFrames(tag.CommonID("Comments"))
	tag.DeleteFrames(tag.CommonID("Attached picture"))
}

// writeTextFrames writes one frame per populated Tags field.
func (t *Tagger) writeTextFrames(tag *id3v2.Tag, tags model.Tags) {
	tag.SetTitle(tags.Title)
	tag.SetArtist(tags.Artist)
	tag.SetAlbum(tags.Album)
	tag.SetGenre(tags.Genre)
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, tags.AlbumArtist)

	if tags.ReleaseDate != "" {
		// Both frames so ID3v2.3-only players still show the year.
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, tags.ReleaseDate)
		if date, err := time.Parse("2006-01-02", tags.ReleaseDate); err == nil {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, date.Format("2006"))
		}
	}

	if tags.TrackNumber > 0 {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, fmt.Sprintf("%d", tags.TrackNumber))
	}

	if tags.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        tags.Comment,
		})
	}
}
