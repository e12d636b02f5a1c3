package model

// Default values used when the source metadata omits a field.
//
// The normalizer guarantees that Tags is always fully populated, so
// absent source data maps to one of these rather than an empty field.
const (
	// UnknownArtist is used when no uploader or channel name is available.
	UnknownArtist = "Unknown Artist"

	// UnknownGenre is used when the source provides no categories or tags.
	UnknownGenre = "Unknown Genre"

	// SinglesAlbumSuffix is appended to the artist name to synthesize an
	// album title for items that do not belong to a playlist.
	SinglesAlbumSuffix = " - Singles"
)

// Tags is the normalized tag schema written into the MP3's ID3 block.
//
// All fields are plain values, never pointers: the metadata normalizer
// resolves optional source fields exactly once, and every field here is
// either a real value or its documented default.
type Tags struct {
	// Title is the track title. Falls back to the video title.
	Title string

	// Artist is the uploader/channel name, or UnknownArtist.
	Artist string

	// Album is the playlist title, or "<Artist> - Singles".
	Album string

	// AlbumArtist resolves identically to Artist.
	AlbumArtist string

	// ReleaseDate is an ISO-8601 date (YYYY-MM-DD), or "" when the
	// source upload date is absent or unparseable.
	ReleaseDate string

	// Genre is a comma-joined category/tag list, or UnknownGenre.
	Genre string

	// TrackNumber is the 1-based playlist index. Zero means the item has
	// no playlist context and no track frame is written.
	TrackNumber int

	// Comment is the truncated description plus basic stats, or "".
	Comment string
}

// CoverImage is a resolved cover art image ready for embedding.
type CoverImage struct {
	// Data is the raw image bytes.
	Data []byte

	// MIME is the image mime type: image/jpeg, image/png or image/webp.
	MIME string
}
