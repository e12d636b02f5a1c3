// Package metadata normalizes the loosely-typed metadata record emitted
// by the downloader into the fixed tag schema.
//
// # Raw Metadata
//
// RawInfo mirrors the info JSON that yt-dlp prints for each download.
// The producer guarantees nothing: any field may be absent, null, or of
// an unexpected shape (an upload date may arrive as a number, a track may
// or may not carry a playlist context). Optional fields are therefore
// pointers or tolerant custom types, and presence is resolved exactly
// once, here.
//
// # Normalization
//
// Normalize never fails and always returns a fully-populated Tags record:
//
//	tags := metadata.Normalize(raw, "Video Title")
//	// tags.Artist == "Unknown Artist" when no uploader is known,
//	// tags.ReleaseDate == "" when the upload date is unparseable, etc.
package metadata
