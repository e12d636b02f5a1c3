// Package audio provides audio file manipulation services: ID3 tag
// embedding and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write the normalized tag schema into an MP3:
//
//	tagger := audio.NewTagger()
//	err := tagger.Embed(path, tags, cover)
//	var twe *audio.TagWriteError
//	if errors.As(err, &twe) {
//	    // container unwritable; file left in its pre-embed state
//	}
//
// The tagger manages a fixed set of frames (title, artist, album, album
// artist, date, genre, track number, comment, attached picture). Frames
// it does not manage are left untouched.
//
// # Playlist Generation
//
// Generate a playlist from a batch's downloaded tracks:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.Create("Rock", tracks)
//	os.WriteFile("Rock.m3u", []byte(content), 0644)
package audio
