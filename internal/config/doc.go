// Package config provides configuration management for youtube-to-mp3.
//
// Two JSON files are involved:
//
//   - Settings: how the tool behaves (placement, tagging, cover art,
//     concurrency). Loaded with Load, which returns DefaultSettings when
//     the file does not exist.
//   - Batch file: what to download. A "tracks" list of url/destination
//     pairs plus a "default_destination" applied to tracks that omit one.
//
// # Settings
//
//	settings, err := config.Load("~/.config/yt2mp3/settings.json")
//
// # Batch Files
//
//	items, warnings, err := config.LoadBatch("tracks_config.json")
//	if errors.Is(err, config.ErrNoTracks) {
//	    // nothing to do; startup error, nothing is downloaded
//	}
//
// Entries without a URL are skipped with a warning rather than failing
// the whole batch; a batch that resolves to zero usable items is a
// configuration error.
package config
