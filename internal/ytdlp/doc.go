// Package ytdlp wraps the external yt-dlp binary that turns a source URL
// into a local MP3 plus a raw metadata record.
//
// yt-dlp does the heavy lifting (extraction, ffmpeg transcoding); this
// package only builds the argument list, runs the process under the
// caller's context, and parses the info JSON it prints:
//
//	dl := ytdlp.NewDownloader("192K")
//	mp3Path, info, err := dl.Fetch(ctx, url, workDir)
//	var de *ytdlp.DownloadError
//	if errors.As(err, &de) {
//	    // unreachable URL, restricted content, transcode failure...
//	}
//
// CheckDependencies verifies yt-dlp and ffmpeg are on PATH before a
// batch starts; missing binaries are a startup error, not a per-item
// failure.
package ytdlp
