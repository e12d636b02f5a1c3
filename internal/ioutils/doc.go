// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Copy a finished MP3 into the library
//	err := ioutils.CopyFile(ctx, "/tmp/dl/song.mp3", "/music/Rock/song.mp3")
//
//	// Ensure a destination directory exists
//	err := ioutils.EnsureDir("/music/Rock")
//
// # Filename Sanitization
//
// SanitizeFileName removes characters that are invalid in file and folder
// names (and in ID3 text frames):
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // "Song_ Part 1_2"
//
// # Image Processing
//
// ImageService handles cover art manipulation. JPEG, PNG and WEBP inputs
// are supported; the WEBP decoder comes from golang.org/x/image.
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(ctx, imageData, 1000, 1000)
//	jpg, _ := svc.ConvertToJPEG(ctx, webpData)
package ioutils
