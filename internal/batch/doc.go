// Package batch provides the orchestration logic that turns a list of
// work items into tagged, placed MP3s and a batch result.
//
// # Manager
//
// The Manager runs the full per-item pipeline:
//
//  1. Download and convert via the external yt-dlp collaborator
//  2. Normalize the raw metadata into the fixed tag schema
//  3. Resolve cover art (best-effort)
//  4. Embed tags and cover into the MP3
//  5. Place the file at its destination (local folder or remote host)
//
// Every step's failure is caught at the item boundary and converted into
// a FailureRecord; no error ever aborts the batch. The only fatal
// condition is an empty item list, detected before the loop starts.
//
// # Basic Usage
//
//	manager := batch.NewManager(settings, func(event batch.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	result, err := manager.Run(ctx, items)
//	if errors.Is(err, batch.ErrNoWorkItems) {
//	    // startup error, nothing was processed
//	}
//
// # Concurrency
//
// Items run through an errgroup bounded by
// settings.MaxConcurrentDownloads. The default of 1 gives strictly
// sequential processing in input order; the BatchResult accumulator is
// synchronized either way, so raising the limit is safe.
//
// # Progress Tracking
//
// Progress is reported via a callback receiving ProgressEvent values
// with Info/Verbose/Warning/Error/Success levels. Cover art failures are
// Verbose only: a missing thumbnail is not worth a warning.
package batch
