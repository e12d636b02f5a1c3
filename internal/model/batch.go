package model

import (
	"sync"
	"time"
)

// WorkItem is one unit of batch work: a source URL paired with a
// destination label. Items are created from the batch configuration (or a
// single CLI argument), are immutable, and are consumed once by the
// orchestrator.
type WorkItem struct {
	// URL is the source video/audio URL.
	URL string

	// Destination is the destination folder label, e.g. "Rock".
	Destination string
}

// FailureRecord captures one failed WorkItem. Records are appended exactly
// once per failure, in processing order, and never mutated afterwards.
type FailureRecord struct {
	URL         string
	Destination string
	Message     string
	Timestamp   time.Time
}

// DownloadedTrack describes one successfully placed MP3. The batch
// orchestrator collects these so a playlist can be generated per
// destination after the run.
type DownloadedTrack struct {
	Title       string
	Artist      string
	Duration    float64 // seconds
	Path        string  // final placed path
	Destination string
}

// BatchResult accumulates the outcome of a batch run.
//
// The orchestrator builds it incrementally while processing items and
// finalizes it after the last one. All methods are safe for concurrent
// use, so the item loop may run with a concurrency limit above one.
type BatchResult struct {
	mu        sync.Mutex
	succeeded int
	failures  []FailureRecord
	tracks    []DownloadedTrack
}

// NewBatchResult creates an empty BatchResult.
func NewBatchResult() *BatchResult {
	return &BatchResult{}
}

// AddSuccess records one successfully processed item.
func (r *BatchResult) AddSuccess(track DownloadedTrack) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.succeeded++
	r.tracks = append(r.tracks, track)
}

// AddFailure appends a FailureRecord for the given item with the current
// timestamp.
func (r *BatchResult) AddFailure(url, destination string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, FailureRecord{
		URL:         url,
		Destination: destination,
		Message:     err.Error(),
		Timestamp:   time.Now(),
	})
}

// Succeeded returns the number of fully processed items.
func (r *BatchResult) Succeeded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.succeeded
}

// Failed returns the number of failed items.
func (r *BatchResult) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures)
}

// Failures returns a copy of the accumulated failure records in append
// order.
func (r *BatchResult) Failures() []FailureRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FailureRecord, len(r.failures))
	copy(out, r.failures)
	return out
}

// Tracks returns a copy of the successfully placed tracks in append order.
func (r *BatchResult) Tracks() []DownloadedTrack {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DownloadedTrack, len(r.tracks))
	copy(out, r.tracks)
	return out
}
