// Package report renders a batch's accumulated failures into a durable,
// human-readable report file.
//
// This is pure formatting: the reporter performs no retries and has no
// side effect beyond the single file write. A run with zero failures
// writes nothing and leaves any prior report untouched.
//
//	wrote, err := report.WriteIfFailed(result, "failed_tracks.txt")
package report
