// Package model defines the core data structures used throughout
// the youtube-to-mp3 converter.
//
// # WorkItem
//
// WorkItem is one unit of batch work, a source URL paired with the
// destination folder the finished MP3 should land in:
//
//	item := model.WorkItem{URL: "https://youtu.be/...", Destination: "Rock"}
//
// # Tags
//
// Tags is the fixed, fully-populated tag schema produced by the metadata
// normalizer. Every field always carries a value or a documented empty
// default, so downstream code never checks for presence:
//
//	tags := metadata.Normalize(raw, "Fallback Title")
//	fmt.Println(tags.Artist) // never empty, "Unknown Artist" at worst
//
// # BatchResult
//
// BatchResult accumulates the outcome of a batch run. It is safe for
// concurrent use so the orchestrator may process items in parallel:
//
//	result := model.NewBatchResult()
//	result.AddFailure(item.URL, item.Destination, err)
//	fmt.Println(result.Failed())
package model
