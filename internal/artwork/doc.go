// Package artwork selects and fetches cover art for downloaded tracks.
//
// The source offers a list of thumbnail candidates of varying sizes and
// formats. The Resolver picks the largest usable one, fetches it with a
// bounded timeout, and optionally resizes/re-encodes it for embedding:
//
//	resolver := artwork.NewResolver(httpClient, artwork.Options{
//	    ConvertToJPEG: true,
//	})
//	cover := resolver.Resolve(ctx, candidates)
//	if cover == nil {
//	    // no usable cover; the tag embedder proceeds without one
//	}
//
// Cover art is best-effort throughout: an empty candidate list, an
// unreachable URL or an undecodable image all yield nil, never an error.
package artwork
