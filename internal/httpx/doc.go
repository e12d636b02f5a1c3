// Package httpx provides the HTTP client used for cover art fetches.
//
// The Client wraps net/http with a bounded timeout and a stable
// User-Agent so a slow thumbnail host cannot stall the batch:
//
//	client := httpx.NewClient(15 * time.Second)
//	data, err := client.Get(ctx, thumbnailURL)
package httpx
