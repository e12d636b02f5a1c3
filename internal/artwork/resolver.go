package artwork

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/AzSumToshko/youtube-to-mp3/internal/ioutils"
	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
)

// Candidate is a described cover image offered by the source.
type Candidate struct {
	URL    string
	Width  int
	Height int
}

// Fetcher retrieves image bytes. *httpx.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Options controls post-fetch processing of the chosen image.
type Options struct {
	// Resize scales the image down to fit MaxSize×MaxSize. The result
	// is JPEG regardless of the input format.
	Resize  bool
	MaxSize int

	// ConvertToJPEG re-encodes non-JPEG images (PNG/WEBP thumbnails)
	// for player compatibility. Ignored when Resize already applies.
	ConvertToJPEG bool
}

// Resolver picks the best cover candidate and fetches it.
type Resolver struct {
	fetcher Fetcher
	images  *ioutils.ImageService
	opts    Options
}

// NewResolver creates a Resolver using the given fetcher.
func NewResolver(fetcher Fetcher, opts Options) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		images:  ioutils.NewImageService(),
		opts:    opts,
	}
}

// Resolve returns the fetched best candidate, or nil when no cover could
// be resolved. It makes exactly one fetch attempt, for the single chosen
// candidate; any failure degrades to "no cover" rather than an error.
func (r *Resolver) Resolve(ctx context.Context, candidates []Candidate) *model.CoverImage {
	chosen, mime := selectBest(candidates)
	if chosen == nil {
		return nil
	}

	data, err := r.fetcher.Get(ctx, chosen.URL)
	if err != nil || len(data) == 0 {
		return nil
	}

	if r.opts.Resize && r.opts.MaxSize > 0 {
		if resized, err := r.images.ResizeImage(ctx, data, r.opts.MaxSize, r.opts.MaxSize); err == nil {
			data, mime = resized, "image/jpeg"
		}
	} else if r.opts.ConvertToJPEG && mime != "image/jpeg" {
		if converted, err := r.images.ConvertToJPEG(ctx, data); err == nil {
			data, mime = converted, "image/jpeg"
		}
	}

	return &model.CoverImage{Data: data, MIME: mime}
}

// selectBest returns the candidate with the largest width×height among
// the supported formats, and its mime type. Ties keep the earlier-listed
// candidate. Candidates in unsupported formats are skipped.
func selectBest(candidates []Candidate) (*Candidate, string) {
	var best *Candidate
	bestMime := ""
	bestArea := -1

	for i := range candidates {
		mime := mimeFromURL(candidates[i].URL)
		if mime == "" {
			continue
		}
		area := candidates[i].Width * candidates[i].Height
		if area > bestArea {
			best = &candidates[i]
			bestMime = mime
			bestArea = area
		}
	}

	return best, bestMime
}

// mimeFromURL derives the image mime type from the URL's file extension.
// Returns "" for formats we cannot embed.
func mimeFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
