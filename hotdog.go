// Package hotdog decides whether a photo shows a hot dog.
//
// A photo is scaled down with [Resize], uploaded to a cloud image-labeling
// service through a [Labeler], and the returned labels are reduced to a
// [Verdict] by [Classify]. Resize and Classify are pure; the network call
// is owned by [Config.Analyze] and its variants.
package hotdog

import (
	"context"
	"errors"
	"net/http"
)

// DefaultMaxDimension is the scale bound applied to photos before upload.
const DefaultMaxDimension = 400

// DefaultMaxPixels caps decoded and scaled image area (width*height).
const DefaultMaxPixels = 50_000_000

// DefaultJPEGQuality is the quality used when encoding the upload.
const DefaultJPEGQuality = 85

var (
	// ErrInvalidInput reports an image or bound the scaler cannot work with:
	// missing image, non-positive dimensions, non-positive maxSize.
	ErrInvalidInput = errors.New("hotdog: invalid input")

	// ErrNoLabeler is returned by Analyze when Config.Labeler is nil.
	ErrNoLabeler = errors.New("hotdog: no labeler configured")

	// ErrLabeling wraps failures of the remote labeling call.
	ErrLabeling = errors.New("hotdog: labeling failed")

	// ErrNotImage is returned by AnalyzeURL when the URL does not serve an image.
	ErrNotImage = errors.New("hotdog: url did not return an image")
)

// ImageInput is the encoded image handed to a Labeler.
type ImageInput struct {
	Data     []byte // encoded image bytes
	MIMEType string // e.g. "image/jpeg"
	Width    int
	Height   int
}

// Labeler abstracts the remote label-detection service.
// Implementations return labels ranked by the service, highest confidence first.
// An empty slice with a nil error means nothing was detected.
type Labeler interface {
	Label(ctx context.Context, img ImageInput) ([]Label, error)
}

// Cache abstracts key-value caching (LRU, Redis, sync.Map, etc.)
type Cache interface {
	Key(prefix, value string) string
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

// VerdictEvent is passed to Config.OnVerdict after every successful analysis.
type VerdictEvent struct {
	Verdict     Verdict
	Labels      int    // number of labels returned by the labeler
	CacheHit    bool   // labels came from Cache
	Fingerprint string // perceptual hash of the upload, see Fingerprint
	Width       int    // uploaded pixel width
	Height      int    // uploaded pixel height
}

// Config holds all dependencies injected by the consumer.
// A Config may be shared between goroutines once constructed.
type Config struct {
	Labeler       Labeler      // required for Analyze
	Cache         Cache        // optional: label cache keyed by upload digest
	StealthClient *http.Client // optional: TLS-fingerprinted client for downloads
	HTTPClient    *http.Client // optional: default http client (nil = http.DefaultClient)

	MaxDimension float64   // default: DefaultMaxDimension (400)
	Resampler    Resampler // default: ResampleCatmullRom
	JPEGQuality  int       // default: DefaultJPEGQuality (85)
	MaxPixels    int       // default: DefaultMaxPixels; bounds source and scaled area
	UserAgent    string    // default: "Mozilla/5.0 (compatible; go-hotdog/1.0)"

	// Optional callbacks for metrics/logging.
	OnVerdict func(VerdictEvent)
	OnPanic   func(tag string, r any)
}

// withDefaults returns a copy of cfg with zero-value fields filled in.
// The receiver is left untouched so concurrent callers never race on it.
func (cfg *Config) withDefaults() Config {
	c := *cfg
	if c.MaxDimension <= 0 {
		c.MaxDimension = DefaultMaxDimension
	}
	if c.Resampler == "" {
		c.Resampler = ResampleCatmullRom
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = DefaultMaxPixels
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; go-hotdog/1.0)"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	return c
}
