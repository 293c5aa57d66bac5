package hotdog

import (
	"context"
	"fmt"
	"image"
	"log/slog"
)

// Result is the outcome of a successful analysis.
type Result struct {
	Verdict Verdict
	Labels  []Label     // labels the verdict was derived from, in service order
	Size    image.Point // pixel size of the uploaded image
}

// Outcome is the single completion delivered by AnalyzeAsync.
// Exactly one of Result and Err is set.
type Outcome struct {
	Result *Result
	Err    error
}

// Analyze scales img, sends it to cfg.Labeler and classifies the labels.
//
// Scaling failures are ErrInvalidInput. A labeler failure is returned
// wrapped in ErrLabeling and Classify is not consulted. An empty label
// list is not an error: it yields VerdictNoLabels. A panic in the labeler,
// cache or resampler is reported to OnPanic and returned as an error.
func (cfg *Config) Analyze(ctx context.Context, img image.Image) (res *Result, err error) {
	c := cfg.withDefaults()

	defer func() {
		if r := recover(); r != nil {
			if c.OnPanic != nil {
				c.OnPanic("analyze", r)
			}
			res, err = nil, fmt.Errorf("hotdog: analyze panicked: %v", r)
		}
	}()

	if c.Labeler == nil {
		return nil, ErrNoLabeler
	}

	scaled, err := resizeLimited(img, c.MaxDimension, c.Resampler, c.MaxPixels)
	if err != nil {
		return nil, err
	}
	size := scaled.Bounds().Size()

	labels, cacheHit, err := c.labels(ctx, scaled)
	if err != nil {
		return nil, err
	}

	verdict := Classify(labels)
	fp, _ := Fingerprint(scaled)
	slog.Debug("hotdog: verdict", "verdict", verdict.Kind.String(), "guess", verdict.Guess,
		"labels", len(labels), "cache_hit", cacheHit, "fingerprint", fp, "width", size.X, "height", size.Y)

	if c.OnVerdict != nil {
		c.OnVerdict(VerdictEvent{
			Verdict:     verdict,
			Labels:      len(labels),
			CacheHit:    cacheHit,
			Fingerprint: fp,
			Width:       size.X,
			Height:      size.Y,
		})
	}

	return &Result{Verdict: verdict, Labels: labels, Size: size}, nil
}

// AnalyzeBytes decodes an encoded photo, applies its EXIF orientation and
// runs Analyze on it.
func (cfg *Config) AnalyzeBytes(ctx context.Context, data []byte) (*Result, error) {
	c := cfg.withDefaults()

	img, _, err := DecodeImage(data, c.MaxPixels)
	if err != nil {
		return nil, err
	}
	img = ApplyOrientation(img, ExtractOrientation(data))

	return cfg.Analyze(ctx, img)
}

// AnalyzeURL downloads the photo at url and runs AnalyzeBytes on it.
// Returns ErrNotImage if the URL does not serve a usable image.
func (cfg *Config) AnalyzeURL(ctx context.Context, url string) (*Result, error) {
	r, err := cfg.Download(ctx, url, DownloadOpts{})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, url)
	}
	return cfg.AnalyzeBytes(ctx, r.Data)
}

// AnalyzeAsync runs Analyze in the background. The returned channel
// receives exactly one Outcome and is then closed. Cancel ctx to abandon
// the labeling request; the Outcome then carries the context error.
func (cfg *Config) AnalyzeAsync(ctx context.Context, img image.Image) <-chan Outcome {
	out := make(chan Outcome, 1)

	go func() {
		defer close(out)
		res, err := cfg.Analyze(ctx, img)
		if err != nil {
			out <- Outcome{Err: err}
			return
		}
		out <- Outcome{Result: res}
	}()

	return out
}

// labels returns the label list for an already scaled image, consulting
// cfg.Cache first. Entries are keyed by a digest of the exact upload bytes.
func (cfg *Config) labels(ctx context.Context, scaled image.Image) ([]Label, bool, error) {
	data, err := EncodeJPEG(scaled, cfg.JPEGQuality)
	if err != nil {
		return nil, false, err
	}
	size := scaled.Bounds().Size()

	var cacheKey string
	if cfg.Cache != nil {
		cacheKey = cfg.Cache.Key(labelCachePrefix, ContentDigest(data))
		var cached []Label
		if cfg.Cache.Get(ctx, cacheKey, &cached) {
			return cached, true, nil
		}
	}

	labels, err := cfg.Labeler.Label(ctx, ImageInput{
		Data:     data,
		MIMEType: "image/jpeg",
		Width:    size.X,
		Height:   size.Y,
	})
	if err != nil {
		slog.Warn("hotdog: labeler error", "error", err.Error())
		return nil, false, fmt.Errorf("%w: %w", ErrLabeling, err)
	}

	if cacheKey != "" {
		cfg.Cache.Set(ctx, cacheKey, labels)
	}
	return labels, false, nil
}
