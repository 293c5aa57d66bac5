package hotdog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DownloadOpts configures a photo download.
type DownloadOpts struct {
	MaxBytes  int64         // max body size; larger photos are rejected (default: 10MB)
	Timeout   time.Duration // per-request timeout (default: 10s)
	UserAgent string        // override config user agent
}

const (
	defaultMaxBytes = 10 << 20 // 10MB
	defaultTimeout  = 10 * time.Second
)

// DownloadResult holds downloaded image data.
type DownloadResult struct {
	Data     []byte
	MIMEType string
}

// Download fetches a photo from url. Tries cfg.StealthClient first (if set),
// falls back to cfg.HTTPClient.
// Returns a nil result (not an error) when the URL does not serve a usable
// image: non-200 status, non-image content type, or a body over MaxBytes.
// A truncated photo would not decode, so oversized bodies are dropped whole.
func (cfg *Config) Download(ctx context.Context, url string, opts DownloadOpts) (*DownloadResult, error) {
	c := cfg.withDefaults()

	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = c.UserAgent
	}

	if c.StealthClient != nil {
		r, reason := fetchPhoto(ctx, c.StealthClient, url, opts)
		if r != nil {
			return r, nil
		}
		slog.Debug("hotdog: stealth download failed, retrying", "url", url, "reason", reason)
	}

	r, reason := fetchPhoto(ctx, c.HTTPClient, url, opts)
	if r == nil {
		slog.Debug("hotdog: download rejected", "url", url, "reason", reason)
	}
	return r, nil
}

// fetchPhoto performs one GET. On rejection it returns a short reason for logging.
func fetchPhoto(ctx context.Context, client *http.Client, photoURL string, opts DownloadOpts) (*DownloadResult, string) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil, "bad request: " + err.Error()
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := client.Do(req) //nolint:gosec // G704: URL is caller-supplied by design
	if err != nil {
		return nil, "transport: " + err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "status " + resp.Status
	}

	mime := resp.Header.Get("Content-Type")
	// Strip MIME parameters: "image/jpeg; charset=utf-8" → "image/jpeg"
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, "content type " + mime
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes+1))
	if err != nil {
		return nil, "read body: " + err.Error()
	}
	if int64(len(data)) > opts.MaxBytes {
		return nil, "body exceeds max bytes"
	}
	if len(data) == 0 {
		return nil, "empty body"
	}

	return &DownloadResult{Data: data, MIMEType: mime}, ""
}
