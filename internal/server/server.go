package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go-hotdog"
)

// DefaultMaxUploadBytes bounds multipart uploads.
const DefaultMaxUploadBytes = 10 << 20

// DefaultRequestTimeout bounds one analysis, labeling call included.
const DefaultRequestTimeout = 30 * time.Second

// Analyzer is the subset of hotdog.Config the handlers need.
type Analyzer interface {
	AnalyzeBytes(ctx context.Context, data []byte) (*hotdog.Result, error)
	AnalyzeURL(ctx context.Context, url string) (*hotdog.Result, error)
}

var _ Analyzer = (*hotdog.Config)(nil)

type Handler struct {
	analyzer       Analyzer
	maxUploadBytes int64
	timeout        time.Duration
	logger         *slog.Logger
}

// NewHandler wires an Analyzer into HTTP handlers. Zero limits select defaults;
// a nil logger uses slog.Default().
func NewHandler(analyzer Analyzer, maxUploadBytes int64, timeout time.Duration, logger *slog.Logger) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		analyzer:       analyzer,
		maxUploadBytes: maxUploadBytes,
		timeout:        timeout,
		logger:         logger,
	}
}

// AnalyzeResponse is the JSON body of a successful analysis.
type AnalyzeResponse struct {
	RequestID string             `json:"request_id"`
	Verdict   hotdog.VerdictKind `json:"verdict"`
	HotDog    bool               `json:"hot_dog"`
	Headline  string             `json:"headline"`
	Guess     string             `json:"guess,omitempty"`
	Labels    []hotdog.Label     `json:"labels"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// URLRequest is the JSON body accepted by AnalyzeURL.
type URLRequest struct {
	URL string `json:"url"`
}

// Routes returns the server mux with CORS applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /analyze", h.Analyze)
	mux.HandleFunc("POST /analyze/url", h.AnalyzeURL)
	return enableCORS(mux)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Analyze accepts a multipart upload in the "image" field.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	log := h.logger.With("request_id", reqID)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, log, reqID, http.StatusRequestEntityTooLarge, "image exceeds upload limit")
			return
		}
		h.fail(w, log, reqID, http.StatusBadRequest, "no image file provided, use 'image' as the form field name")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(w, log, reqID, http.StatusBadRequest, "failed to read image")
		return
	}
	log.Info("hotdog: upload received", "filename", header.Filename, "bytes", len(data))

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.analyzer.AnalyzeBytes(ctx, data)
	h.respond(w, log, reqID, res, err)
}

// AnalyzeURL accepts {"url": "..."} and analyzes the photo it points to.
// Only http and https URLs are accepted; the Analyzer's download client is
// expected to refuse internal addresses (see NewGuardedClient).
func (h *Handler) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	log := h.logger.With("request_id", reqID)

	var req URLRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil || req.URL == "" {
		h.fail(w, log, reqID, http.StatusBadRequest, "invalid JSON, expected {\"url\": \"...\"}")
		return
	}
	if err := checkURL(req.URL); err != nil {
		h.fail(w, log, reqID, http.StatusBadRequest, err.Error())
		return
	}
	log.Info("hotdog: url received", "url", req.URL)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.analyzer.AnalyzeURL(ctx, req.URL)
	h.respond(w, log, reqID, res, err)
}

func (h *Handler) respond(w http.ResponseWriter, log *slog.Logger, reqID string, res *hotdog.Result, err error) {
	if err != nil {
		status := statusFor(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "analysis failed"
		}
		log.Warn("hotdog: analysis failed", "status", status, "error", err.Error())
		h.fail(w, log, reqID, status, msg)
		return
	}

	labels := res.Labels
	if labels == nil {
		labels = []hotdog.Label{}
	}
	log.Info("hotdog: analysis done", "verdict", res.Verdict.Kind.String(), "labels", len(labels))
	writeJSON(w, http.StatusOK, AnalyzeResponse{
		RequestID: reqID,
		Verdict:   res.Verdict.Kind,
		HotDog:    res.Verdict.IsHotDog(),
		Headline:  res.Verdict.Headline(),
		Guess:     res.Verdict.Guess,
		Labels:    labels,
		Width:     res.Size.X,
		Height:    res.Size.Y,
	})
}

// statusFor maps analysis errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, hotdog.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, hotdog.ErrNotImage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, hotdog.ErrLabeling):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, reqID string, status int, msg string) {
	log.Debug("hotdog: request rejected", "status", status, "error", msg)
	writeJSON(w, status, ErrorResponse{RequestID: reqID, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
