// Command hotdogd serves the hot dog classifier over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/api/option"

	"github.com/anatolykoptev/go-hotdog"
	"github.com/anatolykoptev/go-hotdog/cloudvision"
	"github.com/anatolykoptev/go-hotdog/internal/config"
	"github.com/anatolykoptev/go-hotdog/internal/server"
	"github.com/anatolykoptev/go-hotdog/labelcache"
)

func main() {
	configPath := flag.String("config", "hotdogd.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("hotdogd: failed to load config", "path", *configPath, "error", err.Error())
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.GetStringOrDefault(config.KeyLogLevel, "info")),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("hotdogd: exiting", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	analyzer, err := newAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	handler := server.NewHandler(
		analyzer,
		int64(cfg.GetIntOrDefault(config.KeyMaxUploadBytes, server.DefaultMaxUploadBytes)),
		cfg.GetDurationOrDefault(config.KeyRequestTimeout, server.DefaultRequestTimeout),
		logger,
	)

	addr := cfg.GetStringOrDefault(config.KeyListenAddr, ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hotdogd: listening", "addr", addr,
			"max_dimension", analyzer.MaxDimension, "resampler", string(analyzer.Resampler))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("hotdogd: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newAnalyzer builds the hotdog.Config from file settings.
func newAnalyzer(ctx context.Context, cfg *config.Config) (*hotdog.Config, error) {
	resampler, err := hotdog.ParseResampler(cfg.GetString(config.KeyResampler))
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if key := cfg.GetString(config.KeyVisionAPIKey); key != "" {
		opts = append(opts, option.WithAPIKey(key))
	}
	if file := cfg.GetString(config.KeyVisionCredFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	if endpoint := cfg.GetString(config.KeyVisionEndpoint); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	labeler, err := cloudvision.New(ctx, cfg.GetIntOrDefault(config.KeyVisionMaxResults, cloudvision.DefaultMaxResults), opts...)
	if err != nil {
		return nil, err
	}

	cache, err := labelcache.New(cfg.GetIntOrDefault(config.KeyCacheSize, labelcache.DefaultSize))
	if err != nil {
		return nil, err
	}

	return &hotdog.Config{
		Labeler:      labeler,
		Cache:        cache,
		HTTPClient:   server.NewGuardedClient(),
		MaxDimension: cfg.GetFloatOrDefault(config.KeyMaxDimension, hotdog.DefaultMaxDimension),
		Resampler:    resampler,
		JPEGQuality:  cfg.GetIntOrDefault(config.KeyJPEGQuality, hotdog.DefaultJPEGQuality),
		MaxPixels:    cfg.GetIntOrDefault(config.KeyMaxPixels, hotdog.DefaultMaxPixels),
		OnPanic: func(tag string, r any) {
			slog.Error("hotdogd: recovered panic", "tag", tag, "panic", r)
		},
	}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
