package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vfarias/promoforge/internal/api"
	"github.com/vfarias/promoforge/internal/catalog"
	"github.com/vfarias/promoforge/internal/config"
	"github.com/vfarias/promoforge/internal/extractor"
	"github.com/vfarias/promoforge/internal/fetcher"
	"github.com/vfarias/promoforge/internal/resolver"
)

func main() {
	// .env is optional; plain environment variables work too.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := fetcher.New(fetcher.Config{
		UserAgent:     cfg.Fetcher.UserAgent,
		MinBodyLength: cfg.Fetcher.MinBodyLength,
		Timeout:       cfg.Fetcher.Timeout,
	}, logger)

	relays, relayOrder := fetcher.DefaultRelays()
	channels := fetcher.DefaultChannels(cfg.Fetcher.LocalProxyURL, relays, relayOrder)

	mlCatalog := catalog.NewMercadoLivreClient(cfg.Catalog.MercadoLivreBaseURL, cfg.Catalog.Timeout, logger)

	var amazonCatalog *catalog.ScraperAPIClient
	if cfg.Catalog.ScraperAPIKey != "" {
		amazonCatalog = catalog.NewScraperAPIClient(
			cfg.Catalog.ScraperAPIBaseURL, cfg.Catalog.ScraperAPIKey, cfg.Catalog.Timeout, logger)
	} else {
		logger.Warn("scraper API key not set, Amazon store disabled")
	}

	res := resolver.New(f, extractor.New(logger), mlCatalog, amazonOrNil(amazonCatalog), resolver.Config{
		Channels:  channels,
		PreferAPI: cfg.Resolver.PreferAPI,
	}, logger)

	handlers := api.NewHandlers(res, f, logger)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handlers.Router(cfg.Server.ProxyRateLimit),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

// amazonOrNil keeps the resolver's nil check working: a typed nil pointer
// inside the interface would defeat it.
func amazonOrNil(c *catalog.ScraperAPIClient) resolver.AmazonCatalog {
	if c == nil {
		return nil
	}
	return c
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
