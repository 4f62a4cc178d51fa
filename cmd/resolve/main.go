package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vfarias/promoforge/internal/catalog"
	"github.com/vfarias/promoforge/internal/config"
	"github.com/vfarias/promoforge/internal/extractor"
	"github.com/vfarias/promoforge/internal/fetcher"
	"github.com/vfarias/promoforge/internal/models"
	"github.com/vfarias/promoforge/internal/resolver"
	"github.com/vfarias/promoforge/internal/share"
)

func main() {
	var (
		input  = flag.String("input", "", "Product URL (Mercado Livre) or product code (Amazon)")
		store  = flag.String("store", "mercadolivre", "Target store: mercadolivre or amazon")
		output = flag.String("output", "text", "Output format: text, json")
		coupon = flag.String("coupon", "", "Optional coupon code for the share message")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Use -input to specify a product URL or code.")
		flag.Usage()
		os.Exit(1)
	}

	// .env is optional; plain environment variables work too.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the resolved output stays pipeable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

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

	var amazonCatalog resolver.AmazonCatalog
	if cfg.Catalog.ScraperAPIKey != "" {
		amazonCatalog = catalog.NewScraperAPIClient(
			cfg.Catalog.ScraperAPIBaseURL, cfg.Catalog.ScraperAPIKey, cfg.Catalog.Timeout, logger)
	}

	res := resolver.New(f, extractor.New(logger), mlCatalog, amazonCatalog, resolver.Config{
		Channels:  channels,
		PreferAPI: cfg.Resolver.PreferAPI,
	}, logger)

	record, err := res.Resolve(ctx, *input, resolver.Options{Store: models.Store(*store)})
	if err != nil {
		var rerr *models.ResolveError
		if errors.As(err, &rerr) {
			fmt.Fprintf(os.Stderr, "%s (%s)\n", rerr.Message, rerr.Kind)
			for _, attempt := range rerr.Attempts {
				fmt.Fprintf(os.Stderr, "  channel %-12s %s (status %d, %d bytes)\n",
					attempt.Channel, attempt.Outcome, attempt.Status, attempt.BodyLength)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	message := share.FormatMessage(record, share.MessageOptions{CouponCode: *coupon})

	switch *output {
	case "json":
		out := struct {
			*models.ProductRecord
			Message     string `json:"message"`
			WhatsAppURL string `json:"whatsapp_url"`
		}{record, message, share.WhatsAppLink(message)}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Nome:     %s\n", record.Name)
		if record.OriginalPrice != "" {
			fmt.Printf("De:       %s\n", record.OriginalPrice)
		}
		fmt.Printf("Por:      %s\n", record.CurrentPrice)
		if record.DiscountPercent != "" {
			fmt.Printf("Desconto: %s\n", record.DiscountPercent)
		}
		fmt.Printf("Imagem:   %s\n", record.ImageURL)
		fmt.Printf("Arquivo:  %s\n", record.FileName)
		fmt.Printf("\n%s\n", message)
	}
}
