package resolver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/vfarias/promoforge/internal/extractor"
	"github.com/vfarias/promoforge/internal/models"
	"github.com/vfarias/promoforge/internal/price"
)

// Recognized shapes of a Mercado Livre item id inside a product URL, tried in
// order; the first match wins.
var mlItemIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/p/(MLB\d{6,})`),
	regexp.MustCompile(`(MLB)-(\d{6,})`),
	regexp.MustCompile(`\b(MLB\d{6,})\b`),
}

var errNotMercadoLivreURL = errors.New("not a Mercado Livre product URL")

func (r *Resolver) resolveMercadoLivre(ctx context.Context, input string) (*models.ProductRecord, error) {
	cleaned, err := cleanMercadoLivreURL(input)
	if err != nil {
		return nil, models.NewResolveError(models.FailInvalidInput,
			"a URL informada não parece ser de um produto do Mercado Livre", err)
	}

	// API-backed path first: fewer moving parts, no selector fragility.
	if r.preferAPI && r.mlCatalog != nil {
		if itemID := extractItemID(cleaned); itemID != "" {
			record, err := r.resolveFromCatalog(ctx, itemID, cleaned)
			if err == nil {
				return r.finalize(record)
			}
			r.logger.Warn("catalog path failed, falling back to scraping",
				"itemID", itemID, "error", err)
		}
	}

	return r.resolveFromMarkup(ctx, cleaned)
}

func (r *Resolver) resolveFromCatalog(ctx context.Context, itemID, sourceURL string) (*models.ProductRecord, error) {
	item, err := r.mlCatalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	record := &models.ProductRecord{
		Name:         item.Title,
		CurrentPrice: price.FromFloat(item.Price),
		ImageURL:     item.BestImage(),
		SourceURL:    sourceURL,
	}

	if item.OriginalPrice > item.Price {
		record.OriginalPrice = price.FromFloat(item.OriginalPrice)
		pct := math.Round((1 - item.Price/item.OriginalPrice) * 100)
		if pct >= 1 {
			record.DiscountPercent = fmt.Sprintf("%.0f%% OFF", pct)
		}
	}

	if record.CurrentPrice == price.Zero {
		record.CurrentPrice = ""
	}

	return record, nil
}

func (r *Resolver) resolveFromMarkup(ctx context.Context, cleaned string) (*models.ProductRecord, error) {
	markup, attempts, err := r.fetcher.Fetch(ctx, cleaned, r.channels)
	if err != nil {
		return nil, classifyFetchError(err, attempts)
	}

	result, err := r.extractor.Extract(markup, extractor.MercadoLivreStrategies())
	if err != nil {
		return nil, models.NewResolveError(models.FailUnknown,
			"falha ao interpretar a página do produto", err)
	}

	// A lone struck-through price means the item is not discounted; the
	// single price found is the current one.
	currentPrice, originalPrice := result.CurrentPrice, result.OriginalPrice
	if currentPrice == "" && originalPrice != "" {
		currentPrice, originalPrice = originalPrice, ""
	}

	record := &models.ProductRecord{
		Name:            result.Name,
		OriginalPrice:   originalPrice,
		CurrentPrice:    currentPrice,
		ImageURL:        result.ImageURL,
		DiscountPercent: result.DiscountPercent,
		SourceURL:       cleaned,
	}

	return r.finalize(record)
}

// cleanMercadoLivreURL validates the URL shape and strips the tracking query
// and fragment the marketplace appends to shared links. Runs before any
// network call.
func cleanMercadoLivreURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errNotMercadoLivreURL
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, "mercadolivre.com") && !strings.Contains(host, "mercadolibre.com") {
		return "", errNotMercadoLivreURL
	}

	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func extractItemID(productURL string) string {
	for _, pattern := range mlItemIDPatterns {
		matches := pattern.FindStringSubmatch(productURL)
		switch len(matches) {
		case 2:
			return matches[1]
		case 3:
			return matches[1] + matches[2]
		}
	}
	return ""
}
