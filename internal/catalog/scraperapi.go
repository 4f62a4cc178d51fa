package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrMissingAPIKey means the scraper API client was constructed without a
// key. The key comes from configuration only; it is never embedded here.
var ErrMissingAPIKey = errors.New("scraper API key not configured")

// AmazonProduct is the autoparsed JSON a scraper API returns for an Amazon
// product page.
type AmazonProduct struct {
	Name      string   `json:"name"`
	Pricing   string   `json:"pricing"`
	ListPrice string   `json:"list_price"`
	Images    []string `json:"images"`
}

// ScraperAPIClient resolves Amazon product pages through a scraping API that
// handles the anti-bot layer and returns structured JSON.
type ScraperAPIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewScraperAPIClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *ScraperAPIClient {
	return &ScraperAPIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "scraper_api"),
	}
}

// GetProduct fetches the autoparsed product data for the given Amazon URL.
func (c *ScraperAPIClient) GetProduct(ctx context.Context, productURL string) (*AmazonProduct, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("url", productURL)
	q.Set("output_format", "json")
	q.Set("autoparse", "true")
	requestURL := fmt.Sprintf("%s/?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scraper API request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read scraper API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("scraper API rejected request", "status", resp.StatusCode)
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var product AmazonProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode scraper API response: %w", err)
	}
	if product.Name == "" {
		return nil, fmt.Errorf("%w: empty product payload", ErrItemNotFound)
	}

	return &product, nil
}
