package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Item is the subset of the Mercado Livre items API payload this service
// consumes. OriginalPrice is null in the API when the item has no discount.
type Item struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price"`
	Permalink     string    `json:"permalink"`
	Thumbnail     string    `json:"thumbnail"`
	Pictures      []Picture `json:"pictures"`
}

type Picture struct {
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

// BestImage picks the highest-fidelity image URL available on the item.
func (i *Item) BestImage() string {
	for _, p := range i.Pictures {
		if p.SecureURL != "" {
			return p.SecureURL
		}
		if p.URL != "" {
			return p.URL
		}
	}
	return i.Thumbnail
}

// MercadoLivreClient fetches items from the public Mercado Livre catalog API.
type MercadoLivreClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewMercadoLivreClient(baseURL string, timeout time.Duration, logger *slog.Logger) *MercadoLivreClient {
	return &MercadoLivreClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "ml_catalog"),
	}
}

// GetItem retrieves a single item by resource id (e.g. "MLB1234567890").
func (c *MercadoLivreClient) GetItem(ctx context.Context, id string) (*Item, error) {
	url := fmt.Sprintf("%s/items/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog rejected request", "status", resp.StatusCode, "id", id)
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var item Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("failed to decode catalog item: %w", err)
	}
	if item.Title == "" {
		return nil, fmt.Errorf("%w: empty item payload", ErrItemNotFound)
	}

	return &item, nil
}
