package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrImageUnavailable means the image URL returned no usable blob.
var ErrImageUnavailable = errors.New("image unavailable")

const maxImageSize = 20 << 20 // 20 MiB

// FetchImage downloads a product image and returns its bytes and content
// type. Images are fetched directly; they are not behind the anti-bot
// interstitials that product pages are, so no channel chain is involved.
func (f *Fetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: status %d", ErrImageUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	if len(body) == 0 {
		return nil, "", fmt.Errorf("%w: empty body", ErrImageUnavailable)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return body, contentType, nil
}
