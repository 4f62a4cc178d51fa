package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/vfarias/promoforge/internal/catalog"
	"github.com/vfarias/promoforge/internal/models"
	"github.com/vfarias/promoforge/internal/price"
)

const amazonBaseURL = "https://www.amazon.com.br"

var (
	asinPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

	// URL shapes an ASIN can hide in, tried in order.
	amazonURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/dp/([A-Z0-9]{10})`),
		regexp.MustCompile(`/gp/product/([A-Z0-9]{10})`),
		regexp.MustCompile(`/product/([A-Z0-9]{10})`),
	}
)

// resolveAmazon goes through the scraping API: Amazon pages are too hostile
// for plain HTTP fetching, so there is no markup fallback for this store.
func (r *Resolver) resolveAmazon(ctx context.Context, input string) (*models.ProductRecord, error) {
	asin, err := extractASIN(input)
	if err != nil {
		return nil, models.NewResolveError(models.FailInvalidInput,
			"informe um código de produto Amazon válido (10 caracteres)", err)
	}

	if r.amazon == nil {
		return nil, models.NewResolveError(models.FailUnknown,
			"a busca de produtos Amazon não está configurada", nil)
	}

	productURL := fmt.Sprintf("%s/dp/%s", amazonBaseURL, asin)
	r.logger.Info("resolving via scraper API", "asin", asin)

	product, err := r.amazon.GetProduct(ctx, productURL)
	if err != nil {
		return nil, classifyCatalogError(err)
	}

	record := &models.ProductRecord{
		Name:         product.Name,
		CurrentPrice: normalizeOptionalPrice(product.Pricing),
		SourceURL:    productURL,
	}

	if original := normalizeOptionalPrice(product.ListPrice); original != "" && original != record.CurrentPrice {
		record.OriginalPrice = original
	}
	if len(product.Images) > 0 {
		record.ImageURL = product.Images[0]
	}

	return r.finalize(record)
}

// extractASIN accepts either a bare 10-character code or a product URL
// containing one.
func extractASIN(input string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(input))
	if asinPattern.MatchString(code) {
		return code, nil
	}

	for _, pattern := range amazonURLPatterns {
		if matches := pattern.FindStringSubmatch(input); len(matches) == 2 {
			return matches[1], nil
		}
	}

	return "", errors.New("no ASIN found in input")
}

func classifyCatalogError(err error) *models.ResolveError {
	var upstream *catalog.UpstreamError
	switch {
	case errors.As(err, &upstream):
		return models.NewResolveError(models.FailUpstream,
			"o serviço de catálogo recusou a consulta", err)
	case errors.Is(err, catalog.ErrItemNotFound):
		return models.NewResolveError(models.FailIncompleteData,
			"dados do produto não encontrados", err)
	case errors.Is(err, catalog.ErrMissingAPIKey):
		return models.NewResolveError(models.FailUnknown,
			"a busca de produtos Amazon não está configurada", err)
	default:
		return models.NewResolveError(models.FailUnreachable,
			"não foi possível consultar o catálogo do produto", err)
	}
}

// normalizeOptionalPrice keeps absence distinct from zero: upstream sends
// free-text like "Preço não disponível" for missing prices, which must map
// to empty, not to R$ 0,00.
func normalizeOptionalPrice(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	normalized := price.Normalize(raw)
	if normalized == price.Zero {
		return ""
	}
	return normalized
}
