// Package resolver orchestrates a single product resolution: validate the
// user-supplied URL or code, obtain product data (catalog API first, HTML
// scraping as fallback), enforce the mandatory-field gate and hand back an
// immutable ProductRecord or a classified failure. Each call is independent;
// nothing is cached or shared between calls.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/vfarias/promoforge/internal/catalog"
	"github.com/vfarias/promoforge/internal/extractor"
	"github.com/vfarias/promoforge/internal/fetcher"
	"github.com/vfarias/promoforge/internal/models"
)

const maxFileNameLength = 60

// markupFetcher is the slice of the Source Fetcher the resolver needs.
type markupFetcher interface {
	Fetch(ctx context.Context, targetURL string, channels []fetcher.ChannelSpec) ([]byte, []models.FetchAttempt, error)
}

// ItemCatalog resolves Mercado Livre items through the public catalog API.
type ItemCatalog interface {
	GetItem(ctx context.Context, id string) (*catalog.Item, error)
}

// AmazonCatalog resolves Amazon products through a scraping API.
type AmazonCatalog interface {
	GetProduct(ctx context.Context, productURL string) (*catalog.AmazonProduct, error)
}

type Resolver struct {
	fetcher   markupFetcher
	extractor *extractor.Extractor
	mlCatalog ItemCatalog
	amazon    AmazonCatalog
	channels  []fetcher.ChannelSpec
	preferAPI bool
	logger    *slog.Logger
}

// Options selects the target store for one resolution.
type Options struct {
	Store models.Store
}

type Config struct {
	Channels  []fetcher.ChannelSpec
	PreferAPI bool
}

func New(f markupFetcher, e *extractor.Extractor, mlCatalog ItemCatalog, amazon AmazonCatalog, cfg Config, logger *slog.Logger) *Resolver {
	return &Resolver{
		fetcher:   f,
		extractor: e,
		mlCatalog: mlCatalog,
		amazon:    amazon,
		channels:  cfg.Channels,
		preferAPI: cfg.PreferAPI,
		logger:    logger.With("component", "resolver"),
	}
}

// Resolve runs the full pipeline for one user action. The returned error is
// always a *models.ResolveError.
func (r *Resolver) Resolve(ctx context.Context, input string, opts Options) (*models.ProductRecord, error) {
	store := opts.Store
	if store == "" {
		store = models.StoreMercadoLivre
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, models.NewResolveError(models.FailInvalidInput,
			"informe a URL ou o código do produto", nil)
	}

	switch store {
	case models.StoreMercadoLivre:
		return r.resolveMercadoLivre(ctx, input)
	case models.StoreAmazon:
		return r.resolveAmazon(ctx, input)
	default:
		return nil, models.NewResolveError(models.FailInvalidInput,
			"loja não suportada: "+string(store), nil)
	}
}

// finalize applies the completeness gate and the normalizing step shared by
// every store path.
func (r *Resolver) finalize(record *models.ProductRecord) (*models.ProductRecord, error) {
	if !record.Complete() {
		missing := record.MissingFields()
		r.logger.Warn("mandatory fields unresolved", "missing", missing)
		return nil, models.NewResolveError(models.FailIncompleteData,
			"não foi possível extrair os campos obrigatórios: "+strings.Join(missing, ", "), nil)
	}

	record.FileName = deriveFileName(record.Name)

	r.logger.Info("product resolved",
		"name", record.Name,
		"hasOriginalPrice", record.OriginalPrice != "",
		"hasDiscount", record.DiscountPercent != "",
	)

	return record, nil
}

func classifyFetchError(err error, attempts []models.FetchAttempt) *models.ResolveError {
	if errors.Is(err, fetcher.ErrExhausted) || errors.Is(err, fetcher.ErrNoChannels) {
		rerr := models.NewResolveError(models.FailUnreachable,
			"não foi possível acessar a página do produto", err)
		rerr.Attempts = attempts
		return rerr
	}
	rerr := models.NewResolveError(models.FailUnknown,
		"falha inesperada ao buscar a página do produto", err)
	rerr.Attempts = attempts
	return rerr
}

// deriveFileName turns a product name into a safe default filename for the
// downloaded image: lower-cased, runs of non-alphanumerics collapsed to a
// single dash, capped in length.
func deriveFileName(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
		if b.Len() >= maxFileNameLength {
			break
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "produto"
	}
	return slug
}
