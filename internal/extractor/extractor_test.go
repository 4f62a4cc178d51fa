package extractor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *Extractor {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const discountedProductPage = `<!DOCTYPE html>
<html>
<body>
	<h1 class="ui-pdp-title">Fone de Ouvido Bluetooth XYZ</h1>
	<div class="ui-pdp-price">
		<div class="ui-pdp-price__first-line">
			<s class="ui-pdp-price__part ui-pdp-price__original-value andes-money-amount--previous">
				<span class="andes-money-amount__fraction">199</span>
				<span class="andes-money-amount__cents">90</span>
			</s>
		</div>
		<div class="ui-pdp-price__second-line">
			<span class="andes-money-amount">
				<span class="andes-money-amount__fraction">149</span>
				<span class="andes-money-amount__cents">9</span>
			</span>
			<span class="andes-money-amount__discount">25% OFF</span>
		</div>
	</div>
	<figure class="ui-pdp-gallery__figure">
		<img src="https://http2.mlstatic.com/D_NQ_NP_123-O.webp" alt="Fone">
	</figure>
</body>
</html>`

func TestExtractDiscountedProduct(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract([]byte(discountedProductPage), MercadoLivreStrategies())
	require.NoError(t, err)

	assert.Equal(t, "Fone de Ouvido Bluetooth XYZ", result.Name)
	assert.Equal(t, "R$ 199,90", result.OriginalPrice)
	assert.Equal(t, "R$ 149,90", result.CurrentPrice, "short cents must be right-padded")
	assert.Equal(t, "https://http2.mlstatic.com/D_NQ_NP_123-O.webp", result.ImageURL)
	assert.Equal(t, "25% OFF", result.DiscountPercent)
}

func TestExtractWithoutDiscountElement(t *testing.T) {
	e := newTestExtractor()

	markup := `<html><body>
		<h1 class="ui-pdp-title">Produto Sem Desconto</h1>
		<div class="ui-pdp-price__second-line">
			<span class="andes-money-amount">
				<span class="andes-money-amount__fraction">89</span>
				<span class="andes-money-amount__cents">50</span>
			</span>
		</div>
		<figure class="ui-pdp-gallery__figure"><img src="https://example.com/img.jpg"></figure>
	</body></html>`

	result, err := e.Extract([]byte(markup), MercadoLivreStrategies())
	require.NoError(t, err)

	assert.Equal(t, "Produto Sem Desconto", result.Name)
	assert.Equal(t, "R$ 89,50", result.CurrentPrice)
	assert.Equal(t, "https://example.com/img.jpg", result.ImageURL)
	assert.Empty(t, result.OriginalPrice)
	assert.Empty(t, result.DiscountPercent, "optional field absence must not block the rest")
}

func TestExtractFallsBackToLaterRules(t *testing.T) {
	e := newTestExtractor()

	// Older page revision: no ui-pdp classes, only the legacy price tag and
	// og meta tags.
	markup := `<html><head>
		<meta property="og:title" content="Produto Antigo">
		<meta property="og:image" content="https://example.com/og.jpg">
	</head><body>
		<div class="ui-pdp-price__second-line"><span class="price-tag-amount">R$ 59,99</span></div>
	</body></html>`

	result, err := e.Extract([]byte(markup), MercadoLivreStrategies())
	require.NoError(t, err)

	assert.Equal(t, "Produto Antigo", result.Name)
	assert.Equal(t, "R$ 59,99", result.CurrentPrice)
	assert.Equal(t, "https://example.com/og.jpg", result.ImageURL)
}

func TestExtractFirstRuleWinsPerField(t *testing.T) {
	e := newTestExtractor()

	markup := `<html><head>
		<meta property="og:title" content="Título do OG">
	</head><body>
		<h1 class="ui-pdp-title">Título da Página</h1>
	</body></html>`

	result, err := e.Extract([]byte(markup), MercadoLivreStrategies())
	require.NoError(t, err)
	assert.Equal(t, "Título da Página", result.Name)
}

func TestExtractEmptyMarkup(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract([]byte("<html><body></body></html>"), MercadoLivreStrategies())
	require.NoError(t, err)

	assert.Empty(t, result.Name)
	assert.Empty(t, result.CurrentPrice)
	assert.Empty(t, result.ImageURL)
}

func TestExtractIgnoresUnparsablePriceText(t *testing.T) {
	e := newTestExtractor()

	markup := `<html><body>
		<div class="ui-pdp-price__second-line"><span class="price-tag-amount">consulte</span></div>
	</body></html>`

	result, err := e.Extract([]byte(markup), MercadoLivreStrategies())
	require.NoError(t, err)
	assert.Empty(t, result.CurrentPrice, "non-numeric price text must not produce a zero price")
}
