package extractor

// MercadoLivreStrategies returns the selector strategies for Mercado Livre
// product pages. The ui-pdp/andes classes cover the current page layout; the
// price-tag and meta/og rules cover older revisions still served from cache.
func MercadoLivreStrategies() FieldStrategies {
	return FieldStrategies{
		Name: Strategy{
			{Selector: "h1.ui-pdp-title"},
			{Selector: ".ui-pdp-title"},
			{Selector: "h1[data-testid='title']"},
			{Selector: "meta[property='og:title']", Attr: "content"},
		},
		OriginalPrice: Strategy{
			{
				Selector:      ".ui-pdp-price__part.ui-pdp-price__original-value.andes-money-amount--previous",
				WholeSelector: ".andes-money-amount__fraction",
				CentsSelector: ".andes-money-amount__cents",
			},
			{
				Selector:      "s.andes-money-amount--previous",
				WholeSelector: ".andes-money-amount__fraction",
				CentsSelector: ".andes-money-amount__cents",
			},
			{Selector: ".andes-money-amount--previous-price .andes-money-amount__fraction"},
		},
		CurrentPrice: Strategy{
			{
				Selector:      ".ui-pdp-price__second-line .andes-money-amount",
				WholeSelector: ".andes-money-amount__fraction",
				CentsSelector: ".andes-money-amount__cents",
			},
			{Selector: ".ui-pdp-price__second-line .price-tag-amount"},
			{Selector: "[data-testid='price'] .andes-money-amount__fraction"},
			{Selector: "meta[itemprop='price']", Attr: "content"},
		},
		ImageURL: Strategy{
			{Selector: ".ui-pdp-gallery__figure img", Attr: "src"},
			{Selector: "figure.ui-pdp-gallery__figure img", Attr: "data-zoom"},
			{Selector: "img.ui-pdp-image", Attr: "src"},
			{Selector: "meta[property='og:image']", Attr: "content"},
		},
		DiscountPercent: Strategy{
			{Selector: ".ui-pdp-price__second-line .andes-money-amount__discount"},
			{Selector: ".andes-money-amount__discount"},
		},
	}
}
