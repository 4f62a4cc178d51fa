// Package extractor pulls product fields out of raw marketplace markup.
// Marketplace HTML changes between page revisions, so every field carries an
// ordered list of selector rules; the first rule that yields a non-empty
// value wins and the rest are skipped. Fields are independent: one field
// failing never blocks the others.
package extractor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/vfarias/promoforge/internal/price"
)

// Rule is one extraction attempt for a field. Two shapes exist:
//
//   - compound: Selector alone, reading the matched element's text (or the
//     attribute named by Attr);
//   - two-part: Selector plus WholeSelector/CentsSelector, matching the price
//     container and reading the integer and cents fragments separately.
type Rule struct {
	Selector      string
	Attr          string
	WholeSelector string
	CentsSelector string
}

// Strategy is the ordered rule list for a single field.
type Strategy []Rule

// FieldStrategies bundles one strategy per product field.
type FieldStrategies struct {
	Name            Strategy
	OriginalPrice   Strategy
	CurrentPrice    Strategy
	ImageURL        Strategy
	DiscountPercent Strategy
}

// Result holds whatever fields could be extracted. Price fields are already
// in canonical form; empty means not found.
type Result struct {
	Name            string
	OriginalPrice   string
	CurrentPrice    string
	ImageURL        string
	DiscountPercent string
}

type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger.With("component", "extractor")}
}

// Extract applies every field strategy against the markup and accumulates
// whatever matches. Completeness is the caller's policy, not enforced here.
func (e *Extractor) Extract(markup []byte, fs FieldStrategies) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(markup)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	result := &Result{
		Name:            e.firstMatch(doc, fs.Name, false),
		OriginalPrice:   e.firstMatch(doc, fs.OriginalPrice, true),
		CurrentPrice:    e.firstMatch(doc, fs.CurrentPrice, true),
		ImageURL:        e.firstMatch(doc, fs.ImageURL, false),
		DiscountPercent: e.firstMatch(doc, fs.DiscountPercent, false),
	}

	e.logger.Debug("extraction finished",
		"hasName", result.Name != "",
		"hasOriginalPrice", result.OriginalPrice != "",
		"hasCurrentPrice", result.CurrentPrice != "",
		"hasImage", result.ImageURL != "",
		"hasDiscount", result.DiscountPercent != "",
	)

	return result, nil
}

func (e *Extractor) firstMatch(doc *goquery.Document, rules Strategy, isPrice bool) string {
	for _, rule := range rules {
		if value := applyRule(doc, rule, isPrice); value != "" {
			return value
		}
	}
	return ""
}

func applyRule(doc *goquery.Document, rule Rule, isPrice bool) string {
	sel := doc.Find(rule.Selector).First()
	if sel.Length() == 0 {
		return ""
	}

	if rule.WholeSelector != "" {
		whole := strings.TrimSpace(sel.Find(rule.WholeSelector).First().Text())
		if whole == "" {
			return ""
		}
		cents := strings.TrimSpace(sel.Find(rule.CentsSelector).First().Text())
		return price.NormalizeFromParts(whole, cents)
	}

	var raw string
	if rule.Attr != "" {
		raw, _ = sel.Attr(rule.Attr)
	} else {
		raw = sel.Text()
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if isPrice {
		normalized := price.Normalize(raw)
		if normalized == price.Zero {
			return ""
		}
		return normalized
	}

	return raw
}
