// Package price converts the heterogeneous price fragments found in
// marketplace markup into a single canonical currency string. The canonical
// form is locale-fixed Brazilian real formatting ("R$ 1.234,56") regardless
// of where the caller runs.
package price

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Zero is the canonical rendering of an empty or unparsable price. Callers
// decide whether a zero price is acceptable.
const Zero = "R$ 0,00"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Normalize parses a raw textual price fragment into the canonical form.
//
// Only digits and the decimal comma survive cleaning; dots are treated as
// thousand separators and dropped. A digit run without any comma is read as
// an amount in cents ("4490" -> "R$ 44,90") because some page revisions
// render prices without punctuation. That is a deliberate heuristic for this
// markup, not a universal parsing rule.
func Normalize(raw string) string {
	cleaned := keepDigitsAndComma(raw)
	if cleaned == "" {
		return Zero
	}

	sep := strings.LastIndex(cleaned, ",")
	if sep < 0 {
		cents, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return Zero
		}
		return format(cents)
	}

	whole := keepDigits(cleaned[:sep])
	fraction := keepDigits(cleaned[sep+1:])
	return NormalizeFromParts(whole, fraction)
}

// NormalizeFromParts combines separately matched whole and fractional price
// fragments. A short or missing fraction is right-padded with zeros to two
// digits ("44", "9" -> "R$ 44,90"); anything past two digits is ignored.
func NormalizeFromParts(whole, fraction string) string {
	whole = keepDigits(whole)
	fraction = keepDigits(fraction)

	if whole == "" && fraction == "" {
		return Zero
	}
	if whole == "" {
		whole = "0"
	}

	for len(fraction) < 2 {
		fraction += "0"
	}
	fraction = fraction[:2]

	wholeVal, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Zero
	}
	fracVal, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil {
		return Zero
	}

	return format(wholeVal*100 + fracVal)
}

// FromFloat renders an already-numeric amount (e.g. from a catalog API) in
// the canonical form. Non-positive amounts collapse to the zero price.
func FromFloat(v float64) string {
	if v <= 0 {
		return Zero
	}
	return format(int64(math.Round(v * 100)))
}

func format(cents int64) string {
	return printer.Sprintf("R$ %.2f", float64(cents)/100)
}

func keepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func keepDigitsAndComma(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, s)
}
