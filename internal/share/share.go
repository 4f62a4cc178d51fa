// Package share builds the promotional WhatsApp message for a resolved
// product and the deep link that opens it in a chat.
package share

import (
	"net/url"
	"strings"

	"github.com/vfarias/promoforge/internal/models"
)

const whatsAppShareBase = "https://wa.me/"

// MessageOptions tweaks the formatted message. CustomLink replaces the
// product's source URL when the user wants a shortened or affiliate link.
type MessageOptions struct {
	CouponCode string
	CustomLink string
}

// FormatMessage renders the promotional text. The "De:" line only appears
// when a pre-discount price exists.
func FormatMessage(record *models.ProductRecord, opts MessageOptions) string {
	var b strings.Builder

	b.WriteString("*" + record.Name + "*\n\n")

	if record.OriginalPrice != "" {
		b.WriteString("De: ~" + record.OriginalPrice + "~\n")
	}
	b.WriteString("Por: *" + record.CurrentPrice + "*\n\n")

	if opts.CouponCode != "" {
		b.WriteString("CUPOM DE DESCONTO: *" + opts.CouponCode + "*\n\n")
	}

	link := record.SourceURL
	if opts.CustomLink != "" {
		link = opts.CustomLink
	}
	b.WriteString(link)

	return b.String()
}

// WhatsAppLink returns the wa.me deep link that opens a chat with the
// message prefilled.
func WhatsAppLink(message string) string {
	return whatsAppShareBase + "?text=" + url.QueryEscape(message)
}
