package models

// Store identifies which marketplace a resolution targets.
type Store string

const (
	StoreMercadoLivre Store = "mercadolivre"
	StoreAmazon       Store = "amazon"
)

// ProductRecord is the validated output of a resolution. OriginalPrice is
// empty when no pre-discount price exists on the page; that is distinct from
// a zero price. When OriginalPrice is present it is expected to be >= the
// current price, but that is not machine-enforced.
type ProductRecord struct {
	Name            string `json:"name"`
	OriginalPrice   string `json:"original_price,omitempty"`
	CurrentPrice    string `json:"current_price"`
	ImageURL        string `json:"image_url"`
	DiscountPercent string `json:"discount_percent,omitempty"`
	SourceURL       string `json:"source_url"`
	FileName        string `json:"file_name"`
}

// Complete reports whether every mandatory field is set.
func (p *ProductRecord) Complete() bool {
	return p.Name != "" && p.CurrentPrice != "" && p.ImageURL != ""
}

// MissingFields lists the mandatory fields that are still empty.
func (p *ProductRecord) MissingFields() []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.CurrentPrice == "" {
		missing = append(missing, "current_price")
	}
	if p.ImageURL == "" {
		missing = append(missing, "image_url")
	}
	return missing
}
