package conversion

// Variant is one purchasable option scraped from the source listing.
type Variant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
	Stock int     `json:"stock,omitempty"`
}

// RawProduct is what the scraper pulls off a Shopee listing. Transient, never
// persisted.
type RawProduct struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	SourceURL   string    `json:"source_url"`
}

// SpecSet is the specification block of a converted product. Single-layer
// platforms use Flat; two-layer platforms use Groups with Keys preserving
// first-seen key order (Go maps don't).
type SpecSet struct {
	Flat   string              `json:"flat,omitempty"`
	Groups map[string][]string `json:"groups,omitempty"`
	Keys   []string            `json:"keys,omitempty"`
}

// ConvertedProduct is the platform-specific target shape produced by the
// converter and consumed by the exporter.
type ConvertedProduct struct {
	Platform    string    `json:"platform"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Specs       SpecSet   `json:"specs"`
}
