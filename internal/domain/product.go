package domain

import "time"

// Product is a Firefly catalog product tracked against competitor listings
type Product struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	SKU          string              `json:"sku,omitempty"`
	Description  string              `json:"description,omitempty"`
	Category     string              `json:"category,omitempty"`
	FireflyPrice float64             `json:"fireflyPrice"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	URL          string              `json:"url,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Competitors  []CompetitorProduct `json:"competitors"`
}

// CompetitorProduct is a stored competitor listing for one Product,
// re-checked on every price refresh
type CompetitorProduct struct {
	ID             string    `json:"-"`
	ProductID      string    `json:"-"`
	CompetitorName string    `json:"competitorName"`
	Name           string    `json:"competitorProductName"`
	SKU            string    `json:"competitorSku,omitempty"`
	Price          float64   `json:"price"`
	URL            string    `json:"url"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	IsAvailable    bool      `json:"isAvailable"`
	LastChecked    time.Time `json:"lastChecked"`
}

// ProductFilter narrows ListProducts results
type ProductFilter struct {
	MinPrice *float64
	MaxPrice *float64
	Category string
}

// Offer is the normalized record every site scraper converges to.
// Price 0 means "could not determine a price", never a real zero price.
type Offer struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	URL          string  `json:"url"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	CompetitorID string  `json:"competitor"`
}

// CompetitorListing is a scraped product page: the core offer fields plus
// whatever extras the site exposes
type CompetitorListing struct {
	Offer
	Description   string   `json:"description,omitempty"`
	SKU           string   `json:"sku,omitempty"`
	Certification string   `json:"certification,omitempty"`
	IsLabGrown    bool     `json:"isLabGrown,omitempty"`
	Features      []string `json:"features,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
}

// RefreshTarget is one previously recorded competitor listing to re-check
type RefreshTarget struct {
	CompetitorID string
	URL          string
}

// RefreshUpdate carries the values to persist for one refreshed competitor
// listing. URL identifies the row: a product may track several listings
// from the same competitor.
type RefreshUpdate struct {
	CompetitorID string    `json:"competitor"`
	URL          string    `json:"url"`
	Price        float64   `json:"price"`
	IsAvailable  bool      `json:"isAvailable"`
	CheckedAt    time.Time `json:"checkedAt"`
}
