package domain

import (
	"context"
	"time"
)

// ProductRepository defines the interface for catalog and competitor-price
// persistence
type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpsertCompetitorProduct(ctx context.Context, productID string, listing *CompetitorListing) error

	// RefreshTargets returns the previously recorded competitor listings
	// for a product, one per competitor URL to re-check
	RefreshTargets(ctx context.Context, productID string) ([]RefreshTarget, error)
	ApplyRefreshUpdates(ctx context.Context, productID string, updates []RefreshUpdate) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PageFetcher retrieves raw page content for a URL, optionally through the
// anti-bot relay. Failures come back as errors, never panics.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string, useProxy bool) (string, error)
}

// SiteScraper is the per-competitor extraction contract. Implementations
// are stateless beyond their configured base URL and safe for concurrent
// use.
//
// SearchProduct returns the first page-order results for a free-text query,
// capped at a small fixed count; a non-nil error means the call itself
// failed, while an empty slice with nil error means the site had no
// matches. GetProductDetails returns nil on any fetch/parse failure;
// callers treat nil as "no update available".
type SiteScraper interface {
	Name() string
	SearchProduct(ctx context.Context, query string) ([]Offer, error)
	GetProductDetails(ctx context.Context, productURL string) (*CompetitorListing, error)
}

// ScraperRegistry resolves competitor ids to scrapers. All returns the
// scrapers in a stable order that aggregated search results follow.
type ScraperRegistry interface {
	Get(competitorID string) (SiteScraper, bool)
	All() []SiteScraper
}
