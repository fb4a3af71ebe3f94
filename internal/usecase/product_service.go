package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/Dawar13/firefly-backend/internal/domain"
)

// Package-level compiled regex patterns for cache-key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	SearchCacheTTL time.Duration
}

// ProductService is the application service behind the price API: catalog
// reads, competitor price refreshes, and cross-site search with a short
// result cache. The scrape core itself stays cache-free; only this layer
// remembers anything.
type ProductService struct {
	repo     domain.ProductRepository
	cache    domain.CacheRepository
	scrapes  *ScrapeService
	cacheTTL time.Duration
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	repo domain.ProductRepository,
	cache domain.CacheRepository,
	scrapes *ScrapeService,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.SearchCacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &ProductService{
		repo:     repo,
		cache:    cache,
		scrapes:  scrapes,
		cacheTTL: cacheTTL,
	}
}

// ListProducts returns catalog products with their stored competitor rows
func (s *ProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// GetProduct returns one catalog product with its stored competitor rows
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.GetProduct(ctx, id)
}

// CreateProduct adds a catalog product
func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product == nil || product.Name == "" {
		return domain.ErrInvalidRequest
	}
	return s.repo.CreateProduct(ctx, product)
}

// TrackCompetitor scrapes a competitor product page and records it against
// the catalog product, so subsequent refreshes re-check it. The page is
// scraped immediately; a page that cannot be read is not recorded.
func (s *ProductService) TrackCompetitor(ctx context.Context, productID, competitorID, pageURL string) (*domain.CompetitorListing, error) {
	if competitorID == "" || pageURL == "" {
		return nil, domain.ErrInvalidRequest
	}
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	listing, err := s.scrapes.Details(ctx, competitorID, pageURL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpsertCompetitorProduct(ctx, productID, listing); err != nil {
		return nil, fmt.Errorf("recording competitor listing: %w", err)
	}
	return listing, nil
}

// RefreshProduct re-scrapes every recorded competitor listing for a
// product and persists the updates that succeeded. It returns the updates
// so the caller can report which competitors moved.
func (s *ProductService) RefreshProduct(ctx context.Context, productID string) ([]domain.RefreshUpdate, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	targets, err := s.repo.RefreshTargets(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("loading refresh targets: %w", err)
	}

	updates := s.scrapes.Refresh(ctx, productID, targets)
	if len(updates) == 0 {
		return updates, nil
	}

	if err := s.repo.ApplyRefreshUpdates(ctx, productID, updates); err != nil {
		return nil, fmt.Errorf("persisting refresh updates: %w", err)
	}
	return updates, nil
}

// SearchCompetitors fans the query out across every competitor site.
// Results are served from the short-lived cache when an identical query
// was run recently; they are never persisted.
func (s *ProductService) SearchCompetitors(ctx context.Context, query string) ([]domain.Offer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := searchCacheKey(query)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if offers := offersFromCache(cached); offers != nil {
			return offers, nil
		}
	}

	offers := s.scrapes.SearchAll(ctx, query)

	if err := s.cache.Set(ctx, cacheKey, offers, s.cacheTTL); err != nil {
		// A failed cache write only costs the next caller a re-scrape
		log.Printf("[search] cache write failed for %q: %v", query, err)
	}

	return offers, nil
}

// searchCacheKey creates a normalized cache key from a search query.
// Format: "search:{normalized_query}"
func searchCacheKey(query string) string {
	normalized := strings.ToLower(query)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("search:%s", strings.TrimSpace(normalized))
}

// offersFromCache converts a cached value (a JSON round-tripped slice of
// maps) back into offers. A value in an unexpected shape is treated as a
// miss.
func offersFromCache(value interface{}) []domain.Offer {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}

	offers := make([]domain.Offer, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil
		}

		var offer domain.Offer
		if v, ok := entry["name"].(string); ok {
			offer.Name = v
		}
		if v, ok := entry["price"].(float64); ok {
			offer.Price = v
		}
		if v, ok := entry["url"].(string); ok {
			offer.URL = v
		}
		if v, ok := entry["imageUrl"].(string); ok {
			offer.ImageURL = v
		}
		if v, ok := entry["competitor"].(string); ok {
			offer.CompetitorID = v
		}
		offers = append(offers, offer)
	}
	return offers
}
