package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Dawar13/firefly-backend/internal/domain"
)

// defaultMaxParallel matches the number of registered competitors; the
// adapter set is small and fixed, so one worker per site is enough to keep
// a slow response from serializing the rest.
const defaultMaxParallel = 6

// ScrapeServiceConfig holds configuration for the scrape orchestrator
type ScrapeServiceConfig struct {
	MaxParallel int
}

// ScrapeService fans a single logical request out across the competitor
// scrapers and aggregates partial results. Every per-site outcome is best
// effort: a broken or slow competitor contributes nothing, it never aborts
// the batch.
type ScrapeService struct {
	registry    domain.ScraperRegistry
	maxParallel int
}

// NewScrapeService creates a new scrape orchestrator
func NewScrapeService(registry domain.ScraperRegistry, config ScrapeServiceConfig) *ScrapeService {
	maxParallel := config.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}

	return &ScrapeService{
		registry:    registry,
		maxParallel: maxParallel,
	}
}

// Refresh re-checks every supplied competitor listing and returns the
// updates that actually yielded a fresh page. Targets with an unknown
// competitor id are skipped (nothing to do, not an error) and targets
// whose scrape fails leave the prior stored value untouched.
func (s *ScrapeService) Refresh(ctx context.Context, productID string, targets []domain.RefreshTarget) []domain.RefreshUpdate {
	results := make([]*domain.RefreshUpdate, len(targets))
	sem := make(chan struct{}, s.maxParallel)
	var wg sync.WaitGroup

	for i, target := range targets {
		scraper, ok := s.registry.Get(target.CompetitorID)
		if !ok {
			log.Printf("[scrape] no scraper registered for %q, skipping target", target.CompetitorID)
			continue
		}

		wg.Add(1)
		go func(i int, scraper domain.SiteScraper, pageURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			listing := s.productDetails(ctx, scraper, pageURL)
			if listing == nil {
				return
			}

			results[i] = &domain.RefreshUpdate{
				CompetitorID: scraper.Name(),
				URL:          pageURL,
				Price:        listing.Price,
				IsAvailable:  listing.IsAvailable,
				CheckedAt:    time.Now().UTC(),
			}
		}(i, scraper, target.URL)
	}
	wg.Wait()

	updates := make([]domain.RefreshUpdate, 0, len(targets))
	for _, update := range results {
		if update != nil {
			updates = append(updates, *update)
		}
	}

	if len(updates) < len(targets) {
		log.Printf("[scrape] refresh for product %s updated %d of %d targets", productID, len(updates), len(targets))
	}
	return updates
}

// Details scrapes a single competitor product page. Unlike Refresh this
// surfaces failures: the caller is recording a new listing and needs to
// know the page could not be read.
func (s *ScrapeService) Details(ctx context.Context, competitorID, pageURL string) (*domain.CompetitorListing, error) {
	scraper, ok := s.registry.Get(competitorID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown competitor %q", domain.ErrInvalidRequest, competitorID)
	}

	listing := s.productDetails(ctx, scraper, pageURL)
	if listing == nil {
		return nil, fmt.Errorf("%w: %s page %s", domain.ErrFetchFailed, competitorID, pageURL)
	}
	return listing, nil
}

// SearchAll runs the query against every registered scraper and
// concatenates the non-failing results in registry order. Within one
// competitor the page order is preserved.
func (s *ScrapeService) SearchAll(ctx context.Context, query string) []domain.Offer {
	scrapers := s.registry.All()
	perSite := make([][]domain.Offer, len(scrapers))
	sem := make(chan struct{}, s.maxParallel)
	var wg sync.WaitGroup

	for i, scraper := range scrapers {
		wg.Add(1)
		go func(i int, scraper domain.SiteScraper) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			perSite[i] = s.searchSite(ctx, scraper, query)
		}(i, scraper)
	}
	wg.Wait()

	var all []domain.Offer
	for _, offers := range perSite {
		all = append(all, offers...)
	}
	return all
}

// searchSite runs one scraper's search, converting failures (including a
// panicking scraper) into an empty contribution
func (s *ScrapeService) searchSite(ctx context.Context, scraper domain.SiteScraper, query string) (offers []domain.Offer) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scrape] panic in %s search: %v", scraper.Name(), r)
			offers = nil
		}
	}()

	offers, err := scraper.SearchProduct(ctx, query)
	if err != nil {
		log.Printf("[scrape] %s search failed: %v", scraper.Name(), err)
		return nil
	}
	return offers
}

// productDetails runs one scraper's detail fetch, converting failures into
// a nil "no update available" result
func (s *ScrapeService) productDetails(ctx context.Context, scraper domain.SiteScraper, pageURL string) (listing *domain.CompetitorListing) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scrape] panic in %s details: %v", scraper.Name(), r)
			listing = nil
		}
	}()

	listing, err := scraper.GetProductDetails(ctx, pageURL)
	if err != nil {
		log.Printf("[scrape] %s details failed for %s: %v", scraper.Name(), pageURL, err)
		return nil
	}
	return listing
}
