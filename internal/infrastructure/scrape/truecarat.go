package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

// Truecarat scrapes truecarat's storefront
type Truecarat struct {
	baseURL string
	fetcher domain.PageFetcher
}

// NewTruecarat creates the truecarat scraper. An empty baseURL is allowed;
// the scraper then fails at fetch time rather than at construction.
func NewTruecarat(baseURL string, fetcher domain.PageFetcher) *Truecarat {
	return &Truecarat{baseURL: baseURL, fetcher: fetcher}
}

// Name returns the stable competitor identifier
func (s *Truecarat) Name() string { return "truecarat" }

// SearchProduct scrapes the site search page for query and returns up to
// five results in page order
func (s *Truecarat) SearchProduct(ctx context.Context, query string) ([]domain.Offer, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", s.baseURL, encodeQuery(query))

	html, err := s.fetcher.Fetch(ctx, searchURL, true)
	if err != nil {
		return nil, err
	}

	doc := ParseHTML(html)
	if doc == nil {
		return nil, domain.ErrEmptyPage
	}

	var offers []domain.Offer
	doc.Find(".product-item").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= searchResultLimit {
			return false
		}

		name := nodeText(el, ".product-title")
		priceText := nodeText(el, ".product-price")
		href := nodeAttr(el, "a", "href")
		if name == "" || priceText == "" || href == "" {
			// Candidate missing a required field: skip it, keep the rest
			log.Printf("[truecarat] skipping search result %d: missing name/price/link", i)
			return true
		}

		offer := domain.Offer{
			Name:         name,
			Price:        ExtractPrice(priceText),
			URL:          resolveURL(s.baseURL, href),
			CompetitorID: s.Name(),
		}
		if src := nodeAttr(el, "img", "src"); src != "" {
			offer.ImageURL = resolveURL(s.baseURL, src)
		}

		offers = append(offers, offer)
		return true
	})

	return offers, nil
}

// GetProductDetails scrapes a single product page. Absent markup nodes
// default to empty fields rather than failing the record.
func (s *Truecarat) GetProductDetails(ctx context.Context, productURL string) (*domain.CompetitorListing, error) {
	html, err := s.fetcher.Fetch(ctx, productURL, true)
	if err != nil {
		return nil, err
	}

	doc := ParseHTML(html)
	if doc == nil {
		return nil, domain.ErrEmptyPage
	}

	root := doc.Selection
	price := ExtractPrice(nodeText(root, ".product-price"))

	listing := &domain.CompetitorListing{
		Offer: domain.Offer{
			Name:         nodeText(root, "h1.product-title"),
			Price:        price,
			URL:          productURL,
			CompetitorID: s.Name(),
		},
		SKU:         nodeText(root, ".product-sku"),
		IsAvailable: price > 0,
	}
	if src := nodeAttr(root, ".product-image img", "src"); src != "" {
		listing.ImageURL = resolveURL(s.baseURL, src)
	}

	return listing, nil
}
