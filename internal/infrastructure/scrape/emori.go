package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

// Emori scrapes Emori's WooCommerce shop. Emori displays price ranges
// like "₹29,568 – ₹40,600", so it is the one scraper on the range-minimum
// extractor.
type Emori struct {
	baseURL string
	fetcher domain.PageFetcher
}

func NewEmori(baseURL string, fetcher domain.PageFetcher) *Emori {
	return &Emori{baseURL: baseURL, fetcher: fetcher}
}

func (s *Emori) Name() string { return "emori" }

func (s *Emori) SearchProduct(ctx context.Context, query string) ([]domain.Offer, error) {
	searchURL := fmt.Sprintf("%s/shop/?s=%s", s.baseURL, encodeQuery(query))

	html, err := s.fetcher.Fetch(ctx, searchURL, true)
	if err != nil {
		return nil, err
	}

	doc := ParseHTML(html)
	if doc == nil {
		return nil, domain.ErrEmptyPage
	}

	var offers []domain.Offer
	doc.Find(".product").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= searchResultLimit {
			return false
		}

		name := nodeText(el, "h3")
		priceText := nodeText(el, ".price")
		href := nodeAttr(el, "a", "href")
		if name == "" || priceText == "" || href == "" {
			log.Printf("[emori] skipping search result %d: missing name/price/link", i)
			return true
		}

		offer := domain.Offer{
			Name:         name,
			Price:        ExtractMinPriceFromRange(priceText),
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

func (s *Emori) GetProductDetails(ctx context.Context, productURL string) (*domain.CompetitorListing, error) {
	html, err := s.fetcher.Fetch(ctx, productURL, true)
	if err != nil {
		return nil, err
	}

	doc := ParseHTML(html)
	if doc == nil {
		return nil, domain.ErrEmptyPage
	}

	root := doc.Selection
	price := ExtractMinPriceFromRange(nodeText(root, ".price"))

	listing := &domain.CompetitorListing{
		Offer: domain.Offer{
			Name:         nodeText(root, "h1.product_title"),
			Price:        price,
			URL:          productURL,
			CompetitorID: s.Name(),
		},
		Description: nodeText(root, ".woocommerce-product-details__short-description"),
		IsAvailable: price > 0,
		IsLabGrown:  true,
	}
	if src := nodeAttr(root, ".woocommerce-product-gallery__image img", "src"); src != "" {
		listing.ImageURL = resolveURL(s.baseURL, src)
	}

	return listing, nil
}
