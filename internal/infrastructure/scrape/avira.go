package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

// aviraFeatures are the storewide guarantees Avira attaches to every
// certified lab-grown piece
var aviraFeatures = []string{
	"Free Shipping",
	"Certified Jewellery",
	"7 Days Return",
	"Lifetime Exchange",
	"Buyback",
}

// Avira scrapes the Avira Diamonds storefront
type Avira struct {
	baseURL string
	fetcher domain.PageFetcher
}

func NewAvira(baseURL string, fetcher domain.PageFetcher) *Avira {
	return &Avira{baseURL: baseURL, fetcher: fetcher}
}

func (s *Avira) Name() string { return "avira" }

func (s *Avira) SearchProduct(ctx context.Context, query string) ([]domain.Offer, error) {
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
	doc.Find(".product-card").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= searchResultLimit {
			return false
		}

		name := nodeText(el, "h3")
		priceText := nodeText(el, ".regular-price")
		href := nodeAttr(el, "a", "href")
		if name == "" || priceText == "" || href == "" {
			log.Printf("[avira] skipping search result %d: missing name/price/link", i)
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

func (s *Avira) GetProductDetails(ctx context.Context, productURL string) (*domain.CompetitorListing, error) {
	html, err := s.fetcher.Fetch(ctx, productURL, true)
	if err != nil {
		return nil, err
	}

	doc := ParseHTML(html)
	if doc == nil {
		return nil, domain.ErrEmptyPage
	}

	root := doc.Selection
	// Avira labels the displayed amount "Regular price ₹112,344.00"
	price := ExtractPrice(nodeText(root, ".regular-price"))

	listing := &domain.CompetitorListing{
		Offer: domain.Offer{
			Name:         nodeText(root, "h1.product-title"),
			Price:        price,
			URL:          productURL,
			CompetitorID: s.Name(),
		},
		Description: nodeText(root, ".product-description"),
		IsAvailable: price > 0,
		IsLabGrown:  true,
		Features:    aviraFeatures,
	}
	if src := nodeAttr(root, ".product-image img", "src"); src != "" {
		listing.ImageURL = resolveURL(s.baseURL, src)
	}

	return listing, nil
}
