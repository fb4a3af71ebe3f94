package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

// Varniya scrapes Varniya's Shopify storefront
type Varniya struct {
	baseURL string
	fetcher domain.PageFetcher
}

func NewVarniya(baseURL string, fetcher domain.PageFetcher) *Varniya {
	return &Varniya{baseURL: baseURL, fetcher: fetcher}
}

func (s *Varniya) Name() string { return "varniya" }

func (s *Varniya) SearchProduct(ctx context.Context, query string) ([]domain.Offer, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s&type=product", s.baseURL, encodeQuery(query))

	html, err := s.fetcher.Fetch(ctx, searchURL, true)
	if err != nil {
		return nil, err
	}

	doc := ParseHTML(html)
	if doc == nil {
		return nil, domain.ErrEmptyPage
	}

	var offers []domain.Offer
	doc.Find(".product-grid-item").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= searchResultLimit {
			return false
		}

		name := nodeText(el, ".product-grid-item__title")
		priceText := nodeText(el, ".product-grid-item__price")
		href := nodeAttr(el, "a", "href")
		if name == "" || priceText == "" || href == "" {
			log.Printf("[varniya] skipping search result %d: missing name/price/link", i)
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

func (s *Varniya) GetProductDetails(ctx context.Context, productURL string) (*domain.CompetitorListing, error) {
	html, err := s.fetcher.Fetch(ctx, productURL, true)
	if err != nil {
		return nil, err
	}

	doc := ParseHTML(html)
	if doc == nil {
		return nil, domain.ErrEmptyPage
	}

	root := doc.Selection
	price := ExtractPrice(nodeText(root, ".product-single__price"))

	listing := &domain.CompetitorListing{
		Offer: domain.Offer{
			Name:         nodeText(root, "h1.product-single__title"),
			Price:        price,
			URL:          productURL,
			CompetitorID: s.Name(),
		},
		Description: nodeText(root, ".product-single__description"),
		IsAvailable: price > 0,
		IsLabGrown:  true,
	}
	if src := nodeAttr(root, ".product-single__media img", "src"); src != "" {
		listing.ImageURL = resolveURL(s.baseURL, src)
	}

	return listing, nil
}
