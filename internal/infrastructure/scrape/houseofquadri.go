package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

// HouseOfQuadri scrapes the House of Quadri storefront. The site mixes
// two card layouts (product grid and collection grid), so the selectors
// are unions.
type HouseOfQuadri struct {
	baseURL string
	fetcher domain.PageFetcher
}

func NewHouseOfQuadri(baseURL string, fetcher domain.PageFetcher) *HouseOfQuadri {
	return &HouseOfQuadri{baseURL: baseURL, fetcher: fetcher}
}

func (s *HouseOfQuadri) Name() string { return "house_of_quadri" }

func (s *HouseOfQuadri) SearchProduct(ctx context.Context, query string) ([]domain.Offer, error) {
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
	doc.Find(".product-item, .collection-item").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= searchResultLimit {
			return false
		}

		name := nodeText(el, ".product-name, .collection-title")
		href := nodeAttr(el, "a", "href")
		if name == "" || href == "" {
			log.Printf("[house_of_quadri] skipping search result %d: missing name/link", i)
			return true
		}

		// Collection cards sometimes omit the price; keep the card with
		// the unknown-price sentinel instead of dropping it
		priceText := nodeText(el, ".product-price")
		if priceText == "" {
			priceText = "0"
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

func (s *HouseOfQuadri) GetProductDetails(ctx context.Context, productURL string) (*domain.CompetitorListing, error) {
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
			Name:         nodeText(root, "h1.product-name"),
			Price:        price,
			URL:          productURL,
			CompetitorID: s.Name(),
		},
		Description: nodeText(root, ".product-description"),
		IsAvailable: price > 0,
		// The storefront sells IGI certified lab-grown diamonds only
		IsLabGrown:    true,
		Certification: "IGI",
	}
	if src := nodeAttr(root, ".product-image img", "src"); src != "" {
		listing.ImageURL = resolveURL(s.baseURL, src)
	}

	return listing, nil
}
