package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

// JewelBox scrapes the Jewel Box storefront. Unlike the other sites its
// cards tag the link and image nodes with their own classes.
type JewelBox struct {
	baseURL string
	fetcher domain.PageFetcher
}

func NewJewelBox(baseURL string, fetcher domain.PageFetcher) *JewelBox {
	return &JewelBox{baseURL: baseURL, fetcher: fetcher}
}

func (s *JewelBox) Name() string { return "jewel_box" }

func (s *JewelBox) SearchProduct(ctx context.Context, query string) ([]domain.Offer, error) {
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
		href := nodeAttr(el, "a.product-link", "href")
		if name == "" || priceText == "" || href == "" {
			log.Printf("[jewel_box] skipping search result %d: missing name/price/link", i)
			return true
		}

		offer := domain.Offer{
			Name:         name,
			Price:        ExtractPrice(priceText),
			URL:          resolveURL(s.baseURL, href),
			CompetitorID: s.Name(),
		}
		if src := nodeAttr(el, "img.product-image", "src"); src != "" {
			offer.ImageURL = resolveURL(s.baseURL, src)
		}

		offers = append(offers, offer)
		return true
	})

	return offers, nil
}

func (s *JewelBox) GetProductDetails(ctx context.Context, productURL string) (*domain.CompetitorListing, error) {
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
		Description: nodeText(root, ".product-description"),
		IsAvailable: price > 0,
		IsLabGrown:  true,
	}
	if src := nodeAttr(root, ".product-image img", "src"); src != "" {
		listing.ImageURL = resolveURL(s.baseURL, src)
	}

	return listing, nil
}
