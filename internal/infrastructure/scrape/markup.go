package scrape

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML turns raw page content into a queryable document. It returns
// nil for empty content so a failed fetch propagates without special
// casing at every call site.
func ParseHTML(html string) *goquery.Document {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("[scrape] markup parse error: %v", err)
		return nil
	}

	return doc
}
