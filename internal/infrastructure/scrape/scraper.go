// Package scrape implements the per-competitor page extraction for the
// price comparison service: a swappable markup parser, price-text
// normalization, and one scraper per competitor site, all converging on
// the shared domain.Offer record shape.
package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// searchResultLimit caps how many candidate nodes a single search scrape
// inspects; sites rank their own results, so the first few are the ones
// worth comparing.
const searchResultLimit = 5

// encodeQuery URL-encodes a free-text search query for a search-path
// template
func encodeQuery(query string) string {
	return url.QueryEscape(strings.TrimSpace(query))
}

// resolveURL resolves a possibly relative link against the site base URL.
// Malformed input falls back to the raw href; the record is still usable
// for display even when resolution fails.
func resolveURL(baseURL, href string) string {
	if href == "" {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}

// nodeText returns the trimmed text of the first node matching selector
// under el, or "" when the node is absent
func nodeText(el *goquery.Selection, selector string) string {
	return strings.TrimSpace(el.Find(selector).First().Text())
}

// nodeAttr returns the named attribute of the first node matching
// selector under el, or "" when the node or attribute is absent
func nodeAttr(el *goquery.Selection, selector, attr string) string {
	value, _ := el.Find(selector).First().Attr(attr)
	return strings.TrimSpace(value)
}
