package scrape

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// priceRegex finds the first run of digits in a price string, allowing
// thousands separators and at most one decimal part. Currency markers like
// "₹" or "Rs." carry no digits and fall away on their own.
var priceRegex = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// ExtractPrice converts currency-formatted text like "₹1,12,344.00" or
// "Rs. 45,000" to a numeric amount. It returns 0 when no price can be
// determined; 0 is the "unknown price" sentinel, never a real price.
func ExtractPrice(text string) float64 {
	if text == "" {
		return 0
	}

	found := priceRegex.FindString(text)
	if found == "" {
		return 0
	}

	cleaned := strings.ReplaceAll(found, ",", "")

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Printf("[scrape] failed to parse price %q from %q: %v", cleaned, text, err)
		return 0
	}

	return price
}

// ExtractMinPriceFromRange returns the low end of a displayed price range
// like "₹29,568 – ₹40,600". Every site that shows ranges puts the minimum
// first, so the first numeric run is the comparison baseline; keep
// first-match semantics when touching this.
func ExtractMinPriceFromRange(text string) float64 {
	return ExtractPrice(text)
}
