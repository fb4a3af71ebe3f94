package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"rupee symbol with decimals", "₹1,12,344.00", 112344.00},
		{"rs prefix", "Rs. 45,000", 45000},
		{"plain integer", "45000", 45000},
		{"decimal without separator", "₹350.75", 350.75},
		{"labelled price", "Regular price ₹112,344.00", 112344.00},
		{"surrounding whitespace", "  ₹ 2,550.50  ", 2550.50},
		{"trailing period outside the match", "₹45,000. Inclusive of taxes", 45000},
		{"no digits", "Price on request", 0},
		{"empty string", "", 0},
		{"currency marker only", "₹", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPrice(tt.input))
		})
	}
}

func TestExtractMinPriceFromRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"en-dash range", "₹29,568 – ₹40,600", 29568},
		{"hyphen range", "Rs. 10,000 - Rs. 12,500", 10000},
		{"single price", "₹5,499", 5499},
		{"no digits", "sold out", 0},
		{"empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMinPriceFromRange(tt.input))
		})
	}
}

func TestExtractPrice_NeverNegative(t *testing.T) {
	// A displayed discount must not come back as a negative amount; the
	// regex has no sign, so the digits win
	assert.Equal(t, 500.0, ExtractPrice("-₹500"))
}
