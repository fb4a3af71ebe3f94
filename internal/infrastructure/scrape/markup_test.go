package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTML(t *testing.T) {
	doc := ParseHTML(`<html><body><p class="x">  hello  </p></body></html>`)

	require.NotNil(t, doc)
	assert.Equal(t, "hello", nodeText(doc.Selection, "p.x"))
}

func TestParseHTML_EmptyContent(t *testing.T) {
	assert.Nil(t, ParseHTML(""))
	assert.Nil(t, ParseHTML("   \n\t  "))
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative path", "https://x.example.com", "/p/123", "https://x.example.com/p/123"},
		{"already absolute", "https://x.example.com", "https://cdn.example.com/img.jpg", "https://cdn.example.com/img.jpg"},
		{"protocol relative", "https://x.example.com", "//cdn.example.com/img.jpg", "https://cdn.example.com/img.jpg"},
		{"empty href", "https://x.example.com", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveURL(tt.base, tt.href))
		})
	}
}
