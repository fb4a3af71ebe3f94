package scrape

import (
	"context"

	"github.com/Dawar13/firefly-backend/internal/domain"
)

// stubFetcher serves a fixed page (or a fixed failure) and records the
// last URL asked for
type stubFetcher struct {
	html    string
	err     error
	lastURL string
}

func (f *stubFetcher) Fetch(_ context.Context, pageURL string, _ bool) (string, error) {
	f.lastURL = pageURL
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

var _ domain.PageFetcher = (*stubFetcher)(nil)
