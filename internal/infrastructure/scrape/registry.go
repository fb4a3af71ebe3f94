package scrape

import (
	"strings"

	"github.com/Dawar13/firefly-backend/internal/domain"
)

// registryOrder fixes the order All returns scrapers in, and therefore the
// order aggregated search results are concatenated in
var registryOrder = []string{
	"truecarat",
	"house_of_quadri",
	"emori",
	"varniya",
	"avira",
	"jewel_box",
}

// Registry maps competitor ids to their scrapers. It is built once at
// startup and passed by reference into the orchestrator, never looked up
// through a global.
type Registry struct {
	scrapers map[string]domain.SiteScraper
}

// NewRegistry wires every known scraper to its configured base URL. A
// missing base URL still constructs the scraper so partially configured
// deployments serve the competitors they have configured.
func NewRegistry(baseURLs map[string]string, fetcher domain.PageFetcher) *Registry {
	return &Registry{
		scrapers: map[string]domain.SiteScraper{
			"truecarat":       NewTruecarat(baseURLs["truecarat"], fetcher),
			"house_of_quadri": NewHouseOfQuadri(baseURLs["house_of_quadri"], fetcher),
			"emori":           NewEmori(baseURLs["emori"], fetcher),
			"varniya":         NewVarniya(baseURLs["varniya"], fetcher),
			"avira":           NewAvira(baseURLs["avira"], fetcher),
			"jewel_box":       NewJewelBox(baseURLs["jewel_box"], fetcher),
		},
	}
}

// Get resolves a competitor id to its scraper
func (r *Registry) Get(competitorID string) (domain.SiteScraper, bool) {
	scraper, ok := r.scrapers[strings.ToLower(competitorID)]
	return scraper, ok
}

// All returns every registered scraper in registry order
func (r *Registry) All() []domain.SiteScraper {
	all := make([]domain.SiteScraper, 0, len(r.scrapers))
	for _, id := range registryOrder {
		if scraper, ok := r.scrapers[id]; ok {
			all = append(all, scraper)
		}
	}
	return all
}
