package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Dawar13/firefly-backend/config"
	httpDelivery "github.com/Dawar13/firefly-backend/internal/delivery/http"
	"github.com/Dawar13/firefly-backend/internal/infrastructure/cache"
	"github.com/Dawar13/firefly-backend/internal/infrastructure/fetch"
	"github.com/Dawar13/firefly-backend/internal/infrastructure/scrape"
	"github.com/Dawar13/firefly-backend/internal/infrastructure/storage"
	"github.com/Dawar13/firefly-backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Firefly Price Comparison Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	repo, err := storage.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database: %s", cfg.Database.Path)

	if cfg.Scraper.APIKey != "" {
		log.Printf("Scrape relay configured: %s", cfg.Scraper.RelayURL)
	} else {
		log.Printf("WARNING: no relay API key configured - fetches go directly to competitor sites")
	}

	fetcher := fetch.NewClient(cfg.Scraper.APIKey, cfg.Scraper.RelayURL, cfg.Scraper.RatePerSec)
	registry := scrape.NewRegistry(cfg.Competitors.BaseURLs(), fetcher)

	for _, scraper := range registry.All() {
		if cfg.Competitors.BaseURLs()[scraper.Name()] == "" {
			log.Printf("WARNING: competitor %q has no base URL configured", scraper.Name())
		}
	}

	memoryCache := cache.NewMemoryCache()
	log.Printf("Search cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	scrapeService := usecase.NewScrapeService(registry, usecase.ScrapeServiceConfig{
		MaxParallel: cfg.Scraper.MaxParallel,
	})
	productService := usecase.NewProductService(repo, memoryCache, scrapeService,
		usecase.ProductServiceConfig{SearchCacheTTL: cfg.Cache.TTL})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
