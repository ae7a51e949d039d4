package main

import (
	"fmt"
	"log"
	"os"

	"github.com/goldgallery/backend/config"
	httpDelivery "github.com/goldgallery/backend/internal/delivery/http"
	catalogSource "github.com/goldgallery/backend/internal/infrastructure/catalog"
	"github.com/goldgallery/backend/internal/infrastructure/goldapi"
	"github.com/goldgallery/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Gold Gallery Catalog v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the static catalog; an unreadable catalog is fatal, there is no
	// partial-catalog mode.
	source, err := catalogSource.NewFileSource(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d products from %s", source.Size(), cfg.Catalog.Path)

	goldClient := goldapi.NewClient(cfg.GoldAPI.APIKey, cfg.GoldAPI.BaseURL, cfg.GoldAPI.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		goldClient.SetDebug(true)
		log.Printf("Gold API client debug mode enabled")
	}

	log.Printf("Gold API configured: %s (key: %s...)", cfg.GoldAPI.BaseURL, cfg.GoldAPI.APIKey[:min(4, len(cfg.GoldAPI.APIKey))])

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(source, goldClient, usecase.CatalogServiceConfig{})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService)

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
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
