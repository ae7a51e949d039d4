package usecase

import (
	"context"
	"log"

	"github.com/goldgallery/backend/internal/domain"
	"github.com/goldgallery/backend/internal/metrics"
	"github.com/shopspring/decimal"
)

// FallbackGoldPrice is the USD-per-gram price used when the upstream fetch
// fails. Pricing continues silently from the caller's point of view; the
// substitution is logged and counted so operators can see degraded mode.
const FallbackGoldPrice = 60

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	FallbackGoldPrice float64
}

// CatalogService computes the priced, filterable product collection from
// the static catalog and the live gold price.
type CatalogService struct {
	source    domain.CatalogSource
	goldPrice domain.GoldPriceSource
	fallback  float64
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	source domain.CatalogSource,
	goldPrice domain.GoldPriceSource,
	config CatalogServiceConfig,
) *CatalogService {
	fallback := config.FallbackGoldPrice
	if fallback == 0 {
		fallback = FallbackGoldPrice
	}

	return &CatalogService{
		source:    source,
		goldPrice: goldPrice,
		fallback:  fallback,
	}
}

// ListProducts returns the priced collection in catalog order, with the
// supplied bounds applied and duplicate names removed (first occurrence
// wins). An empty result is a valid success; upstream price failures never
// propagate to the caller.
func (s *CatalogService) ListProducts(ctx context.Context, filters domain.FilterCriteria) []domain.PricedProduct {
	unitPrice := s.currentGoldPrice(ctx)

	products := s.source.Products()
	result := make([]domain.PricedProduct, 0, len(products))
	seen := make(map[string]struct{}, len(products))

	for _, p := range products {
		priced := PriceProduct(p, unitPrice)
		if !filters.Matches(priced) {
			continue
		}
		if _, dup := seen[priced.Name]; dup {
			continue
		}
		seen[priced.Name] = struct{}{}
		result = append(result, priced)
	}

	metrics.ProductsServed.Add(float64(len(result)))
	return result
}

// currentGoldPrice fetches the live price, substituting the fallback
// constant on any failure.
func (s *CatalogService) currentGoldPrice(ctx context.Context) float64 {
	price, err := s.goldPrice.PricePerGram(ctx)
	if err != nil {
		log.Printf("[CATALOG] gold price fetch failed, using fallback %.2f: %v", s.fallback, err)
		metrics.GoldPriceFetches.WithLabelValues("error").Inc()
		metrics.GoldPriceFallbacks.Inc()
		return s.fallback
	}
	metrics.GoldPriceFetches.WithLabelValues("success").Inc()
	return price
}

// PriceProduct derives the per-request values for one product:
//
//	price = round2((popularityScore + 1) * weight * unitPrice / 1000)
//	popularityScoreOutOf5 = min(round1(popularityScore / 20), 5)
//
// Rounding happens before any filtering so bounds compare against the
// values the client will actually see.
func PriceProduct(p domain.Product, unitPrice float64) domain.PricedProduct {
	price := decimal.NewFromFloat(p.PopularityScore).
		Add(decimal.NewFromInt(1)).
		Mul(decimal.NewFromFloat(p.Weight)).
		Mul(decimal.NewFromFloat(unitPrice)).
		Div(decimal.NewFromInt(1000)).
		Round(2)

	score := decimal.NewFromFloat(p.PopularityScore).
		Div(decimal.NewFromInt(20)).
		Round(1)
	if five := decimal.NewFromInt(5); score.GreaterThan(five) {
		score = five
	}

	return domain.PricedProduct{
		Product:               p,
		Price:                 price.InexactFloat64(),
		PopularityScoreOutOf5: score.InexactFloat64(),
	}
}
