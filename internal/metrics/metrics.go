// Package metrics owns the prometheus collectors for the catalog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GoldPriceFallbacks counts requests served with the fallback gold
	// price because the upstream fetch failed. A non-zero rate means the
	// service is pricing in degraded mode even though clients see 200s.
	GoldPriceFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "goldgallery",
		Name:      "gold_price_fallback_total",
		Help:      "Number of list requests priced with the fallback gold price.",
	})

	// GoldPriceFetches counts upstream gold price fetches by outcome.
	GoldPriceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goldgallery",
		Name:      "gold_price_fetch_total",
		Help:      "Upstream gold price fetches by outcome.",
	}, []string{"outcome"})

	// ProductsServed counts products returned across all list responses.
	ProductsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "goldgallery",
		Name:      "products_served_total",
		Help:      "Total number of products returned in list responses.",
	})
)
