package domain

import "context"

// CatalogSource provides the immutable product catalog snapshot.
type CatalogSource interface {
	Products() []Product
}

// GoldPriceSource fetches the current gold price in USD per gram.
type GoldPriceSource interface {
	PricePerGram(ctx context.Context) (float64, error)
}
