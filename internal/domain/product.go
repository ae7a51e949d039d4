package domain

// Product is a single catalog record as loaded from the static catalog file.
// The catalog is read once at startup and never mutated afterwards.
type Product struct {
	Name            string            `json:"name"`
	PopularityScore float64           `json:"popularityScore"`
	Weight          float64           `json:"weight"` // grams
	Images          map[string]string `json:"images"` // color variant -> image URL
}

// PricedProduct is a Product augmented with values derived per request:
// a computed price based on the current gold price, and the popularity
// score normalized to a 0-5 scale.
type PricedProduct struct {
	Product
	Price                 float64 `json:"price"`
	PopularityScoreOutOf5 float64 `json:"popularityScoreOutOf5"`
}

// FilterCriteria holds the optional inclusive bounds a caller may apply to
// the computed collection. A nil bound imposes no constraint.
type FilterCriteria struct {
	MinPrice      *float64
	MaxPrice      *float64
	MinPopularity *float64
	MaxPopularity *float64
}

// Matches reports whether a priced product satisfies every supplied bound.
// Bounds are conjunctive and compared against the already-rounded derived
// values, matching the reference behavior.
func (f FilterCriteria) Matches(p PricedProduct) bool {
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinPopularity != nil && p.PopularityScoreOutOf5 < *f.MinPopularity {
		return false
	}
	if f.MaxPopularity != nil && p.PopularityScoreOutOf5 > *f.MaxPopularity {
		return false
	}
	return true
}
