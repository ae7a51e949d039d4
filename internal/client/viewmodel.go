package client

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/goldgallery/backend/internal/domain"
)

// DefaultVariant is the color variant initially selected for every product
// that carries it.
const DefaultVariant = "yellow"

// State is the view model lifecycle state.
type State int

const (
	// StateLoading is the initial state, shown until the first fetch resolves
	StateLoading State = iota
	// StateReady means a collection is displayed; re-fetches replace it in place
	StateReady
	// StateFailed means the initial fetch failed; Retry re-attempts it
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher fetches the priced collection with optional filter values.
type Fetcher interface {
	ListProducts(ctx context.Context, filters map[string]string) ([]domain.PricedProduct, error)
}

// ViewModel holds the catalog client's presentation state: the displayed
// collection, pending filter values, and per-product color selection.
type ViewModel struct {
	fetcher Fetcher

	mutex    sync.Mutex
	state    State
	products []domain.PricedProduct
	pending  map[string]string
	selected map[string]string // product name -> variant

	cancelInflight context.CancelFunc
	fetchSeq       uint64
}

// NewViewModel creates a view model in the Loading state
func NewViewModel(fetcher Fetcher) *ViewModel {
	return &ViewModel{
		fetcher:  fetcher,
		state:    StateLoading,
		pending:  make(map[string]string),
		selected: make(map[string]string),
	}
}

// State returns the current lifecycle state
func (v *ViewModel) State() State {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.state
}

// Products returns the currently displayed collection
func (v *ViewModel) Products() []domain.PricedProduct {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	out := make([]domain.PricedProduct, len(v.products))
	copy(out, v.products)
	return out
}

// LoadInitial performs the first, unfiltered fetch. On failure the view
// model moves to Failed so the caller can offer a retry instead of showing
// a loading indicator forever.
func (v *ViewModel) LoadInitial(ctx context.Context) error {
	products, seq, err := v.fetch(ctx, nil)
	if err != nil {
		log.Printf("[CLIENT] initial fetch failed: %v", err)
		v.mutex.Lock()
		if v.state == StateLoading && seq == v.fetchSeq {
			v.state = StateFailed
		}
		v.mutex.Unlock()
		return err
	}

	v.replaceProducts(products, seq)
	return nil
}

// Retry re-attempts the initial fetch after a failure
func (v *ViewModel) Retry(ctx context.Context) error {
	return v.LoadInitial(ctx)
}

// UpdateFilter stores a pending filter value (the string form the user
// typed). It never triggers a fetch by itself.
func (v *ViewModel) UpdateFilter(field, value string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.pending[field] = value
}

// PendingFilter returns the stored value for a filter field
func (v *ViewModel) PendingFilter(field string) string {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.pending[field]
}

// ApplyFilters fetches the collection with the current pending filter
// values and replaces the displayed list. A failed fetch logs and leaves
// the previous list untouched.
func (v *ViewModel) ApplyFilters(ctx context.Context) error {
	v.mutex.Lock()
	filters := make(map[string]string, len(v.pending))
	for field, value := range v.pending {
		filters[field] = value
	}
	v.mutex.Unlock()

	products, seq, err := v.fetch(ctx, filters)
	if err != nil {
		log.Printf("[CLIENT] applying filters failed: %v", err)
		return err
	}

	v.replaceProducts(products, seq)
	return nil
}

// SelectColorVariant updates which image is shown for a product. Unknown
// product names are ignored. Purely local, no network call.
func (v *ViewModel) SelectColorVariant(productName, variant string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if _, known := v.selected[productName]; known {
		v.selected[productName] = variant
	}
}

// SelectedVariant returns the selected color variant for a product
func (v *ViewModel) SelectedVariant(productName string) string {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.selected[productName]
}

// ImageFor returns the image URL for a product's selected variant, falling
// back to the default variant when the selection is missing from the image
// mapping.
func (v *ViewModel) ImageFor(p domain.PricedProduct) string {
	if img, ok := p.Images[v.SelectedVariant(p.Name)]; ok {
		return img
	}
	return p.Images[DefaultVariant]
}

// VariantLabel renders a color variant for display, e.g. "yellow" ->
// "Yellow Gold".
func VariantLabel(variant string) string {
	if variant == "" {
		return ""
	}
	return strings.ToUpper(variant[:1]) + variant[1:] + " Gold"
}

// fetch issues a fetch that supersedes any still-running one: the previous
// request's context is cancelled so a slow stale response can never be
// applied over a newer one. The returned sequence number identifies this
// fetch; replaceProducts drops results whose sequence has been superseded.
func (v *ViewModel) fetch(ctx context.Context, filters map[string]string) ([]domain.PricedProduct, uint64, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.mutex.Lock()
	if v.cancelInflight != nil {
		v.cancelInflight()
	}
	v.cancelInflight = cancel
	v.fetchSeq++
	seq := v.fetchSeq
	v.mutex.Unlock()

	products, err := v.fetcher.ListProducts(fetchCtx, filters)
	return products, seq, err
}

// replaceProducts swaps in a freshly fetched collection: de-duplicates by
// name as a defensive second pass, keeps variant selections for products
// still present, and initializes selections for new ones. Superseded
// results are dropped.
func (v *ViewModel) replaceProducts(products []domain.PricedProduct, seq uint64) {
	deduped := dedupeByName(products)

	v.mutex.Lock()
	defer v.mutex.Unlock()

	if seq != v.fetchSeq {
		return
	}

	selected := make(map[string]string, len(deduped))
	for _, p := range deduped {
		if variant, ok := v.selected[p.Name]; ok {
			selected[p.Name] = variant
			continue
		}
		selected[p.Name] = initialVariant(p.Images)
	}

	v.products = deduped
	v.selected = selected
	v.state = StateReady
}

// dedupeByName keeps the first occurrence of each product name
func dedupeByName(products []domain.PricedProduct) []domain.PricedProduct {
	out := make([]domain.PricedProduct, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out
}

// initialVariant picks the default variant when present, else the first
// variant key in sorted order so the choice is deterministic.
func initialVariant(images map[string]string) string {
	if _, ok := images[DefaultVariant]; ok {
		return DefaultVariant
	}

	keys := make([]string, 0, len(images))
	for k := range images {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}
