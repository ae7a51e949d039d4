package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/goldgallery/backend/internal/domain"
)

// FileSource loads the product catalog from a JSON file once and serves a
// read-only snapshot afterwards. The snapshot never changes during the
// process lifetime unless Reload is called explicitly.
type FileSource struct {
	path     string
	mutex    sync.RWMutex
	products []domain.Product
}

// NewFileSource loads the catalog from path. A load or parse failure is
// returned to the caller, which is expected to treat it as fatal: there is
// no partial-catalog mode.
func NewFileSource(path string) (*FileSource, error) {
	s := &FileSource{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the catalog file, replacing the snapshot atomically.
func (s *FileSource) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", domain.ErrCatalogUnavailable, s.path, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", domain.ErrCatalogUnavailable, s.path, err)
	}

	s.mutex.Lock()
	s.products = products
	s.mutex.Unlock()
	return nil
}

// Products returns a copy of the catalog snapshot in original file order.
// Callers may filter or reorder the returned slice freely.
func (s *FileSource) Products() []domain.Product {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Size returns the number of catalog records (for logging/monitoring)
func (s *FileSource) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.products)
}
