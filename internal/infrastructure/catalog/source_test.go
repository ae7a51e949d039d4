package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goldgallery/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCatalog = `[
  {
    "name": "Engagement Ring 1",
    "popularityScore": 85,
    "weight": 2.1,
    "images": {
      "yellow": "https://cdn.example.com/r1-yellow.jpg",
      "rose": "https://cdn.example.com/r1-rose.jpg",
      "white": "https://cdn.example.com/r1-white.jpg"
    }
  },
  {
    "name": "Engagement Ring 2",
    "popularityScore": 51,
    "weight": 3.8,
    "images": {
      "yellow": "https://cdn.example.com/r2-yellow.jpg"
    }
  }
]`

func TestNewFileSource(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalog)

	source, err := NewFileSource(path)

	require.NoError(t, err)
	require.Equal(t, 2, source.Size())

	products := source.Products()
	assert.Equal(t, "Engagement Ring 1", products[0].Name)
	assert.Equal(t, 85.0, products[0].PopularityScore)
	assert.Equal(t, 2.1, products[0].Weight)
	assert.Equal(t, "https://cdn.example.com/r1-rose.jpg", products[0].Images["rose"])
	assert.Equal(t, "Engagement Ring 2", products[1].Name)
}

func TestNewFileSource_MissingFile(t *testing.T) {
	source, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))

	assert.Nil(t, source)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestNewFileSource_MalformedJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"not": "an array"}`)

	source, err := NewFileSource(path)

	assert.Nil(t, source)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestProducts_ReturnsCopy(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalog)
	source, err := NewFileSource(path)
	require.NoError(t, err)

	first := source.Products()
	first[0].Name = "mutated"

	second := source.Products()
	assert.Equal(t, "Engagement Ring 1", second[0].Name)
}

func TestProducts_PreservesFileOrder(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"name": "C", "popularityScore": 1, "weight": 1, "images": {}},
		{"name": "A", "popularityScore": 2, "weight": 2, "images": {}},
		{"name": "B", "popularityScore": 3, "weight": 3, "images": {}}
	]`)
	source, err := NewFileSource(path)
	require.NoError(t, err)

	products := source.Products()
	names := []string{products[0].Name, products[1].Name, products[2].Name}
	assert.Equal(t, []string{"C", "A", "B"}, names)
}

func TestReload(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalog)
	source, err := NewFileSource(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Solo", "popularityScore": 10, "weight": 5, "images": {}}
	]`), 0o644))

	require.NoError(t, source.Reload())
	assert.Equal(t, 1, source.Size())
	assert.Equal(t, "Solo", source.Products()[0].Name)
}
