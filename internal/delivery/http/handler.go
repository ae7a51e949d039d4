package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goldgallery/backend/internal/domain"
)

// CatalogService is the usecase surface the handler depends on
type CatalogService interface {
	ListProducts(ctx context.Context, filters domain.FilterCriteria) []domain.PricedProduct
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339Nano),
	})
}

// ListProducts handles GET /products. All filter parameters are optional;
// the response is always 200 with a (possibly empty) JSON array.
func (h *Handler) ListProducts(c *gin.Context) {
	filters := domain.FilterCriteria{
		MinPrice:      parseBound(c.Query("minPrice")),
		MaxPrice:      parseBound(c.Query("maxPrice")),
		MinPopularity: parseBound(c.Query("minPopularity")),
		MaxPopularity: parseBound(c.Query("maxPopularity")),
	}

	products := h.catalog.ListProducts(c.Request.Context(), filters)
	c.JSON(http.StatusOK, products)
}

// parseBound parses an optional decimal query value. Absent or unparseable
// values impose no constraint.
func parseBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
