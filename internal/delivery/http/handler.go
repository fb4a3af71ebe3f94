package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// ProductUsecase is the application service surface the handlers depend on
type ProductUsecase interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	TrackCompetitor(ctx context.Context, productID, competitorID, pageURL string) (*domain.CompetitorListing, error)
	RefreshProduct(ctx context.Context, productID string) ([]domain.RefreshUpdate, error)
	SearchCompetitors(ctx context.Context, query string) ([]domain.Offer, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductUsecase) *Handler {
	return &Handler{products: products}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "firefly-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns catalog products with their competitor prices,
// optionally filtered by min_price, max_price and category
func (h *Handler) ListProducts(c *gin.Context) {
	var filter domain.ProductFilter

	if raw := c.Query("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_price must be a number"})
			return
		}
		filter.MinPrice = &value
	}
	if raw := c.Query("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_price must be a number"})
			return
		}
		filter.MaxPrice = &value
	}
	filter.Category = c.Query("category")

	products, err := h.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns one catalog product with its competitor prices
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// createProductRequest is the body for adding a catalog product
type createProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	FireflyPrice float64 `json:"fireflyPrice" binding:"required"`
	ImageURL     string  `json:"imageUrl"`
	URL          string  `json:"url"`
}

// CreateProduct adds a catalog product to track competitor prices for
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and fireflyPrice are required"})
		return
	}

	product := domain.Product{
		Name:         req.Name,
		SKU:          req.SKU,
		Description:  req.Description,
		Category:     req.Category,
		FireflyPrice: req.FireflyPrice,
		ImageURL:     req.ImageURL,
		URL:          req.URL,
	}
	if err := h.products.CreateProduct(c.Request.Context(), &product); err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	if product.Competitors == nil {
		product.Competitors = []domain.CompetitorProduct{}
	}

	c.JSON(http.StatusCreated, product)
}

// trackCompetitorRequest is the body for recording a competitor listing
type trackCompetitorRequest struct {
	Competitor string `json:"competitor" binding:"required"`
	URL        string `json:"url" binding:"required"`
}

// TrackCompetitor scrapes a competitor product page and records it
// against the product so refreshes re-check it
func (h *Handler) TrackCompetitor(c *gin.Context) {
	var req trackCompetitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competitor and url are required"})
		return
	}

	listing, err := h.products.TrackCompetitor(c.Request.Context(), c.Param("id"), req.Competitor, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown competitor"})
		case errors.Is(err, domain.ErrFetchFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "competitor page could not be read"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track competitor"})
		}
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// RefreshProduct re-scrapes every recorded competitor listing for the
// product and reports which competitors were updated
func (h *Handler) RefreshProduct(c *gin.Context) {
	updates, err := h.products.RefreshProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}

	names := make([]string, len(updates))
	for i, update := range updates {
		names[i] = update.CompetitorID
	}
	if updates == nil {
		updates = []domain.RefreshUpdate{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Updated prices from competitors: %s", strings.Join(names, ", ")),
		"updates": updates,
	})
}

// SearchProducts fans a free-text query out across every competitor site
// and returns the merged results without persisting them
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("query")

	offers, err := h.products.SearchCompetitors(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if offers == nil {
		offers = []domain.Offer{}
	}

	c.JSON(http.StatusOK, offers)
}
