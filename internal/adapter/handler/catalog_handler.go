package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

// CatalogHandler serves the product and stock endpoints the cart reads from.
type CatalogHandler struct {
	catalog port.CatalogRepository
}

type catalogProduct struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

func NewCatalogHandler(catalog port.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Register(r gin.IRouter) {
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/stock", h.ListStock)
	r.GET("/stock/:id", h.GetStock)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}

	out := make([]catalogProduct, len(products))
	for i, p := range products {
		out[i] = toCatalogProduct(p)
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := catalogID(c)
	if !ok {
		return
	}

	p, err := h.catalog.FetchProduct(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCatalogProduct(p))
}

func (h *CatalogHandler) ListStock(c *gin.Context) {
	stock, err := h.catalog.ListStock(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *CatalogHandler) GetStock(c *gin.Context) {
	id, ok := catalogID(c)
	if !ok {
		return
	}

	s, err := h.catalog.FetchStock(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func toCatalogProduct(p domain.Product) catalogProduct {
	return catalogProduct{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price.InexactFloat64(),
		Image: p.Image,
	}
}

func catalogID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func catalogError(c *gin.Context, err error) {
	if errors.Is(err, port.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}

	log.Printf("catalog request %s failed: %v", c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
