// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
	"github.com/biloop252/suuqsade-backend/internal/domain/product"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	productService  *product.Service
	discountService *discount.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, discountService *discount.Service) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		discountService: discountService,
	}
}

// pricedProduct decorates a product with its resolved best discount
type pricedProduct struct {
	product.Product
	FinalPrice     int64 `json:"final_price"`
	DiscountAmount int64 `json:"discount_amount"`
}

// GetProducts handles GET /products. Every listed product carries its
// discounted price, resolved in one pass over the valid discount catalog.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req product.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	resp, err := h.productService.GetProducts(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	catalog, err := h.discountService.CurrentlyValid(time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve discounts",
		})
		return
	}

	refs := make([]discount.ProductRef, len(resp.Products))
	for i := range resp.Products {
		refs[i] = resp.Products[i].Ref(nil)
	}
	resolutions := discount.ResolveBatch(refs, catalog)

	priced := make([]pricedProduct, len(resp.Products))
	for i := range resp.Products {
		priced[i] = pricedProduct{
			Product:        resp.Products[i],
			FinalPrice:     resolutions[i].FinalPrice,
			DiscountAmount: resolutions[i].DiscountAmount,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"products": priced,
			"page":     resp.Page,
			"limit":    resp.Limit,
			"total":    resp.Total,
		},
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	p, err := h.productService.GetProduct(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	catalog, err := h.discountService.CurrentlyValid(time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve discounts",
		})
		return
	}
	res := discount.BestDiscount(p.Ref(nil), catalog)

	c.JSON(http.StatusOK, gin.H{
		"data": pricedProduct{
			Product:        *p,
			FinalPrice:     res.FinalPrice,
			DiscountAmount: res.DiscountAmount,
		},
	})
}

// GetProductBySlug handles GET /products/slug/:slug
func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	p, err := h.productService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	catalog, err := h.discountService.CurrentlyValid(time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve discounts",
		})
		return
	}
	res := discount.BestDiscount(p.Ref(nil), catalog)

	c.JSON(http.StatusOK, gin.H{
		"data": pricedProduct{
			Product:        *p,
			FinalPrice:     res.FinalPrice,
			DiscountAmount: res.DiscountAmount,
		},
	})
}
