package controllers

import (
	"net/http"

	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	service   ProductServiceAPI
	validator *RequestValidator
	cache     *CacheManager
}

func NewProductController(service ProductServiceAPI, cache *CacheManager) *ProductController {
	return &ProductController{
		service:   service,
		validator: NewRequestValidator(),
		cache:     cache,
	}
}

// CreateProduct handles POST /products (multipart).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	input, err := pc.validator.ParseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := pc.validator.ReadImage(c, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := pc.service.CreateProduct(c.Request.Context(), input, image)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.cache.Invalidate(c.Request.Context())

	zap.L().Info("Product created", zap.String("id", product.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"id": product.ID.Hex()})
}

// UpdateProduct handles PUT /products/:id (multipart). Non-admin callers may
// only touch products of their own tenant; the check runs before any side
// effect.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	existing, err := pc.service.GetProductRaw(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !callerOwnsTenant(c, existing.TenantID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this product"})
		return
	}

	input, err := pc.validator.ParseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := pc.validator.ReadImage(c, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := pc.service.UpdateProduct(c.Request.Context(), existing, input, image)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.cache.Invalidate(c.Request.Context())

	zap.L().Info("Product updated", zap.String("id", product.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"id": product.ID.Hex()})
}

// GetProducts handles GET /products with search, filters and pagination.
func (pc *ProductController) GetProducts(c *gin.Context) {
	q := c.Query("q")
	filters := services.ProductFilters{
		TenantID:   c.Query("tenantId"),
		CategoryID: c.Query("categoryId"),
		IsPublish:  c.Query("isPublish"),
	}
	page, limit := pc.validator.ParsePagination(c)

	if cached, ok := pc.cache.GetProductList(c.Request.Context(), q, filters, page, limit); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	pageData, err := pc.service.ListProducts(c.Request.Context(), q, filters, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.cache.SetProductListAsync(q, filters, page, limit, pageData)

	c.JSON(http.StatusOK, pageData)
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id with the same ownership rule
// as update.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	existing, err := pc.service.GetProductRaw(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !callerOwnsTenant(c, existing.TenantID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this product"})
		return
	}

	if err := pc.service.DeleteProduct(c.Request.Context(), existing); err != nil {
		respondError(c, err)
		return
	}
	pc.cache.Invalidate(c.Request.Context())

	zap.L().Info("Product deleted", zap.String("id", existing.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
