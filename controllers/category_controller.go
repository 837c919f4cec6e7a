package controllers

import (
	"net/http"

	"catalog-service/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryController struct {
	service CategoryServiceAPI
	cache   *CacheManager
}

func NewCategoryController(service CategoryServiceAPI, cache *CacheManager) *CategoryController {
	return &CategoryController{service: service, cache: cache}
}

// CreateCategory handles POST /categories.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category payload"})
		return
	}

	id, err := cc.service.Create(c.Request.Context(), &category)
	if err != nil {
		respondError(c, err)
		return
	}
	cc.cache.Invalidate(c.Request.Context())

	zap.L().Info("Category created", zap.String("id", id.Hex()))
	c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
}

// GetCategories handles GET /categories.
func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories, err := cc.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /categories/:id.
func (cc *CategoryController) GetCategory(c *gin.Context) {
	category, err := cc.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory handles PUT /categories/:id. Category changes affect joined
// listings, so the listing cache is invalidated too.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category payload"})
		return
	}

	id := c.Param("id")
	if err := cc.service.Update(c.Request.Context(), id, &category); err != nil {
		respondError(c, err)
		return
	}
	cc.cache.Invalidate(c.Request.Context())

	zap.L().Info("Category updated", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteCategory handles DELETE /categories/:id.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := cc.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	cc.cache.Invalidate(c.Request.Context())

	zap.L().Info("Category deleted", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
