package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ToppingController struct {
	service   ToppingServiceAPI
	validator *RequestValidator
}

func NewToppingController(service ToppingServiceAPI) *ToppingController {
	return &ToppingController{
		service:   service,
		validator: NewRequestValidator(),
	}
}

// CreateTopping handles POST /toppings (multipart).
func (tc *ToppingController) CreateTopping(c *gin.Context) {
	input, err := tc.validator.ParseToppingForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := tc.validator.ReadImage(c, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topping, err := tc.service.CreateTopping(c.Request.Context(), input, image)
	if err != nil {
		respondError(c, err)
		return
	}

	zap.L().Info("Topping created", zap.String("id", topping.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"id": topping.ID.Hex()})
}

// UpdateTopping handles PUT /toppings/:id (multipart) with the tenant
// ownership rule.
func (tc *ToppingController) UpdateTopping(c *gin.Context) {
	existing, err := tc.service.GetToppingRaw(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !callerOwnsTenant(c, existing.TenantID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this topping"})
		return
	}

	input, err := tc.validator.ParseToppingForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := tc.validator.ReadImage(c, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topping, err := tc.service.UpdateTopping(c.Request.Context(), existing, input, image)
	if err != nil {
		respondError(c, err)
		return
	}

	zap.L().Info("Topping updated", zap.String("id", topping.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"id": topping.ID.Hex()})
}

// GetToppings handles GET /toppings with an optional tenant filter.
func (tc *ToppingController) GetToppings(c *gin.Context) {
	toppings, err := tc.service.ListToppings(c.Request.Context(), c.Query("tenantId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toppings})
}

// GetTopping handles GET /toppings/:id.
func (tc *ToppingController) GetTopping(c *gin.Context) {
	topping, err := tc.service.GetTopping(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topping)
}

// DeleteTopping handles DELETE /toppings/:id.
func (tc *ToppingController) DeleteTopping(c *gin.Context) {
	existing, err := tc.service.GetToppingRaw(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !callerOwnsTenant(c, existing.TenantID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this topping"})
		return
	}

	if err := tc.service.DeleteTopping(c.Request.Context(), existing); err != nil {
		respondError(c, err)
		return
	}

	zap.L().Info("Topping deleted", zap.String("id", existing.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"message": "Topping deleted successfully"})
}
