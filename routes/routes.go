package routes

import (
	"catalog-service/controllers"
	"catalog-service/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the catalog's HTTP surface. Reads are public; every
// mutation goes through authentication and a role gate, with tenant
// ownership enforced inside the handlers.
func RegisterRoutes(
	r *gin.Engine,
	jwks *middleware.JWKSClient,
	categoryController *controllers.CategoryController,
	productController *controllers.ProductController,
	toppingController *controllers.ToppingController,
) {
	auth := middleware.Authenticate(jwks)
	adminOnly := middleware.RequireRoles(middleware.RoleAdmin)
	adminOrManager := middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleManager)

	categories := r.Group("/categories")
	{
		categories.POST("", auth, adminOnly, categoryController.CreateCategory)
		categories.GET("", categoryController.GetCategories)
		categories.GET("/:id", categoryController.GetCategory)
		categories.PUT("/:id", auth, adminOnly, categoryController.UpdateCategory)
		categories.DELETE("/:id", auth, adminOnly, categoryController.DeleteCategory)
	}

	products := r.Group("/products")
	{
		products.POST("", auth, adminOrManager, productController.CreateProduct)
		products.PUT("/:id", auth, adminOrManager, productController.UpdateProduct)
		products.GET("", productController.GetProducts)
		products.GET("/:id", productController.GetProduct)
		products.DELETE("/:id", auth, adminOrManager, productController.DeleteProduct)
	}

	toppings := r.Group("/toppings")
	{
		toppings.POST("", auth, adminOrManager, toppingController.CreateTopping)
		toppings.PUT("/:id", auth, adminOrManager, toppingController.UpdateTopping)
		toppings.GET("", toppingController.GetToppings)
		toppings.GET("/:id", toppingController.GetTopping)
		toppings.DELETE("/:id", auth, adminOrManager, toppingController.DeleteTopping)
	}
}
