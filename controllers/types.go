package controllers

import (
	"context"
	"time"

	"catalog-service/models"
	"catalog-service/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default configuration values
const (
	DefaultCacheTTL = 10 * time.Minute

	// MaxImageSize caps uploaded image payloads.
	MaxImageSize = 500 * 1024
)

// CategoryServiceAPI defines the interface for category operations.
type CategoryServiceAPI interface {
	Create(ctx context.Context, category *models.Category) (primitive.ObjectID, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Update(ctx context.Context, id string, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

// ProductServiceAPI defines the interface for product operations.
type ProductServiceAPI interface {
	CreateProduct(ctx context.Context, input services.ProductInput, image *services.ImageUpload) (*models.Product, error)
	UpdateProduct(ctx context.Context, existing *models.Product, input services.ProductInput, image *services.ImageUpload) (*models.Product, error)
	DeleteProduct(ctx context.Context, existing *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductRaw(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, q string, filters services.ProductFilters, page, limit int) (*services.ProductPage, error)
}

// ToppingServiceAPI defines the interface for topping operations.
type ToppingServiceAPI interface {
	CreateTopping(ctx context.Context, input services.ToppingInput, image *services.ImageUpload) (*models.Topping, error)
	UpdateTopping(ctx context.Context, existing *models.Topping, input services.ToppingInput, image *services.ImageUpload) (*models.Topping, error)
	DeleteTopping(ctx context.Context, existing *models.Topping) error
	GetTopping(ctx context.Context, id string) (*models.Topping, error)
	GetToppingRaw(ctx context.Context, id string) (*models.Topping, error)
	ListToppings(ctx context.Context, tenantID string) ([]models.Topping, error)
}
