package repository

import (
	"context"

	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryRepo defines the operations used for category management.
type CategoryRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ProductRepo defines the operations used by the catalog's product surface.
// ListWithCategory runs the listing aggregation: matched products joined to
// their parent category, paginated, with the pre-pagination total.
type ProductRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListWithCategory(ctx context.Context, filter bson.M, skip, limit int64) ([]models.ProductListing, int64, error)
	Create(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ToppingRepo defines the operations used for topping management.
type ToppingRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Topping, error)
	Find(ctx context.Context, filter bson.M) ([]models.Topping, error)
	Create(ctx context.Context, topping *models.Topping) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
