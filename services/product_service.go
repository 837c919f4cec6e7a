package services

import (
	"context"
	"errors"
	"regexp"

	apperrors "catalog-service/errors"
	"catalog-service/kafka"
	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// productEvent is the pricing snapshot published on product create/update.
type productEvent struct {
	ID                 string                                `json:"id"`
	PriceConfiguration map[string]models.ProductPriceConfig `json:"priceConfiguration"`
	TenantID           string                                `json:"tenantId"`
}

type ProductService struct {
	productRepo  repository.ProductRepo
	categoryRepo repository.CategoryRepo
	storage      storage.FileStorage
	broker       Broker
}

func NewProductService(pr repository.ProductRepo, cr repository.CategoryRepo, fs storage.FileStorage, broker Broker) *ProductService {
	return &ProductService{
		productRepo:  pr,
		categoryRepo: cr,
		storage:      fs,
		broker:       broker,
	}
}

// CreateProduct runs the full mutation sequence: schema validation against
// the referenced category, image upload, persistence, change event. A failed
// persistence deletes the just-uploaded image; a failed publish fails the
// request even though the write went through.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput, image *ImageUpload) (*models.Product, error) {
	category, err := s.lookupCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := ValidateProductPricing(category, input.PriceConfiguration); err != nil {
		return nil, err
	}
	if err := ValidateProductAttributes(category, input.Attributes); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, apperrors.BadRequest("Product image is required", nil)
	}

	imageKey := uuid.New().String()
	if err := s.storage.Upload(ctx, imageKey, image.ContentType, image.Data); err != nil {
		return nil, apperrors.Upstream("Failed to upload product image", err)
	}

	product := &models.Product{
		Name:               input.Name,
		Description:        input.Description,
		Image:              imageKey,
		TenantID:           input.TenantID,
		CategoryID:         category.ID,
		IsPublish:          input.IsPublish,
		PriceConfiguration: input.PriceConfiguration,
		Attributes:         input.Attributes,
	}
	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.releaseImage(imageKey)
		return nil, apperrors.Upstream("Failed to create product", err)
	}
	product.ID = id

	if err := s.publishProduct(ctx, EventProductCreate, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the product's fields; existing is the record the
// caller already fetched for the ownership check. A new image, when present,
// is uploaded first and the previous one released after the write succeeds.
func (s *ProductService) UpdateProduct(ctx context.Context, existing *models.Product, input ProductInput, image *ImageUpload) (*models.Product, error) {
	category, err := s.lookupCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := ValidateProductPricing(category, input.PriceConfiguration); err != nil {
		return nil, err
	}
	if err := ValidateProductAttributes(category, input.Attributes); err != nil {
		return nil, err
	}

	imageKey := existing.Image
	if image != nil {
		imageKey = uuid.New().String()
		if err := s.storage.Upload(ctx, imageKey, image.ContentType, image.Data); err != nil {
			return nil, apperrors.Upstream("Failed to upload product image", err)
		}
	}

	updates := bson.M{
		"name":               input.Name,
		"description":        input.Description,
		"image":              imageKey,
		"tenantId":           input.TenantID,
		"categoryId":         category.ID,
		"isPublish":          input.IsPublish,
		"priceConfiguration": input.PriceConfiguration,
		"attributes":         input.Attributes,
	}
	matched, err := s.productRepo.Update(ctx, existing.ID, updates)
	if err != nil {
		if image != nil {
			s.releaseImage(imageKey)
		}
		return nil, apperrors.Upstream("Failed to update product", err)
	}
	if matched == 0 {
		if image != nil {
			s.releaseImage(imageKey)
		}
		return nil, apperrors.NotFound("Product not found")
	}
	if image != nil && existing.Image != "" {
		s.releaseImage(existing.Image)
	}

	updated := *existing
	updated.Name = input.Name
	updated.Description = input.Description
	updated.Image = imageKey
	updated.TenantID = input.TenantID
	updated.CategoryID = category.ID
	updated.IsPublish = input.IsPublish
	updated.PriceConfiguration = input.PriceConfiguration
	updated.Attributes = input.Attributes

	if err := s.publishProduct(ctx, EventProductUpdate, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes the record and releases its image asset.
func (s *ProductService) DeleteProduct(ctx context.Context, existing *models.Product) error {
	deleted, err := s.productRepo.Delete(ctx, existing.ID)
	if err != nil {
		return apperrors.Upstream("Failed to delete product", err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Product not found")
	}
	if existing.Image != "" {
		s.releaseImage(existing.Image)
	}
	return nil
}

// GetProduct fetches a product by id with its image key resolved to a URL.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.getProductRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.ObjectURL(product.Image)
	if err != nil {
		return nil, apperrors.Upstream("Invalid storage configuration", err)
	}
	resolved := *product
	resolved.Image = url
	return &resolved, nil
}

// GetProductRaw fetches a product without resolving the image key. Mutating
// handlers use it for ownership checks and image bookkeeping.
func (s *ProductService) GetProductRaw(ctx context.Context, id string) (*models.Product, error) {
	return s.getProductRaw(ctx, id)
}

// ListProducts runs the catalog listing: filters, category join, pagination,
// image URL resolution. An identifier that is not ObjectID-shaped is ignored
// rather than surfaced; isPublish filters only on the literal "true".
func (s *ProductService) ListProducts(ctx context.Context, q string, filters ProductFilters, page, limit int) (*ProductPage, error) {
	filter := bson.M{}
	if q != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
	}
	if filters.TenantID != "" {
		filter["tenantId"] = filters.TenantID
	}
	if oid, err := primitive.ObjectIDFromHex(filters.CategoryID); err == nil {
		filter["categoryId"] = oid
	}
	if filters.IsPublish == "true" {
		filter["isPublish"] = true
	}

	skip := int64((page - 1) * limit)
	data, total, err := s.productRepo.ListWithCategory(ctx, filter, skip, int64(limit))
	if err != nil {
		return nil, apperrors.Upstream("Failed to fetch products", err)
	}

	for i := range data {
		url, err := s.storage.ObjectURL(data[i].Image)
		if err != nil {
			return nil, apperrors.Upstream("Invalid storage configuration", err)
		}
		data[i].Image = url
	}

	return &ProductPage{
		Data:        data,
		Total:       total,
		PageSize:    limit,
		CurrentPage: page,
	}, nil
}

func (s *ProductService) getProductRaw(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid product id", err)
	}
	product, err := s.productRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Upstream("Failed to fetch product", err)
	}
	return product, nil
}

func (s *ProductService) lookupCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid category id", err)
	}
	category, err := s.categoryRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Upstream("Failed to fetch category", err)
	}
	return category, nil
}

func (s *ProductService) publishProduct(ctx context.Context, eventType string, product *models.Product) error {
	event := kafka.Event{
		EventType: eventType,
		Data: productEvent{
			ID:                 product.ID.Hex(),
			PriceConfiguration: product.PriceConfiguration,
			TenantID:           product.TenantID,
		},
	}
	if err := s.broker.Publish(ctx, TopicProduct, event); err != nil {
		return apperrors.Upstream("Failed to publish product event", err)
	}
	return nil
}

// releaseImage deletes a stored image outside the request's failure path.
// Best effort: a leaked object is logged, not surfaced.
func (s *ProductService) releaseImage(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), storageCleanupTimeout)
	defer cancel()
	if err := s.storage.Delete(ctx, key); err != nil {
		zap.L().Warn("Failed to delete image asset", zap.String("key", key), zap.Error(err))
	}
}
