package services

import (
	"context"
	"errors"

	apperrors "catalog-service/errors"
	"catalog-service/models"
	"catalog-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryService struct {
	repo repository.CategoryRepo
}

func NewCategoryService(repo repository.CategoryRepo) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, category *models.Category) (primitive.ObjectID, error) {
	if err := ValidateCategory(category); err != nil {
		return primitive.NilObjectID, err
	}

	id, err := s.repo.Create(ctx, category)
	if err != nil {
		return primitive.NilObjectID, apperrors.Upstream("Failed to create category", err)
	}
	return id, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Upstream("Failed to fetch categories", err)
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid category id", err)
	}

	category, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Upstream("Failed to fetch category", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, category *models.Category) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.BadRequest("Invalid category id", err)
	}
	if err := ValidateCategory(category); err != nil {
		return err
	}

	updates := bson.M{
		"name":               category.Name,
		"priceConfiguration": category.PriceConfiguration,
		"attributes":         category.Attributes,
	}
	matched, err := s.repo.Update(ctx, oid, updates)
	if err != nil {
		return apperrors.Upstream("Failed to update category", err)
	}
	if matched == 0 {
		return apperrors.NotFound("Category not found")
	}
	return nil
}

// Delete removes the category definition. Products referencing it are left
// in place; the listing join drops them until they are re-categorized.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.BadRequest("Invalid category id", err)
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return apperrors.Upstream("Failed to delete category", err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Category not found")
	}
	return nil
}
