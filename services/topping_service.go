package services

import (
	"context"
	"errors"
	"strconv"

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

// toppingEvent is the snapshot published on topping create/update.
type toppingEvent struct {
	ID       string `json:"id"`
	Price    string `json:"price"`
	TenantID string `json:"tenantId"`
}

type ToppingService struct {
	repo    repository.ToppingRepo
	storage storage.FileStorage
	broker  Broker
}

func NewToppingService(repo repository.ToppingRepo, fs storage.FileStorage, broker Broker) *ToppingService {
	return &ToppingService{
		repo:    repo,
		storage: fs,
		broker:  broker,
	}
}

// CreateTopping follows the same mutation sequence as products: validate,
// upload, persist (compensating on failure), publish.
func (s *ToppingService) CreateTopping(ctx context.Context, input ToppingInput, image *ImageUpload) (*models.Topping, error) {
	if err := validateToppingInput(input); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, apperrors.BadRequest("Topping image is required", nil)
	}

	imageKey := uuid.New().String()
	if err := s.storage.Upload(ctx, imageKey, image.ContentType, image.Data); err != nil {
		return nil, apperrors.Upstream("Failed to upload topping image", err)
	}

	isPublish := true
	if input.IsPublish != nil {
		isPublish = *input.IsPublish
	}
	topping := &models.Topping{
		Name:      input.Name,
		Price:     input.Price,
		TenantID:  input.TenantID,
		Image:     imageKey,
		IsPublish: isPublish,
	}
	id, err := s.repo.Create(ctx, topping)
	if err != nil {
		s.releaseImage(imageKey)
		return nil, apperrors.Upstream("Failed to create topping", err)
	}
	topping.ID = id

	if err := s.publishTopping(ctx, EventToppingCreate, topping); err != nil {
		return nil, err
	}
	return topping, nil
}

func (s *ToppingService) UpdateTopping(ctx context.Context, existing *models.Topping, input ToppingInput, image *ImageUpload) (*models.Topping, error) {
	if err := validateToppingInput(input); err != nil {
		return nil, err
	}

	imageKey := existing.Image
	if image != nil {
		imageKey = uuid.New().String()
		if err := s.storage.Upload(ctx, imageKey, image.ContentType, image.Data); err != nil {
			return nil, apperrors.Upstream("Failed to upload topping image", err)
		}
	}

	isPublish := existing.IsPublish
	if input.IsPublish != nil {
		isPublish = *input.IsPublish
	}
	updates := bson.M{
		"name":      input.Name,
		"price":     input.Price,
		"tenantId":  input.TenantID,
		"image":     imageKey,
		"isPublish": isPublish,
	}
	matched, err := s.repo.Update(ctx, existing.ID, updates)
	if err != nil {
		if image != nil {
			s.releaseImage(imageKey)
		}
		return nil, apperrors.Upstream("Failed to update topping", err)
	}
	if matched == 0 {
		if image != nil {
			s.releaseImage(imageKey)
		}
		return nil, apperrors.NotFound("Topping not found")
	}
	if image != nil && existing.Image != "" {
		s.releaseImage(existing.Image)
	}

	updated := *existing
	updated.Name = input.Name
	updated.Price = input.Price
	updated.TenantID = input.TenantID
	updated.Image = imageKey
	updated.IsPublish = isPublish

	if err := s.publishTopping(ctx, EventToppingUpdate, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ToppingService) DeleteTopping(ctx context.Context, existing *models.Topping) error {
	deleted, err := s.repo.Delete(ctx, existing.ID)
	if err != nil {
		return apperrors.Upstream("Failed to delete topping", err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Topping not found")
	}
	if existing.Image != "" {
		s.releaseImage(existing.Image)
	}
	return nil
}

func (s *ToppingService) GetTopping(ctx context.Context, id string) (*models.Topping, error) {
	topping, err := s.getToppingRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.ObjectURL(topping.Image)
	if err != nil {
		return nil, apperrors.Upstream("Invalid storage configuration", err)
	}
	resolved := *topping
	resolved.Image = url
	return &resolved, nil
}

// GetToppingRaw fetches a topping without resolving the image key.
func (s *ToppingService) GetToppingRaw(ctx context.Context, id string) (*models.Topping, error) {
	return s.getToppingRaw(ctx, id)
}

func (s *ToppingService) ListToppings(ctx context.Context, tenantID string) ([]models.Topping, error) {
	filter := bson.M{}
	if tenantID != "" {
		filter["tenantId"] = tenantID
	}

	toppings, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Upstream("Failed to fetch toppings", err)
	}
	for i := range toppings {
		url, err := s.storage.ObjectURL(toppings[i].Image)
		if err != nil {
			return nil, apperrors.Upstream("Invalid storage configuration", err)
		}
		toppings[i].Image = url
	}
	return toppings, nil
}

func (s *ToppingService) getToppingRaw(ctx context.Context, id string) (*models.Topping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid topping id", err)
	}
	topping, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Topping not found")
		}
		return nil, apperrors.Upstream("Failed to fetch topping", err)
	}
	return topping, nil
}

func (s *ToppingService) publishTopping(ctx context.Context, eventType string, topping *models.Topping) error {
	event := kafka.Event{
		EventType: eventType,
		Data: toppingEvent{
			ID:       topping.ID.Hex(),
			Price:    topping.Price,
			TenantID: topping.TenantID,
		},
	}
	if err := s.broker.Publish(ctx, TopicTopping, event); err != nil {
		return apperrors.Upstream("Failed to publish topping event", err)
	}
	return nil
}

func (s *ToppingService) releaseImage(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), storageCleanupTimeout)
	defer cancel()
	if err := s.storage.Delete(ctx, key); err != nil {
		zap.L().Warn("Failed to delete image asset", zap.String("key", key), zap.Error(err))
	}
}

func validateToppingInput(input ToppingInput) error {
	if input.Name == "" {
		return apperrors.BadRequest("Topping name is required", nil)
	}
	if input.TenantID == "" {
		return apperrors.BadRequest("Tenant id is required", nil)
	}
	if _, err := strconv.ParseFloat(input.Price, 64); err != nil {
		return apperrors.BadRequest("Topping price must be numeric", err)
	}
	return nil
}
