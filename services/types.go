package services

import (
	"context"
	"time"

	"catalog-service/kafka"
	"catalog-service/models"
)

// storageCleanupTimeout bounds best-effort image deletions that run outside
// the request context.
const storageCleanupTimeout = 5 * time.Second

// Kafka topics, named after the entity type.
const (
	TopicProduct = "product"
	TopicTopping = "topping"
)

// Change event types carried in the outbound envelope.
const (
	EventProductCreate = "PRODUCT_CREATE"
	EventProductUpdate = "PRODUCT_UPDATE"
	EventToppingCreate = "TOPPING_CREATE"
	EventToppingUpdate = "TOPPING_UPDATE"
)

// Broker publishes change events for downstream consumers. Satisfied by
// *kafka.Producer.
type Broker interface {
	Publish(ctx context.Context, topic string, event kafka.Event) error
}

// ImageUpload is an in-memory image payload handed from the controller to a
// service, already checked against the upload size cap.
type ImageUpload struct {
	ContentType string
	Data        []byte
}

// ProductInput is the validated-at-the-boundary product payload. The typed
// price configuration and attributes still need schema validation against
// the referenced category before persistence.
type ProductInput struct {
	Name               string
	Description        string
	TenantID           string
	CategoryID         string
	IsPublish          bool
	PriceConfiguration map[string]models.ProductPriceConfig
	Attributes         []models.ProductAttribute
}

// ToppingInput is the topping payload for create and update.
type ToppingInput struct {
	Name      string
	Price     string
	TenantID  string
	IsPublish *bool
}

// ProductFilters restrict a product listing. Raw query values are kept as
// strings; their semantics (literal "true", identifier-shaped category id)
// are applied when the filter document is built.
type ProductFilters struct {
	TenantID   string
	CategoryID string
	IsPublish  string
}

// ProductPage is one page of joined listing rows.
type ProductPage struct {
	Data        []models.ProductListing `json:"data"`
	Total       int64                   `json:"total"`
	PageSize    int                     `json:"pageSize"`
	CurrentPage int                     `json:"currentPage"`
}
