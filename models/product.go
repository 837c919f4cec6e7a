package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductPriceConfig prices the options of one category pricing dimension,
// e.g. size -> {base, {S: 100, M: 150, L: 200}}. Keys must be a subset of the
// labels declared by the parent category for the same dimension.
type ProductPriceConfig struct {
	PriceType        PriceType          `json:"priceType" bson:"priceType"`
	AvailableOptions map[string]float64 `json:"availableOptions" bson:"availableOptions"`
}

// ProductAttribute is a concrete attribute selection, e.g. {isHit, Yes}.
type ProductAttribute struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
}

// Product is a tenant-scoped catalog item referencing exactly one category.
// Image holds the opaque storage key; read paths resolve it to a public URL.
type Product struct {
	ID                 primitive.ObjectID            `json:"_id,omitempty" bson:"_id,omitempty"`
	Name               string                        `json:"name" bson:"name"`
	Description        string                        `json:"description" bson:"description"`
	Image              string                        `json:"image" bson:"image"`
	TenantID           string                        `json:"tenantId" bson:"tenantId"`
	CategoryID         primitive.ObjectID            `json:"categoryId" bson:"categoryId"`
	IsPublish          bool                          `json:"isPublish" bson:"isPublish"`
	PriceConfiguration map[string]ProductPriceConfig `json:"priceConfiguration" bson:"priceConfiguration"`
	Attributes         []ProductAttribute            `json:"attributes" bson:"attributes"`
	CreatedAt          time.Time                     `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt          time.Time                     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ProductListing is a product row returned by the catalog listing aggregation,
// with the parent category's schema inlined.
type ProductListing struct {
	Product  `bson:",inline"`
	Category Category `json:"category" bson:"category"`
}
