package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceType classifies a pricing dimension as contributing the base price or
// an additional charge on top of it.
type PriceType string

const (
	PriceTypeBase       PriceType = "base"
	PriceTypeAdditional PriceType = "additional"
)

// WidgetType is the client-side control used to pick an attribute value.
type WidgetType string

const (
	WidgetTypeSwitch WidgetType = "switch"
	WidgetTypeRadio  WidgetType = "radio"
)

// CategoryPriceConfig declares one pricing dimension of a category, e.g.
// size -> {base, [S, M, L]}. Products of the category price each option.
type CategoryPriceConfig struct {
	PriceType        PriceType `json:"priceType" bson:"priceType"`
	AvailableOptions []string  `json:"availableOptions" bson:"availableOptions"`
}

// CategoryAttribute declares a selectable attribute, e.g. isHit rendered as a
// switch with options Yes/No.
type CategoryAttribute struct {
	Name             string     `json:"name" bson:"name"`
	WidgetType       WidgetType `json:"widgetType" bson:"widgetType"`
	DefaultValue     string     `json:"defaultValue" bson:"defaultValue"`
	AvailableOptions []string   `json:"availableOptions" bson:"availableOptions"`
}

// Category defines the pricing schema and attribute set that products
// referencing it must conform to.
type Category struct {
	ID                 primitive.ObjectID             `json:"_id,omitempty" bson:"_id,omitempty"`
	Name               string                         `json:"name" bson:"name"`
	PriceConfiguration map[string]CategoryPriceConfig `json:"priceConfiguration" bson:"priceConfiguration"`
	Attributes         []CategoryAttribute            `json:"attributes" bson:"attributes"`
	CreatedAt          time.Time                      `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt          time.Time                      `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
