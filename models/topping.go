package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topping is a standalone priced add-on scoped to a tenant. Price is kept as
// a numeric string, matching what order-side consumers expect on the wire.
type Topping struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Price     string             `json:"price" bson:"price"`
	TenantID  string             `json:"tenantId" bson:"tenantId"`
	Image     string             `json:"image" bson:"image"`
	IsPublish bool               `json:"isPublish" bson:"isPublish"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
