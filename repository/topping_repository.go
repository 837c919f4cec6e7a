package repository

import (
	"context"
	"time"

	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ToppingRepository struct {
	collection *mongo.Collection
}

func NewToppingRepository(db *mongo.Database) *ToppingRepository {
	return &ToppingRepository{
		collection: db.Collection("toppings"),
	}
}

func (r *ToppingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Topping, error) {
	var topping models.Topping
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&topping)
	if err != nil {
		return nil, err
	}
	return &topping, nil
}

func (r *ToppingRepository) Find(ctx context.Context, filter bson.M) ([]models.Topping, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	toppings := []models.Topping{}
	if err = cursor.All(ctx, &toppings); err != nil {
		return nil, err
	}
	return toppings, nil
}

func (r *ToppingRepository) Create(ctx context.Context, topping *models.Topping) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	topping.CreatedAt = now
	topping.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, topping)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ToppingRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	updates["updatedAt"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *ToppingRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
