package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClothingItem represents a single piece in a user's wardrobe
type ClothingItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Category    Category           `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
