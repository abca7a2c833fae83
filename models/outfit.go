package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outfit is a saved combination of wardrobe items. Item data is embedded
// as a snapshot taken at save time, so deleting an item later does not
// change outfits that already reference it. Outfits are immutable once
// created.
type Outfit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Bottoms     *ClothingItem      `bson:"bottoms,omitempty" json:"bottoms,omitempty"`
	Shoes       *ClothingItem      `bson:"shoes,omitempty" json:"shoes,omitempty"`
	Tops        []ClothingItem     `bson:"tops,omitempty" json:"tops,omitempty"`
	Accessories []ClothingItem     `bson:"accessories,omitempty" json:"accessories,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
