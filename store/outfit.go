package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julianramos/wardrobe-api/composition"
	"github.com/julianramos/wardrobe-api/models"
)

// Outfits provides owner-scoped access to saved outfit documents.
// Outfits are write-once: there is no update path.
type Outfits struct {
	outfits *mongo.Collection
}

// NewOutfits wires the outfits collection
func NewOutfits(db *mongo.Database) *Outfits {
	return &Outfits{outfits: db.Collection("outfits")}
}

// Save persists a selection snapshot as a named outfit. A selection
// with nothing in any slot is rejected before touching the database.
func (o *Outfits) Save(ctx context.Context, owner primitive.ObjectID, name string, sel composition.Selection) (*models.Outfit, error) {
	if sel.Empty() {
		return nil, &ValidationError{Message: composition.ErrEmptySelection.Error()}
	}
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Message: "Outfit name is required"}
	}

	outfit := models.Outfit{
		ID:          primitive.NewObjectID(),
		UserID:      owner,
		Name:        name,
		Bottoms:     sel.Bottoms,
		Shoes:       sel.Shoes,
		Tops:        sel.Tops,
		Accessories: sel.Accessories,
		CreatedAt:   time.Now(),
	}

	if _, err := o.outfits.InsertOne(ctx, outfit); err != nil {
		return nil, fmt.Errorf("failed to insert outfit: %w", err)
	}
	return &outfit, nil
}

// ListByOwner returns all outfits for the owner, newest first
func (o *Outfits) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Outfit, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := o.outfits.Find(ctx, bson.M{"user_id": owner}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outfits: %w", err)
	}
	defer cursor.Close(ctx)

	var outfits []models.Outfit
	if err := cursor.All(ctx, &outfits); err != nil {
		return nil, fmt.Errorf("failed to decode outfits: %w", err)
	}
	if outfits == nil {
		outfits = []models.Outfit{}
	}
	return outfits, nil
}

// Delete removes the owner's outfit with the given id
func (o *Outfits) Delete(ctx context.Context, owner, id primitive.ObjectID) (*models.Outfit, error) {
	var outfit models.Outfit
	err := o.outfits.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": owner}).Decode(&outfit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete outfit: %w", err)
	}
	return &outfit, nil
}
