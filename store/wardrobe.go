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

	"github.com/julianramos/wardrobe-api/ingest"
	"github.com/julianramos/wardrobe-api/models"
)

// Wardrobe provides owner-scoped access to clothing item documents.
// Every operation filters on the owning user; an item owned by someone
// else resolves as ErrNotFound.
type Wardrobe struct {
	items *mongo.Collection
	blobs ingest.BlobStore
}

// NewWardrobe wires the items collection and the blob store used to
// release images when items are deleted.
func NewWardrobe(db *mongo.Database, blobs ingest.BlobStore) *Wardrobe {
	return &Wardrobe{items: db.Collection("clothing_items"), blobs: blobs}
}

// Create validates and inserts a new clothing item
func (w *Wardrobe) Create(ctx context.Context, owner primitive.ObjectID, name string, category models.Category, description, imageURL string) (*models.ClothingItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Message: "Item name is required"}
	}
	if !category.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("Invalid category %q", category)}
	}
	if imageURL == "" {
		return nil, &ValidationError{Message: "Image URL is required"}
	}

	item := models.ClothingItem{
		ID:          primitive.NewObjectID(),
		UserID:      owner,
		Name:        name,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
	}

	if _, err := w.items.InsertOne(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	return &item, nil
}

// ListByOwner returns all items for the owner, newest first
func (w *Wardrobe) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.ClothingItem, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := w.items.Find(ctx, bson.M{"user_id": owner}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.ClothingItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	// Ensure empty slice is returned as [] instead of null
	if items == nil {
		items = []models.ClothingItem{}
	}
	return items, nil
}

// GetByID returns the owner's item with the given id
func (w *Wardrobe) GetByID(ctx context.Context, owner, id primitive.ObjectID) (*models.ClothingItem, error) {
	var item models.ClothingItem
	err := w.items.FindOne(ctx, bson.M{"_id": id, "user_id": owner}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}
	return &item, nil
}

// Delete removes the owner's item and releases its stored image. The
// image release is best-effort: a backing blob that is already gone is
// logged inside ReleaseBlob and does not fail the delete.
func (w *Wardrobe) Delete(ctx context.Context, owner, id primitive.ObjectID) (*models.ClothingItem, error) {
	var item models.ClothingItem
	err := w.items.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": owner}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	if item.ImageURL != "" {
		if err := ingest.ReleaseBlob(ctx, w.blobs, item.ImageURL); err != nil {
			// The document is already gone; losing the blob cleanup is
			// not a reason to report the delete as failed.
			fmt.Printf("Failed to release image for item %s: %v\n", item.ID.Hex(), err)
		}
	}
	return &item, nil
}
