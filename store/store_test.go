package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/julianramos/wardrobe-api/composition"
	"github.com/julianramos/wardrobe-api/models"
)

// Validation runs before any database access, so these tests exercise
// the reject paths against zero-value stores.

func TestCreateItemRejectsMissingName(t *testing.T) {
	w := &Wardrobe{}
	_, err := w.Create(context.Background(), primitive.NewObjectID(), "  ", models.CategoryTops, "", "http://localhost:5003/uploads/a.jpg")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateItemRejectsInvalidCategory(t *testing.T) {
	w := &Wardrobe{}
	_, err := w.Create(context.Background(), primitive.NewObjectID(), "Beanie", models.Category("Hats"), "", "http://localhost:5003/uploads/a.jpg")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Hats")
}

func TestCreateItemRejectsMissingImage(t *testing.T) {
	w := &Wardrobe{}
	_, err := w.Create(context.Background(), primitive.NewObjectID(), "Beanie", models.CategoryAccessories, "", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSaveOutfitRejectsEmptySelection(t *testing.T) {
	o := &Outfits{}
	_, err := o.Save(context.Background(), primitive.NewObjectID(), "Friday", composition.Selection{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSaveOutfitRejectsMissingName(t *testing.T) {
	o := &Outfits{}
	boots := models.ClothingItem{ID: primitive.NewObjectID(), Name: "boots", Category: models.CategoryShoes}
	_, err := o.Save(context.Background(), primitive.NewObjectID(), "", composition.Selection{Shoes: &boots})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestValidationErrorDetection(t *testing.T) {
	assert.True(t, IsValidation(&ValidationError{Message: "bad"}))
	assert.False(t, IsValidation(ErrNotFound))
	assert.False(t, IsValidation(nil))
}
