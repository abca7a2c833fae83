package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianramos/wardrobe-api/models"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range models.Categories {
		assert.True(t, c.Valid(), "%s should be valid", c)
	}
	assert.False(t, models.Category("Hats").Valid())
	assert.False(t, models.Category("tops").Valid(), "categories are case-sensitive")
	assert.False(t, models.Category("").Valid())
}

func TestCategoryLayered(t *testing.T) {
	assert.True(t, models.CategoryTops.Layered())
	assert.True(t, models.CategoryAccessories.Layered())
	assert.False(t, models.CategoryBottoms.Layered())
	assert.False(t, models.CategoryShoes.Layered())
}
