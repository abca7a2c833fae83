package composition

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/julianramos/wardrobe-api/models"
)

// ErrEmptySelection is returned by Snapshot when no item is selected in
// any slot. Callers surface it as a validation failure.
var ErrEmptySelection = errors.New("select at least one item to save an outfit")

// Direction is a carousel navigation direction
type Direction int

const (
	Next Direction = iota
	Prev
)

// Selection is the working set of items for an outfit being built.
// Bottoms and Shoes hold at most one item; Tops and Accessories are
// ordered stacks that support layering.
type Selection struct {
	Bottoms     *models.ClothingItem
	Shoes       *models.ClothingItem
	Tops        []models.ClothingItem
	Accessories []models.ClothingItem
}

// Empty reports whether no slot holds any item
func (s Selection) Empty() bool {
	return s.Bottoms == nil && s.Shoes == nil && len(s.Tops) == 0 && len(s.Accessories) == 0
}

func (s Selection) clone() Selection {
	out := Selection{}
	if s.Bottoms != nil {
		b := *s.Bottoms
		out.Bottoms = &b
	}
	if s.Shoes != nil {
		sh := *s.Shoes
		out.Shoes = &sh
	}
	out.Tops = append([]models.ClothingItem(nil), s.Tops...)
	out.Accessories = append([]models.ClothingItem(nil), s.Accessories...)
	return out
}

// Session tracks one outfit under construction: the working selection
// plus the carousel cursor. Sessions are not safe for concurrent use;
// each belongs to a single caller, mirroring the single-threaded UI
// that drives it. Transitions never fail: anything invalid is a no-op.
type Session struct {
	sel           Selection
	categoryIndex int
	itemIndex     int
}

// NewSession returns an empty session with the cursor on the first category
func NewSession() *Session {
	return &Session{}
}

// Selection returns a copy of the current working selection
func (s *Session) Selection() Selection {
	return s.sel.clone()
}

// Category returns the category the carousel cursor is on
func (s *Session) Category() models.Category {
	return models.Categories[s.categoryIndex]
}

// SelectSingle replaces the selection for a single-slot category.
// Layered categories are not touched; use AddLayer for those.
func (s *Session) SelectSingle(cat models.Category, item models.ClothingItem) {
	switch cat {
	case models.CategoryBottoms:
		s.sel.Bottoms = &item
	case models.CategoryShoes:
		s.sel.Shoes = &item
	}
}

// AddLayer appends an item to a layered category. Duplicates are
// allowed: the same item may be layered with itself.
func (s *Session) AddLayer(cat models.Category, item models.ClothingItem) {
	switch cat {
	case models.CategoryTops:
		s.sel.Tops = append(s.sel.Tops, item)
	case models.CategoryAccessories:
		s.sel.Accessories = append(s.sel.Accessories, item)
	}
}

// RemoveLayer removes the layer at index from a layered category.
// An out-of-range index is a silent no-op.
func (s *Session) RemoveLayer(cat models.Category, index int) {
	switch cat {
	case models.CategoryTops:
		s.sel.Tops = removeAt(s.sel.Tops, index)
	case models.CategoryAccessories:
		s.sel.Accessories = removeAt(s.sel.Accessories, index)
	}
}

// ToggleLayer removes the first layer matching the item's id if one is
// present, otherwise appends the item. This is the carousel's
// select-to-toggle behavior for accessories.
func (s *Session) ToggleLayer(cat models.Category, item models.ClothingItem) {
	var layers []models.ClothingItem
	switch cat {
	case models.CategoryTops:
		layers = s.sel.Tops
	case models.CategoryAccessories:
		layers = s.sel.Accessories
	default:
		return
	}
	for i := range layers {
		if layers[i].ID == item.ID {
			s.RemoveLayer(cat, i)
			return
		}
	}
	s.AddLayer(cat, item)
}

// Clear resets all four slots to empty. The cursor is unaffected.
func (s *Session) Clear() {
	s.sel = Selection{}
}

// NavigateCategory cycles the cursor through the category list and
// resets the item cursor.
func (s *Session) NavigateCategory(dir Direction) models.Category {
	s.categoryIndex = NextIndex(s.categoryIndex, len(models.Categories), dir)
	s.itemIndex = 0
	return s.Category()
}

// Navigate moves the carousel within cat's item pool and returns the
// item now in focus. For single-slot categories the selection itself is
// the anchor and is replaced by the result; for layered categories only
// the cursor moves and selection changes go through AddLayer or
// ToggleLayer. An anchor that is no longer in the pool (the item was
// deleted elsewhere) is treated as absent. Navigating an empty pool is
// a no-op.
func (s *Session) Navigate(cat models.Category, pool []models.ClothingItem, dir Direction) (models.ClothingItem, bool) {
	if len(pool) == 0 {
		return models.ClothingItem{}, false
	}

	anchor := -1
	if cat.Layered() {
		if s.itemIndex >= 0 && s.itemIndex < len(pool) {
			anchor = s.itemIndex
		}
	} else {
		var current *models.ClothingItem
		if cat == models.CategoryBottoms {
			current = s.sel.Bottoms
		} else if cat == models.CategoryShoes {
			current = s.sel.Shoes
		}
		if current != nil {
			anchor = indexByID(pool, current.ID)
		}
	}

	idx := NextIndex(anchor, len(pool), dir)
	s.itemIndex = idx
	item := pool[idx]
	if !cat.Layered() {
		s.SelectSingle(cat, item)
	}
	return item, true
}

// Snapshot returns the persistable shape of the selection. It fails
// with ErrEmptySelection when all four slots are empty.
func (s *Session) Snapshot() (Selection, error) {
	if s.sel.Empty() {
		return Selection{}, ErrEmptySelection
	}
	return s.sel.clone(), nil
}

// NextIndex computes modular carousel navigation over a pool of the
// given size. A current index outside [0, size) means "no anchor":
// Next lands on the first element and Prev on the last. A non-positive
// size yields -1.
func NextIndex(current, size int, dir Direction) int {
	if size <= 0 {
		return -1
	}
	if current < 0 || current >= size {
		if dir == Next {
			return 0
		}
		return size - 1
	}
	if dir == Next {
		return (current + 1) % size
	}
	if current == 0 {
		return size - 1
	}
	return current - 1
}

func indexByID(pool []models.ClothingItem, id primitive.ObjectID) int {
	for i := range pool {
		if pool[i].ID == id {
			return i
		}
	}
	return -1
}

func removeAt(layers []models.ClothingItem, index int) []models.ClothingItem {
	if index < 0 || index >= len(layers) {
		return layers
	}
	return append(layers[:index], layers[index+1:]...)
}
