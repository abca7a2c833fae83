package models

// Category is the closed set of clothing categories
type Category string

const (
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
)

// Categories lists every valid category in carousel order
var Categories = []Category{CategoryTops, CategoryBottoms, CategoryShoes, CategoryAccessories}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryShoes, CategoryAccessories:
		return true
	}
	return false
}

// Layered reports whether a category holds an ordered stack of items
// instead of a single slot. Tops and Accessories support layering.
func (c Category) Layered() bool {
	return c == CategoryTops || c == CategoryAccessories
}
