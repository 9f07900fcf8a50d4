package models

import (
	"dressdiary/internal/dateutil"
)

// Category discriminates the closed set of clothing item variants.
type Category string

const (
	CategoryBase   Category = "base"
	CategoryPants  Category = "pants"
	CategoryTop    Category = "top"
	CategoryJacket Category = "jacket"
	CategoryShoes  Category = "shoes"
)

// ClothingItem is a single wardrobe entry. The variant fields below Image
// are only meaningful when Category matches the one named in their comment;
// the repository never reads them for other categories. Image is an opaque
// blob encoded by the presentation layer and never interpreted here.
type ClothingItem struct {
	ID        int      `json:"id" db:"id"`
	Color     string   `json:"color" db:"color"`
	Materials []string `json:"materials"`
	Category  Category `json:"category" db:"category"`
	Image     []byte   `json:"image,omitempty" db:"image"`

	// Only meaningful when Category == CategoryPants.
	Length float64 `json:"length,omitempty" db:"pant_length"`
	Waist  string  `json:"waist,omitempty" db:"pant_waist"`

	// Only meaningful when Category == CategoryTop.
	SleeveType string `json:"sleeve_type,omitempty" db:"top_sleeve_type"`
	Neckline   string `json:"neckline,omitempty" db:"top_neckline"`

	// Only meaningful when Category == CategoryJacket.
	Waterproof bool `json:"waterproof,omitempty" db:"jacket_waterproof"`

	// Only meaningful when Category == CategoryShoes.
	Size float64 `json:"size,omitempty" db:"shoe_size"`
}

// NewBasicItem creates an item of the bare base category.
func NewBasicItem(id int, color string, materials []string, image []byte) ClothingItem {
	return ClothingItem{
		ID:        id,
		Color:     color,
		Materials: materials,
		Category:  CategoryBase,
		Image:     image,
	}
}

// NewPants rounds the length to one decimal at construction; it is not
// re-applied on reads.
func NewPants(id int, color string, materials []string, image []byte, length float64, waist string) ClothingItem {
	item := NewBasicItem(id, color, materials, image)
	item.Category = CategoryPants
	item.Length = dateutil.RoundToOneDecimal(length)
	item.Waist = waist
	return item
}

func NewTop(id int, color string, materials []string, image []byte, sleeveType, neckline string) ClothingItem {
	item := NewBasicItem(id, color, materials, image)
	item.Category = CategoryTop
	item.SleeveType = sleeveType
	item.Neckline = neckline
	return item
}

func NewJacket(id int, color string, materials []string, image []byte, waterproof bool) ClothingItem {
	item := NewBasicItem(id, color, materials, image)
	item.Category = CategoryJacket
	item.Waterproof = waterproof
	return item
}

// NewShoes rounds the size to one decimal at construction.
func NewShoes(id int, color string, materials []string, image []byte, size float64) ClothingItem {
	item := NewBasicItem(id, color, materials, image)
	item.Category = CategoryShoes
	item.Size = dateutil.RoundToOneDecimal(size)
	return item
}

// SameIdentity reports whether two items are the same entity. Identity is
// the ID alone; all other fields may legitimately differ.
func (i ClothingItem) SameIdentity(other ClothingItem) bool {
	return i.ID == other.ID
}

// Clone returns a deep copy so callers cannot mutate repository-owned state.
func (i ClothingItem) Clone() ClothingItem {
	out := i
	if i.Materials != nil {
		out.Materials = append([]string(nil), i.Materials...)
	}
	if i.Image != nil {
		out.Image = append([]byte(nil), i.Image...)
	}
	return out
}
