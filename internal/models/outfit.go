package models

import (
	"sort"
)

// LayoutEntry places one referenced item inside an outfit's visual
// arrangement. X and Y are normalized to [0,1]. Layout entries are
// independent of ItemIDs membership and may reference ids not in it.
type LayoutEntry struct {
	ItemID int     `json:"item_id" db:"item_id"`
	X      float64 `json:"x" db:"x"`
	Y      float64 `json:"y" db:"y"`
}

// Outfit is a named collection of clothing item references tagged with a
// season and a DD-MM-YYYY creation date. It never owns items, it only
// references them by id; a stale id is tolerated and simply fails to
// resolve when looked up later.
type Outfit struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Season    string        `json:"season" db:"season"`
	DateAdded string        `json:"date_added" db:"date_added"`
	ItemIDs   []int         `json:"item_ids"`
	Layout    []LayoutEntry `json:"layout,omitempty"`
}

func NewOutfit(id, name, season, dateAdded string) *Outfit {
	return &Outfit{
		ID:        id,
		Name:      name,
		Season:    season,
		DateAdded: dateAdded,
	}
}

// SetItems replaces the referenced ids with those of the given items.
func (o *Outfit) SetItems(items []ClothingItem) {
	o.ItemIDs = o.ItemIDs[:0]
	for _, item := range items {
		o.ItemIDs = append(o.ItemIDs, item.ID)
	}
}

// SetItemIDs replaces the referenced ids wholesale.
func (o *Outfit) SetItemIDs(ids []int) {
	o.ItemIDs = append([]int(nil), ids...)
}

// SetLayout replaces the placement entries wholesale.
func (o *Outfit) SetLayout(entries []LayoutEntry) {
	o.Layout = append([]LayoutEntry(nil), entries...)
}

// AddItem appends a reference; duplicates are permitted.
func (o *Outfit) AddItem(itemID int) {
	o.ItemIDs = append(o.ItemIDs, itemID)
}

// RemoveItem drops every occurrence of the id. The layout is untouched.
func (o *Outfit) RemoveItem(itemID int) {
	kept := o.ItemIDs[:0]
	for _, id := range o.ItemIDs {
		if id != itemID {
			kept = append(kept, id)
		}
	}
	o.ItemIDs = kept
}

// ClearItems drops both the item references and the layout.
func (o *Outfit) ClearItems() {
	o.ItemIDs = nil
	o.Layout = nil
}

// Equal compares outfits by their item references alone, order-independent:
// both id lists are sorted and compared element-wise, so [1,2,2] equals
// [2,1,2] but not [1,2]. Name, season and layout never participate.
func (o *Outfit) Equal(other *Outfit) bool {
	if other == nil {
		return false
	}
	if len(o.ItemIDs) != len(other.ItemIDs) {
		return false
	}

	ids1 := append([]int(nil), o.ItemIDs...)
	ids2 := append([]int(nil), other.ItemIDs...)
	sort.Ints(ids1)
	sort.Ints(ids2)

	for i := range ids1 {
		if ids1[i] != ids2[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers cannot mutate repository-owned state.
func (o *Outfit) Clone() Outfit {
	out := *o
	if o.ItemIDs != nil {
		out.ItemIDs = append([]int(nil), o.ItemIDs...)
	}
	if o.Layout != nil {
		out.Layout = append([]LayoutEntry(nil), o.Layout...)
	}
	return out
}
