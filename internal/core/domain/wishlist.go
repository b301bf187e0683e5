package domain

import "slices"

// A WishlistEntry is a product snapshot
// with its image already resolved to a displayable URL.
type WishlistEntry struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	Description string
	ImageURL    string
}

type Wishlist struct {
	entries []WishlistEntry
}

func NewWishlist(entries []WishlistEntry) Wishlist {
	var w Wishlist
	for _, e := range entries {
		if e.ID == "" || w.Contains(e.ID) {
			continue
		}
		w.entries = append(w.entries, e)
	}
	return w
}

// Add stores a snapshot of p.
// It reports false if p is already present or has no id.
func (w *Wishlist) Add(p Product, imageURL string) bool {
	if p.Validate() != nil || w.Contains(p.ID) {
		return false
	}
	w.entries = append(w.entries, WishlistEntry{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    imageURL,
	})
	return true
}

func (w *Wishlist) Remove(id string) {
	w.entries = slices.DeleteFunc(w.entries, func(e WishlistEntry) bool {
		return e.ID == id
	})
}

func (w Wishlist) Contains(id string) bool {
	return slices.ContainsFunc(w.entries, func(e WishlistEntry) bool {
		return e.ID == id
	})
}

func (w Wishlist) Entries() []WishlistEntry {
	return slices.Clone(w.entries)
}
