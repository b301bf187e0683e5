package domain

// A Product is the display snapshot of a catalogue item
// passed to the cart, compare and wishlist stores.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	Stock       int
	Rating      float64
	Description string
	ImageRef    string
}

// Validate rejects a product that could not be found again by id.
func (p Product) Validate() error {
	if p.ID == "" {
		return ErrInvalidProduct
	}
	return nil
}
