package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
)

type CartLine struct {
	ID            string
	Name          string
	UnitPrice     float64
	Quantity      int
	ImageRef      string
	CategoryLabel string
	Description   string
}

// A Cart is an ordered list of lines with unique ids.
//
// The zero value is an empty cart.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from previously stored lines.
//
// Lines with an empty or repeated id are dropped,
// quantities are clamped to [MinLineQuantity, MaxLineQuantity].
func NewCart(lines []CartLine) Cart {
	var c Cart
	for _, l := range lines {
		if l.ID == "" || c.indexOf(l.ID) != -1 {
			continue
		}
		l.Quantity = min(max(l.Quantity, MinLineQuantity), MaxLineQuantity)
		l.UnitPrice = max(l.UnitPrice, 0)
		c.lines = append(c.lines, l)
	}
	return c
}

// Add puts one unit of p into the cart. A nil product is ignored.
func (c *Cart) Add(p *Product) error {
	if p == nil {
		return nil
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if i := c.indexOf(p.ID); i != -1 {
		if c.lines[i].Quantity >= MaxLineQuantity {
			return ErrMaxQuantity
		}
		c.lines[i].Quantity++
		return nil
	}

	c.lines = append(c.lines, CartLine{
		ID:            p.ID,
		Name:          p.Name,
		UnitPrice:     max(p.Price, 0),
		Quantity:      1,
		ImageRef:      p.ImageRef,
		CategoryLabel: p.Category,
		Description:   p.Description,
	})
	return nil
}

func (c *Cart) Remove(id string) {
	if i := c.indexOf(id); i != -1 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

func (c *Cart) UpdateQuantity(id string, q int) error {
	if q < MinLineQuantity || q > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	if i := c.indexOf(id); i != -1 {
		c.lines[i].Quantity = q
	}
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

func (c Cart) TotalItems() (n int) {
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) TotalPrice() float64 {
	total := decimal.Zero
	for _, l := range c.lines {
		price := decimal.NewFromFloat(l.UnitPrice)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.InexactFloat64()
}

func (c Cart) indexOf(id string) int {
	return slices.IndexFunc(c.lines, func(l CartLine) bool {
		return l.ID == id
	})
}
