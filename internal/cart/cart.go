// Package cart models the shopping cart the storefront keeps client side. The server
// rebuilds it from request lines to quote and check out.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one (product, size) entry. Lines with the same product and size are merged.
type Line struct {
	ProductID uuid.UUID
	Name      string
	Size      string
	Image     string
	Price     decimal.Decimal
	Quantity  int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type key struct {
	product uuid.UUID
	size    string
}

// Cart keeps lines in insertion order.
type Cart struct {
	lines []Line
	index map[key]int
}

func New() *Cart {
	return &Cart{index: make(map[key]int)}
}

// Add appends line or, when the product and size are already present, adds its quantity
// to the existing line. Quantities below 1 are treated as 1.
func (c *Cart) Add(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	k := key{line.ProductID, line.Size}
	if i, ok := c.index[k]; ok {
		c.lines[i].Quantity += line.Quantity
		return
	}

	c.index[k] = len(c.lines)
	c.lines = append(c.lines, line)
}

// SetQuantity floors qty at 1. It reports false when the line does not exist.
func (c *Cart) SetQuantity(productID uuid.UUID, size string, qty int) bool {
	i, ok := c.index[key{productID, size}]
	if !ok {
		return false
	}
	if qty < 1 {
		qty = 1
	}
	c.lines[i].Quantity = qty
	return true
}

func (c *Cart) Remove(productID uuid.UUID, size string) bool {
	k := key{productID, size}
	i, ok := c.index[k]
	if !ok {
		return false
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, k)
	for j := i; j < len(c.lines); j++ {
		c.index[key{c.lines[j].ProductID, c.lines[j].Size}] = j
	}
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[key]int)
}

// Lines returns a copy of the lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ProductIDs lists the distinct products in the cart.
func (c *Cart) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(c.lines))
	ids := make([]uuid.UUID, 0, len(c.lines))
	for _, l := range c.lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// QuantityOf sums the quantity of a product over all sizes.
func (c *Cart) QuantityOf(productID uuid.UUID) int {
	n := 0
	for _, l := range c.lines {
		if l.ProductID == productID {
			n += l.Quantity
		}
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units, not lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	return len(c.lines)
}
