// Package cart implements the session cart: an insertion-ordered mapping
// from product ID to cart line.
package cart

import (
	"session-cart/internal/model"
)

// Cart holds the lines of one session's cart in insertion order.
// A Cart is not safe for concurrent use; each request works on its own copy.
type Cart struct {
	items []model.CartItem
	index map[int64]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[int64]int)}
}

// FromItems rebuilds a cart from persisted lines, keeping their order.
// Lines with a non-positive quantity and repeated IDs are dropped.
func FromItems(items []model.CartItem) *Cart {
	c := New()
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if _, exists := c.index[item.ID]; exists {
			continue
		}
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c
}

// Add puts one unit of the product into the cart.
// If the product is already present its quantity is incremented and the
// stored title, price and image are left untouched.
func (c *Cart) Add(productID int64, title string, price float64, image *string) model.CartItem {
	if i, exists := c.index[productID]; exists {
		c.items[i].Quantity++
		return c.items[i]
	}

	item := model.CartItem{
		ID:       productID,
		Title:    title,
		Price:    price,
		Image:    image,
		Quantity: 1,
	}
	c.index[productID] = len(c.items)
	c.items = append(c.items, item)
	return item
}

// Update sets the quantity of a product to exactly quantity.
// A quantity of zero removes the line.
func (c *Cart) Update(productID int64, quantity int) error {
	if quantity < 0 {
		return model.ErrInvalidQuantity
	}

	i, exists := c.index[productID]
	if !exists {
		return model.ErrItemNotFound
	}

	if quantity == 0 {
		c.removeAt(i)
		return nil
	}

	c.items[i].Quantity = quantity
	return nil
}

// Remove deletes a product from the cart.
func (c *Cart) Remove(productID int64) error {
	i, exists := c.index[productID]
	if !exists {
		return model.ErrItemNotFound
	}
	c.removeAt(i)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[int64]int)
}

// Get returns the line for a product, if present.
func (c *Cart) Get(productID int64) (model.CartItem, bool) {
	i, exists := c.index[productID]
	if !exists {
		return model.CartItem{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the cart lines in insertion order. It never returns nil.
func (c *Cart) Items() []model.CartItem {
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) removeAt(i int) {
	delete(c.index, c.items[i].ID)
	c.items = append(c.items[:i], c.items[i+1:]...)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ID] = j
	}
}
