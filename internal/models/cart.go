package models

// CartItem is one product line in a cart. At most one line exists per
// product id; Quantity is always >= 1 (a decrement to zero removes the
// line entirely).
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

func (i CartItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// CartSnapshot is an immutable copy of the cart handed to callers,
// with the derived totals recomputed at snapshot time.
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  int64      `json:"subtotal"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name"       validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"min=0"`
	Image     string `json:"image"`
}

// UpdateQuantityRequest adjusts a line by a signed delta. A resulting
// quantity <= 0 removes the line.
type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     int    `json:"delta"      validate:"required"`
}
