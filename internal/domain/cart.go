package domain

// LineItem is one product entry in a cart. Quantity is always >= 1; a line
// whose quantity would drop to zero is removed instead of kept at zero.
type LineItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is an insertion-ordered sequence of line items with at most one line
// per product id.
type Cart []LineItem

// Total sums price times quantity over all lines. Missing prices or
// quantities count as zero rather than failing.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c {
		if item.Product.Price <= 0 || item.Quantity <= 0 {
			continue
		}
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Find returns the index of the line item for the given product id, or -1.
func (c Cart) Find(productID int) int {
	for i, item := range c {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}
