package domain

// ProductSnapshot is an immutable copy of a catalog product taken at fetch
// time. Cart line items hold their own copy so later catalog changes never
// rewrite a cart or a placed order.
type ProductSnapshot struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Category  string   `json:"category"`
	Rating    float64  `json:"rating"`
	Thumbnail string   `json:"thumbnail"`
	Images    []string `json:"images,omitempty"`
}
