package validation

// OrderItem is a single checkout line. The product id is carried as an
// opaque string reference; existence against the catalog is not checked.
type OrderItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"` // must be >= 1
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	Name    string      `json:"name" validate:"required"`
	Email   string      `json:"email" validate:"required,email"`
	Address string      `json:"address" validate:"required"`
	City    string      `json:"city" validate:"required"`
	Country string      `json:"country" validate:"required"`
	Items   []OrderItem `json:"items" validate:"required,min=1,dive"` // at least one item
	Notes   string      `json:"notes,omitempty"`
}

// NewsletterSignupRequest is the payload for POST /api/newsletter.
type NewsletterSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
}
