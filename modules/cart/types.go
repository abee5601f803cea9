package cart

// NewCartRequest is the request for minting a cart token.
type NewCartRequest struct{}

// NewCartResponse returns the opaque device token a client stores locally.
type NewCartResponse struct {
	Token string `json:"token"`
}

// SetQuantityRequest is the request for setting a product quantity.
type SetQuantityRequest struct {
	Token     string `json:"token"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RemoveRequest is the request for removing a product from the cart.
type RemoveRequest struct {
	Token     string `json:"token"`
	ProductID string `json:"product_id"`
}

// ClearRequest is the request for emptying the cart.
type ClearRequest struct {
	Token string `json:"token"`
}

// AckResponse acknowledges a cart mutation.
type AckResponse struct {
	OK bool `json:"ok"`
}

// GetRequest is the request for reading the cart.
type GetRequest struct {
	Token string `json:"token"`
}

// Entry is one cart line priced from the live catalog.
type Entry struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	SKU       string  `json:"sku"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	// Missing marks entries whose product no longer exists in the
	// catalog. They are excluded from the cart subtotal.
	Missing bool `json:"missing,omitempty"`
}

// GetResponse is the cart contents with a computed subtotal.
type GetResponse struct {
	Token    string  `json:"token"`
	Entries  []Entry `json:"entries"`
	Subtotal float64 `json:"subtotal"`
}
