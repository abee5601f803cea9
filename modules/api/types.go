package api

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CartItemRequest sets the quantity for one product in the cart.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the shipping form posted at checkout. Cart contents come
// from the cart token, never from the body.
type CheckoutRequest struct {
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
	Notes        string `json:"notes"`
}

// StatusUpdateRequest updates an order's fulfillment status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PaymentStatusUpdateRequest updates an order's payment status.
type PaymentStatusUpdateRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// ShippingCostUpdateRequest updates an order's shipping cost.
type ShippingCostUpdateRequest struct {
	ShippingCost float64 `json:"shipping_cost"`
}

// NotesUpdateRequest updates an order's internal notes.
type NotesUpdateRequest struct {
	InternalNotes string `json:"internal_notes"`
}

// OrderItemUpdateRequest edits an order item.
type OrderItemUpdateRequest struct {
	Quantity  *int     `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// OrderItemAddRequest appends a product to an order.
type OrderItemAddRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ImagePositionRequest moves an image to a new position in the gallery.
type ImagePositionRequest struct {
	Position int `json:"position"`
}
