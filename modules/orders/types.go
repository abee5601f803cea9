package orders

import "time"

// ShippingDetails is the checkout form. It is flattened into the order's
// shipping_address text block, newline-separated, not kept as structured
// fields.
type ShippingDetails struct {
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

// CheckoutItem is one cart line handed to checkout. Only the product ID and
// quantity are trusted; title and price are re-read from the catalog.
type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest converts a cart into a persisted order.
type CheckoutRequest struct {
	CustomerID string          `json:"customer_id"`
	Items      []CheckoutItem  `json:"items"`
	Shipping   ShippingDetails `json:"shipping"`
}

// ItemResponse represents an order item in responses.
type ItemResponse struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	ProductTitle string  `json:"product_title"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Subtotal     float64 `json:"subtotal"`
}

// CustomerSummary is the customer block shown on the admin order list.
type CustomerSummary struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// OrderResponse represents an order in responses. Total is recomputed from
// the live items and shipping cost on every read.
type OrderResponse struct {
	ID              string           `json:"id"`
	OrderNumber     int              `json:"order_number"`
	CustomerID      string           `json:"customer_id"`
	Customer        *CustomerSummary `json:"customer,omitempty"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"payment_status"`
	Total           float64          `json:"total"`
	ShippingCost    float64          `json:"shipping_cost"`
	ShippingAddress string           `json:"shipping_address"`
	InternalNotes   string           `json:"internal_notes,omitempty"`
	IsDeleted       bool             `json:"is_deleted,omitempty"`
	Items           []ItemResponse   `json:"items"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ListOrdersRequest lists a customer's own orders.
type ListOrdersRequest struct {
	CustomerID string `json:"customer_id"`
}

// AdminListOrdersRequest lists all orders with optional filters.
type AdminListOrdersRequest struct {
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	// Search is a case-insensitive substring match on the customer
	// business name.
	Search string `json:"search,omitempty"`
}

// ListOrdersResponse is the response containing a list of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// GetOrderRequest fetches one order. IncludeDeleted bypasses the soft-delete
// filter for direct admin fetches.
type GetOrderRequest struct {
	ID             string `json:"id"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// SetStatusRequest updates the fulfillment status.
type SetStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SetPaymentStatusRequest updates the payment status.
type SetPaymentStatusRequest struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"payment_status"`
}

// SetShippingCostRequest updates the shipping cost.
type SetShippingCostRequest struct {
	ID           string  `json:"id"`
	ShippingCost float64 `json:"shipping_cost"`
}

// SetNotesRequest updates the internal notes.
type SetNotesRequest struct {
	ID            string `json:"id"`
	InternalNotes string `json:"internal_notes"`
}

// UpdateItemRequest edits an item's quantity and/or unit price snapshot.
type UpdateItemRequest struct {
	ItemID    string   `json:"item_id"`
	Quantity  *int     `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// AddItemRequest appends a product to an existing order at its current
// catalog price.
type AddItemRequest struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RemoveItemRequest removes an item from an order.
type RemoveItemRequest struct {
	ItemID string `json:"item_id"`
}

// AckResponse acknowledges a mutation that returns no order.
type AckResponse struct {
	OK bool `json:"ok"`
}

// DeleteOrderRequest soft-deletes an order.
type DeleteOrderRequest struct {
	ID string `json:"id"`
}

// DeleteOrderResponse is the response after soft-deleting an order.
type DeleteOrderResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
