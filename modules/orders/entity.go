package orders

import "time"

// Fulfillment status values. Admin-driven, no enforced transition order.
const (
	StatusNew        = "new"
	StatusInvoiced   = "invoiced"
	StatusDispatched = "dispatched"
)

// Payment status values. An independent axis from fulfillment.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Order is a placed wholesale order. Orders are never hard-deleted; admin
// deletion sets IsDeleted, which hides the row from every listing.
//
// Total is a denormalized cache of the item subtotal plus shipping. It is
// refreshed inside the same transaction as every item or shipping mutation;
// reads still recompute it from the live items.
type Order struct {
	ID              string      `gorm:"primarykey;size:36" json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	OrderNumber     int         `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerID      string      `gorm:"size:36;not null;index" json:"customer_id"`
	Status          string      `gorm:"size:20;not null;default:new" json:"status"`
	PaymentStatus   string      `gorm:"size:20;not null;default:unpaid" json:"payment_status"`
	Total           float64     `gorm:"not null" json:"total"`
	ShippingCost    float64     `gorm:"not null;default:0" json:"shipping_cost"`
	ShippingAddress string      `gorm:"size:2000" json:"shipping_address"`
	InternalNotes   string      `gorm:"size:2000" json:"internal_notes"`
	IsDeleted       bool        `gorm:"not null;default:false;index" json:"is_deleted"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName returns the table name for Order model.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Title and unit price are snapshots
// taken at checkout (or when an admin adds the item) and stay decoupled from
// the live product afterwards.
type OrderItem struct {
	ID           string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	OrderID      string    `gorm:"size:36;not null;index" json:"order_id"`
	ProductID    string    `gorm:"size:36;not null" json:"product_id"`
	ProductTitle string    `gorm:"size:200;not null" json:"product_title"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	UnitPrice    float64   `gorm:"not null" json:"unit_price"`
}

// TableName returns the table name for OrderItem model.
func (OrderItem) TableName() string {
	return "order_items"
}

// ValidStatus reports whether s is a known fulfillment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInvoiced, StatusDispatched:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentPaid:
		return true
	}
	return false
}
