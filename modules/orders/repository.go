package orders

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an order is not found.
	ErrNotFound = errors.New("order not found")
	// ErrItemNotFound is returned when an order item is not found.
	ErrItemNotFound = errors.New("order item not found")
)

// ListFilter narrows the admin order listing.
type ListFilter struct {
	// Status filters on fulfillment status when non-empty.
	Status string
	// PaymentStatus filters on payment status when non-empty.
	PaymentStatus string
	// BusinessName is a case-insensitive substring match against the
	// owning customer's business name. Matching happens in the service
	// layer because customers live in another module's tables.
	BusinessName string
}

// Repository provides access to order storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new order repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists an order and its items in one transaction and assigns the
// next sequential order number. Either everything lands or nothing does, so
// a failed item insert can never leave an orphaned order row.
func (r *Repository) Create(order *Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		err := tx.Model(&Order{}).
			Select("COALESCE(MAX(order_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return fmt.Errorf("failed to allocate order number: %w", err)
		}
		order.OrderNumber = maxNumber + 1

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a non-deleted order with its items.
func (r *Repository) FindByID(id string) (*Order, error) {
	var order Order
	err := r.db.Preload("Items").
		First(&order, "id = ? AND is_deleted = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindByIDAny retrieves an order regardless of its deleted flag. Used to
// verify soft deletion and by direct admin fetches.
func (r *Repository) FindByIDAny(id string) (*Order, error) {
	var order Order
	err := r.db.Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindByCustomer retrieves a customer's non-deleted orders, newest first.
func (r *Repository) FindByCustomer(customerID string) ([]*Order, error) {
	var orders []*Order
	err := r.db.Preload("Items").
		Where("customer_id = ? AND is_deleted = ?", customerID, false).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	return orders, nil
}

// FindAll retrieves all non-deleted orders, newest first, honoring the
// status filters.
func (r *Repository) FindAll(filter ListFilter) ([]*Order, error) {
	query := r.db.Preload("Items").Where("is_deleted = ?", false)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var orders []*Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	return orders, nil
}

// SetStatus updates the fulfillment status.
func (r *Repository) SetStatus(id, status string) error {
	return r.updateField(id, "status", status)
}

// SetPaymentStatus updates the payment status.
func (r *Repository) SetPaymentStatus(id, status string) error {
	return r.updateField(id, "payment_status", status)
}

// SetInternalNotes updates the admin-only notes.
func (r *Repository) SetInternalNotes(id, notes string) error {
	return r.updateField(id, "internal_notes", notes)
}

// SetShippingCost updates the shipping cost and refreshes the cached total
// in the same transaction.
func (r *Repository) SetShippingCost(id string, cost float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Order{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("shipping_cost", cost)
		if err := result.Error; err != nil {
			return fmt.Errorf("failed to update shipping cost: %w", err)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return refreshTotal(tx, id)
	})
}

// UpdateItem changes the quantity and/or unit price snapshot of an item and
// refreshes the parent order's cached total.
func (r *Repository) UpdateItem(itemID string, quantity *int, unitPrice *float64) error {
	updates := map[string]any{}
	if quantity != nil {
		updates["quantity"] = *quantity
	}
	if unitPrice != nil {
		updates["unit_price"] = *unitPrice
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var item OrderItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to find order item: %w", err)
		}
		err := tx.Model(&OrderItem{}).Where("id = ?", itemID).Updates(updates).Error
		if err != nil {
			return fmt.Errorf("failed to update order item: %w", err)
		}
		return refreshTotal(tx, item.OrderID)
	})
}

// AddItem appends an item to an order and refreshes the cached total.
func (r *Repository) AddItem(item *OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Order{}).
			Where("id = ? AND is_deleted = ?", item.OrderID, false).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
		return refreshTotal(tx, item.OrderID)
	})
}

// RemoveItem deletes an item and refreshes the parent order's cached total.
func (r *Repository) RemoveItem(itemID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item OrderItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to find order item: %w", err)
		}
		if err := tx.Delete(&OrderItem{}, "id = ?", itemID).Error; err != nil {
			return fmt.Errorf("failed to delete order item: %w", err)
		}
		return refreshTotal(tx, item.OrderID)
	})
}

// SoftDelete hides an order from every listing with a single atomic update.
// The row itself stays in place and remains fetchable via FindByIDAny.
func (r *Repository) SoftDelete(id string) error {
	result := r.db.Model(&Order{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to soft delete order: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) updateField(id, column string, value any) error {
	result := r.db.Model(&Order{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update(column, value)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update order %s: %w", strings.ReplaceAll(column, "_", " "), err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// refreshTotal recomputes the cached total from the live items and shipping
// cost. Must run inside the mutating transaction.
func refreshTotal(tx *gorm.DB, orderID string) error {
	var items []OrderItem
	if err := tx.Find(&items, "order_id = ?", orderID).Error; err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	var order Order
	if err := tx.Select("shipping_cost").First(&order, "id = ?", orderID).Error; err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}

	total := GrandTotal(items, order.ShippingCost)
	if err := tx.Model(&Order{}).Where("id = ?", orderID).Update("total", total).Error; err != nil {
		return fmt.Errorf("failed to refresh order total: %w", err)
	}
	return nil
}

// ItemSubtotal is the line total of an order item, rounded to cents.
func ItemSubtotal(item OrderItem) float64 {
	return roundCents(item.UnitPrice * float64(item.Quantity))
}

// GrandTotal is the displayed order total: the sum of the item subtotals
// plus shipping, rounded to cents.
func GrandTotal(items []OrderItem, shippingCost float64) float64 {
	subtotal := 0.0
	for _, item := range items {
		subtotal += ItemSubtotal(item)
	}
	return roundCents(subtotal + shippingCost)
}

// Subtotal is the pre-shipping total of a set of items.
func Subtotal(items []OrderItem) float64 {
	subtotal := 0.0
	for _, item := range items {
		subtotal += ItemSubtotal(item)
	}
	return roundCents(subtotal)
}

// roundCents rounds a currency amount to whole cents.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
