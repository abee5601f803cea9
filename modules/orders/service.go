package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/reganthompson23/wholesaleportal/modules/accounts"
	"github.com/reganthompson23/wholesaleportal/modules/catalog"
)

var (
	// ErrNotAuthenticated is returned when checkout is attempted without a
	// customer identity. Nothing is written in that case.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrEmptyCart is returned when checkout is attempted with no cart
	// entry above zero quantity. Nothing is written in that case.
	ErrEmptyCart = errors.New("cart is empty")
)

// Service implements the order lifecycle: checkout, listings, and the admin
// mutations.
type Service struct {
	repo      *Repository
	catalog   catalog.CatalogPort
	customers accounts.CustomerPort
}

// NewService creates a new order service.
func NewService(repo *Repository, catalogPort catalog.CatalogPort, customerPort accounts.CustomerPort) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalogPort,
		customers: customerPort,
	}
}

// Checkout converts cart contents plus the shipping form into a persisted
// order with one item per distinct product. Products are re-read from the
// catalog so client-supplied prices are never trusted. The initial total is
// the pre-shipping subtotal; shipping stays zero until an admin quotes it.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	if req.CustomerID == "" {
		return nil, ErrNotAuthenticated
	}

	// Merge duplicate product lines and drop empty ones.
	quantities := make(map[string]int)
	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			continue
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}
	if len(productIDs) == 0 {
		return nil, ErrEmptyCart
	}

	orderID := uuid.New().String()
	items := make([]OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", productID, err)
		}
		items = append(items, OrderItem{
			ID:           uuid.New().String(),
			OrderID:      orderID,
			ProductID:    productID,
			ProductTitle: product.Title,
			Quantity:     quantities[productID],
			UnitPrice:    product.UnitPrice,
		})
	}

	order := &Order{
		ID:              orderID,
		CustomerID:      req.CustomerID,
		Status:          StatusNew,
		PaymentStatus:   PaymentUnpaid,
		Total:           Subtotal(items),
		ShippingCost:    0,
		ShippingAddress: formatShippingAddress(req.Shipping),
		InternalNotes:   req.Shipping.Notes,
		Items:           items,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListForCustomer returns a customer's own non-deleted orders.
func (s *Service) ListForCustomer(customerID string) ([]*Order, error) {
	if customerID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.repo.FindByCustomer(customerID)
}

// ListForAdmin returns all non-deleted orders matching the filter, each
// annotated with its customer. The business-name search happens here since
// customers live in another module.
func (s *Service) ListForAdmin(ctx context.Context, req AdminListOrdersRequest) ([]*Order, map[string]*CustomerSummary, error) {
	if req.Status != "" && !ValidStatus(req.Status) {
		return nil, nil, fmt.Errorf("invalid status: %s", req.Status)
	}
	if req.PaymentStatus != "" && !ValidPaymentStatus(req.PaymentStatus) {
		return nil, nil, fmt.Errorf("invalid payment status: %s", req.PaymentStatus)
	}

	found, err := s.repo.FindAll(ListFilter{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		return nil, nil, err
	}

	customers := make(map[string]*CustomerSummary)
	search := strings.ToLower(strings.TrimSpace(req.Search))
	matched := make([]*Order, 0, len(found))
	for _, order := range found {
		summary, ok := customers[order.CustomerID]
		if !ok {
			summary = s.lookupCustomer(ctx, order.CustomerID)
			customers[order.CustomerID] = summary
		}
		if search != "" {
			if summary == nil || !strings.Contains(strings.ToLower(summary.BusinessName), search) {
				continue
			}
		}
		matched = append(matched, order)
	}
	return matched, customers, nil
}

// Get returns one order. IncludeDeleted bypasses the soft-delete filter.
func (s *Service) Get(id string, includeDeleted bool) (*Order, error) {
	if includeDeleted {
		return s.repo.FindByIDAny(id)
	}
	return s.repo.FindByID(id)
}

// SetStatus sets the fulfillment status. Any known status is accepted; the
// two axes are deliberately unguarded.
func (s *Service) SetStatus(id, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if err := s.repo.SetStatus(id, status); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

// SetPaymentStatus sets the payment status independently of fulfillment.
func (s *Service) SetPaymentStatus(id, status string) (*Order, error) {
	if !ValidPaymentStatus(status) {
		return nil, fmt.Errorf("invalid payment status: %s", status)
	}
	if err := s.repo.SetPaymentStatus(id, status); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

// SetShippingCost sets the quoted shipping cost and refreshes the total.
func (s *Service) SetShippingCost(id string, cost float64) (*Order, error) {
	if cost < 0 {
		return nil, fmt.Errorf("shipping cost must be non-negative")
	}
	if err := s.repo.SetShippingCost(id, cost); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

// SetInternalNotes sets the admin-only notes.
func (s *Service) SetInternalNotes(id, notes string) (*Order, error) {
	if err := s.repo.SetInternalNotes(id, notes); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

// UpdateItem edits an item's quantity and/or unit price snapshot.
func (s *Service) UpdateItem(req UpdateItemRequest) error {
	if req.ItemID == "" {
		return fmt.Errorf("item id is required")
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		return fmt.Errorf("unit price must be non-negative")
	}
	return s.repo.UpdateItem(req.ItemID, req.Quantity, req.UnitPrice)
}

// AddItem appends a product to an order, snapshotting its current title and
// price.
func (s *Service) AddItem(ctx context.Context, req AddItemRequest) error {
	if req.OrderID == "" {
		return fmt.Errorf("order id is required")
	}
	if req.ProductID == "" {
		return fmt.Errorf("product id is required")
	}
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return fmt.Errorf("product %s not found: %w", req.ProductID, err)
	}

	return s.repo.AddItem(&OrderItem{
		ID:           uuid.New().String(),
		OrderID:      req.OrderID,
		ProductID:    req.ProductID,
		ProductTitle: product.Title,
		Quantity:     qty,
		UnitPrice:    product.UnitPrice,
	})
}

// RemoveItem removes an item from an order.
func (s *Service) RemoveItem(itemID string) error {
	if itemID == "" {
		return fmt.Errorf("item id is required")
	}
	return s.repo.RemoveItem(itemID)
}

// SoftDelete hides an order from all listings without removing the row.
func (s *Service) SoftDelete(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	return s.repo.SoftDelete(id)
}

func (s *Service) lookupCustomer(ctx context.Context, customerID string) *CustomerSummary {
	if s.customers == nil {
		return nil
	}
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil
	}
	return &CustomerSummary{
		ID:           customer.ID,
		BusinessName: customer.BusinessName,
		ContactName:  customer.ContactName,
		Email:        customer.Email,
		Phone:        customer.Phone,
		Address:      customer.Address,
	}
}

// formatShippingAddress flattens the checkout form into the newline-joined
// text block stored on the order.
func formatShippingAddress(d ShippingDetails) string {
	return strings.Join([]string{
		d.BusinessName,
		d.ContactName,
		d.Email,
		d.Phone,
		d.Address,
		strings.TrimSpace(d.State + " " + d.Postcode),
		d.Country,
	}, "\n")
}

// toOrderResponse converts an Order entity to an OrderResponse. The total is
// recomputed from the live items; the stored column is only a cache.
func toOrderResponse(order *Order, customer *CustomerSummary) OrderResponse {
	items := make([]ItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		title := item.ProductTitle
		if title == "" {
			title = "Unknown Product"
		}
		items = append(items, ItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductTitle: title,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Subtotal:     ItemSubtotal(item),
		})
	}

	return OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Customer:        customer,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		Total:           GrandTotal(order.Items, order.ShippingCost),
		ShippingCost:    order.ShippingCost,
		ShippingAddress: order.ShippingAddress,
		InternalNotes:   order.InternalNotes,
		IsDeleted:       order.IsDeleted,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
