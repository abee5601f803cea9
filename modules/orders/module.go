package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reganthompson23/wholesaleportal/modules/accounts"
	"github.com/reganthompson23/wholesaleportal/modules/catalog"
)

// OrdersModule provides the order lifecycle services via GORM + SQLite.
type OrdersModule struct {
	db      *gorm.DB
	service *Service
	dbPath  string

	catalogPort  catalog.CatalogPort
	customerPort accounts.CustomerPort
}

// Compile-time interface checks.
var _ mono.Module = (*OrdersModule)(nil)
var _ mono.ServiceProviderModule = (*OrdersModule)(nil)
var _ mono.DependentModule = (*OrdersModule)(nil)
var _ mono.HealthCheckableModule = (*OrdersModule)(nil)

// NewModule creates a new OrdersModule.
func NewModule() *OrdersModule {
	dbPath := os.Getenv("PORTAL_DB_PATH")
	if dbPath == "" {
		dbPath = "portal.db"
	}
	return &OrdersModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *OrdersModule) Name() string {
	return "orders"
}

// Dependencies returns the list of module dependencies.
func (m *OrdersModule) Dependencies() []string {
	return []string{"catalog", "accounts"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *OrdersModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalogPort = catalog.NewCatalogAdapter(container)
	case "accounts":
		m.customerPort = accounts.NewCustomerAdapter(container)
	}
}

// Start initializes the database connection and runs migrations.
func (m *OrdersModule) Start(_ context.Context) error {
	if m.catalogPort == nil {
		return fmt.Errorf("catalog dependency not set")
	}
	if m.customerPort == nil {
		return fmt.Errorf("accounts dependency not set")
	}

	log.Printf("[orders] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&Order{}, &OrderItem{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(NewRepository(m.db), m.catalogPort, m.customerPort)

	log.Println("[orders] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *OrdersModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[orders] Database connection closed")
	return nil
}

// Health performs a health check on the orders module.
func (m *OrdersModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *OrdersModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"checkout", func() error {
			return helper.RegisterTypedRequestReplyService(container, "checkout", json.Unmarshal, json.Marshal, m.handleCheckout)
		}},
		{"list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.handleList)
		}},
		{"admin-list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "admin-list", json.Unmarshal, json.Marshal, m.handleAdminList)
		}},
		{"get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.handleGet)
		}},
		{"set-status", func() error {
			return helper.RegisterTypedRequestReplyService(container, "set-status", json.Unmarshal, json.Marshal, m.handleSetStatus)
		}},
		{"set-payment-status", func() error {
			return helper.RegisterTypedRequestReplyService(container, "set-payment-status", json.Unmarshal, json.Marshal, m.handleSetPaymentStatus)
		}},
		{"set-shipping-cost", func() error {
			return helper.RegisterTypedRequestReplyService(container, "set-shipping-cost", json.Unmarshal, json.Marshal, m.handleSetShippingCost)
		}},
		{"set-notes", func() error {
			return helper.RegisterTypedRequestReplyService(container, "set-notes", json.Unmarshal, json.Marshal, m.handleSetNotes)
		}},
		{"update-item", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update-item", json.Unmarshal, json.Marshal, m.handleUpdateItem)
		}},
		{"add-item", func() error {
			return helper.RegisterTypedRequestReplyService(container, "add-item", json.Unmarshal, json.Marshal, m.handleAddItem)
		}},
		{"remove-item", func() error {
			return helper.RegisterTypedRequestReplyService(container, "remove-item", json.Unmarshal, json.Marshal, m.handleRemoveItem)
		}},
		{"delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[orders] Registered services: services.orders.{checkout,list,admin-list,get,set-status,set-payment-status,set-shipping-cost,set-notes,update-item,add-item,remove-item,delete}")
	return nil
}

// handleCheckout handles the orders.checkout service request.
func (m *OrdersModule) handleCheckout(ctx context.Context, req CheckoutRequest, _ *mono.Msg) (OrderResponse, error) {
	order, err := m.service.Checkout(ctx, req)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}

// handleList handles the orders.list service request (customer view).
func (m *OrdersModule) handleList(_ context.Context, req ListOrdersRequest, _ *mono.Msg) (ListOrdersResponse, error) {
	found, err := m.service.ListForCustomer(req.CustomerID)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	resp := ListOrdersResponse{Orders: make([]OrderResponse, 0, len(found))}
	for _, order := range found {
		resp.Orders = append(resp.Orders, toOrderResponse(order, nil))
	}
	resp.Total = len(resp.Orders)
	return resp, nil
}

// handleAdminList handles the orders.admin-list service request.
func (m *OrdersModule) handleAdminList(ctx context.Context, req AdminListOrdersRequest, _ *mono.Msg) (ListOrdersResponse, error) {
	found, customers, err := m.service.ListForAdmin(ctx, req)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	resp := ListOrdersResponse{Orders: make([]OrderResponse, 0, len(found))}
	for _, order := range found {
		resp.Orders = append(resp.Orders, toOrderResponse(order, customers[order.CustomerID]))
	}
	resp.Total = len(resp.Orders)
	return resp, nil
}

// handleGet handles the orders.get service request.
func (m *OrdersModule) handleGet(_ context.Context, req GetOrderRequest, _ *mono.Msg) (OrderResponse, error) {
	if req.ID == "" {
		return OrderResponse{}, fmt.Errorf("id is required")
	}
	order, err := m.service.Get(req.ID, req.IncludeDeleted)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}

// handleSetStatus handles the orders.set-status service request.
func (m *OrdersModule) handleSetStatus(_ context.Context, req SetStatusRequest, _ *mono.Msg) (OrderResponse, error) {
	order, err := m.service.SetStatus(req.ID, req.Status)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}

// handleSetPaymentStatus handles the orders.set-payment-status service request.
func (m *OrdersModule) handleSetPaymentStatus(_ context.Context, req SetPaymentStatusRequest, _ *mono.Msg) (OrderResponse, error) {
	order, err := m.service.SetPaymentStatus(req.ID, req.PaymentStatus)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}

// handleSetShippingCost handles the orders.set-shipping-cost service request.
func (m *OrdersModule) handleSetShippingCost(_ context.Context, req SetShippingCostRequest, _ *mono.Msg) (OrderResponse, error) {
	order, err := m.service.SetShippingCost(req.ID, req.ShippingCost)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}

// handleSetNotes handles the orders.set-notes service request.
func (m *OrdersModule) handleSetNotes(_ context.Context, req SetNotesRequest, _ *mono.Msg) (OrderResponse, error) {
	order, err := m.service.SetInternalNotes(req.ID, req.InternalNotes)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}

// handleUpdateItem handles the orders.update-item service request.
func (m *OrdersModule) handleUpdateItem(_ context.Context, req UpdateItemRequest, _ *mono.Msg) (OrderResponse, error) {
	if err := m.service.UpdateItem(req); err != nil {
		return OrderResponse{}, err
	}
	return m.reloadByItem(req.ItemID)
}

// handleAddItem handles the orders.add-item service request.
func (m *OrdersModule) handleAddItem(ctx context.Context, req AddItemRequest, _ *mono.Msg) (OrderResponse, error) {
	if err := m.service.AddItem(ctx, req); err != nil {
		return OrderResponse{}, err
	}
	order, err := m.service.Get(req.OrderID, false)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}

// handleRemoveItem handles the orders.remove-item service request.
func (m *OrdersModule) handleRemoveItem(_ context.Context, req RemoveItemRequest, _ *mono.Msg) (AckResponse, error) {
	if err := m.service.RemoveItem(req.ItemID); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}

// handleDelete handles the orders.delete service request (soft delete).
func (m *OrdersModule) handleDelete(_ context.Context, req DeleteOrderRequest, _ *mono.Msg) (DeleteOrderResponse, error) {
	if err := m.service.SoftDelete(req.ID); err != nil {
		return DeleteOrderResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteOrderResponse{Deleted: true, ID: req.ID}, nil
}

// reloadByItem loads the order owning an item, for responses after item
// mutations.
func (m *OrdersModule) reloadByItem(itemID string) (OrderResponse, error) {
	var item OrderItem
	if err := m.db.First(&item, "id = ?", itemID).Error; err != nil {
		return OrderResponse{}, fmt.Errorf("failed to reload order item: %w", err)
	}
	order, err := m.service.Get(item.OrderID, false)
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(order, nil), nil
}
