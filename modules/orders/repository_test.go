package orders

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&Order{}, &OrderItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestOrder(customerID string, items ...OrderItem) *Order {
	orderID := uuid.New().String()
	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].OrderID = orderID
	}
	return &Order{
		ID:            orderID,
		CustomerID:    customerID,
		Status:        StatusNew,
		PaymentStatus: PaymentUnpaid,
		Total:         Subtotal(items),
		Items:         items,
	}
}

func TestRepository_Create_SequentialOrderNumbers(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for want := 1; want <= 3; want++ {
		order := newTestOrder("cust-1", OrderItem{ProductID: "p", ProductTitle: "P", Quantity: 1, UnitPrice: 10})
		if err := repo.Create(order); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if order.OrderNumber != want {
			t.Errorf("order number = %d, want %d", order.OrderNumber, want)
		}
	}
}

func TestRepository_Create_PersistsItems(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	order := newTestOrder("cust-1",
		OrderItem{ProductID: "p1", ProductTitle: "Widget A", Quantity: 2, UnitPrice: 29.99},
		OrderItem{ProductID: "p2", ProductTitle: "Widget B", Quantity: 1, UnitPrice: 39.99},
	)
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(order.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(found.Items) != 2 {
		t.Fatalf("found %d items, want 2", len(found.Items))
	}
	if found.Total != 99.97 {
		t.Errorf("total = %v, want 99.97", found.Total)
	}
}

func TestRepository_StatusAxesAreIndependent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	order := newTestOrder("cust-1", OrderItem{ProductID: "p", ProductTitle: "P", Quantity: 1, UnitPrice: 10})
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.SetStatus(order.ID, StatusDispatched); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	found, _ := repo.FindByID(order.ID)
	if found.Status != StatusDispatched {
		t.Errorf("status = %q, want %q", found.Status, StatusDispatched)
	}
	if found.PaymentStatus != PaymentUnpaid {
		t.Errorf("payment status moved to %q when only fulfillment changed", found.PaymentStatus)
	}

	if err := repo.SetPaymentStatus(order.ID, PaymentPaid); err != nil {
		t.Fatalf("SetPaymentStatus() error = %v", err)
	}
	found, _ = repo.FindByID(order.ID)
	if found.Status != StatusDispatched || found.PaymentStatus != PaymentPaid {
		t.Errorf("axes = %q/%q, want dispatched/paid", found.Status, found.PaymentStatus)
	}
}

func TestRepository_SetShippingCost_RefreshesTotal(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	order := newTestOrder("cust-1",
		OrderItem{ProductID: "p1", ProductTitle: "Widget A", Quantity: 2, UnitPrice: 29.99},
		OrderItem{ProductID: "p2", ProductTitle: "Widget B", Quantity: 1, UnitPrice: 39.99},
	)
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.SetShippingCost(order.ID, 5.00); err != nil {
		t.Fatalf("SetShippingCost() error = %v", err)
	}

	found, _ := repo.FindByID(order.ID)
	if found.ShippingCost != 5.00 {
		t.Errorf("shipping cost = %v, want 5.00", found.ShippingCost)
	}
	if found.Total != 104.97 {
		t.Errorf("total = %v, want 104.97", found.Total)
	}
}

func TestRepository_ItemMutations(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	order := newTestOrder("cust-1", OrderItem{ProductID: "p1", ProductTitle: "Widget", Quantity: 1, UnitPrice: 10})
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	itemID := order.Items[0].ID

	t.Run("update quantity", func(t *testing.T) {
		qty := 3
		if err := repo.UpdateItem(itemID, &qty, nil); err != nil {
			t.Fatalf("UpdateItem() error = %v", err)
		}
		found, _ := repo.FindByID(order.ID)
		if found.Items[0].Quantity != 3 {
			t.Errorf("quantity = %d, want 3", found.Items[0].Quantity)
		}
		if found.Total != 30 {
			t.Errorf("total = %v, want 30", found.Total)
		}
	})

	t.Run("update price snapshot", func(t *testing.T) {
		price := 12.50
		if err := repo.UpdateItem(itemID, nil, &price); err != nil {
			t.Fatalf("UpdateItem() error = %v", err)
		}
		found, _ := repo.FindByID(order.ID)
		if found.Items[0].UnitPrice != 12.50 {
			t.Errorf("unit price = %v, want 12.50", found.Items[0].UnitPrice)
		}
		if found.Total != 37.50 {
			t.Errorf("total = %v, want 37.50", found.Total)
		}
	})

	t.Run("add item", func(t *testing.T) {
		err := repo.AddItem(&OrderItem{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			ProductID:    "p2",
			ProductTitle: "Extra",
			Quantity:     2,
			UnitPrice:    5,
		})
		if err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		found, _ := repo.FindByID(order.ID)
		if len(found.Items) != 2 {
			t.Fatalf("found %d items, want 2", len(found.Items))
		}
		if found.Total != 47.50 {
			t.Errorf("total = %v, want 47.50", found.Total)
		}
	})

	t.Run("remove item", func(t *testing.T) {
		if err := repo.RemoveItem(itemID); err != nil {
			t.Fatalf("RemoveItem() error = %v", err)
		}
		found, _ := repo.FindByID(order.ID)
		if len(found.Items) != 1 {
			t.Fatalf("found %d items, want 1", len(found.Items))
		}
		if found.Total != 10 {
			t.Errorf("total = %v, want 10", found.Total)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		qty := 1
		if err := repo.UpdateItem(uuid.New().String(), &qty, nil); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("UpdateItem() error = %v, want ErrItemNotFound", err)
		}
		if err := repo.RemoveItem(uuid.New().String()); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("RemoveItem() error = %v, want ErrItemNotFound", err)
		}
	})

	t.Run("add to unknown order", func(t *testing.T) {
		err := repo.AddItem(&OrderItem{ID: uuid.New().String(), OrderID: uuid.New().String(), ProductID: "p"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("AddItem() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepository_SoftDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	order := newTestOrder("cust-1", OrderItem{ProductID: "p", ProductTitle: "P", Quantity: 1, UnitPrice: 10})
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	keep := newTestOrder("cust-1", OrderItem{ProductID: "p", ProductTitle: "P", Quantity: 1, UnitPrice: 10})
	if err := repo.Create(keep); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.SoftDelete(order.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	t.Run("hidden from fetch and listings", func(t *testing.T) {
		if _, err := repo.FindByID(order.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("FindByID() error = %v, want ErrNotFound", err)
		}
		byCustomer, err := repo.FindByCustomer("cust-1")
		if err != nil {
			t.Fatalf("FindByCustomer() error = %v", err)
		}
		if len(byCustomer) != 1 || byCustomer[0].ID != keep.ID {
			t.Errorf("FindByCustomer() returned %d orders, want just the surviving one", len(byCustomer))
		}
		all, err := repo.FindAll(ListFilter{})
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(all) != 1 {
			t.Errorf("FindAll() returned %d orders, want 1", len(all))
		}
	})

	t.Run("row survives for direct fetch", func(t *testing.T) {
		found, err := repo.FindByIDAny(order.ID)
		if err != nil {
			t.Fatalf("FindByIDAny() error = %v", err)
		}
		if !found.IsDeleted {
			t.Error("expected IsDeleted set")
		}
		if len(found.Items) != 1 {
			t.Errorf("items gone after soft delete: %d", len(found.Items))
		}
	})

	t.Run("mutations rejected on deleted order", func(t *testing.T) {
		if err := repo.SetStatus(order.ID, StatusInvoiced); !errors.Is(err, ErrNotFound) {
			t.Errorf("SetStatus() error = %v, want ErrNotFound", err)
		}
		if err := repo.SoftDelete(order.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("SoftDelete() twice error = %v, want ErrNotFound", err)
		}
	})

	t.Run("order numbers keep advancing", func(t *testing.T) {
		next := newTestOrder("cust-2", OrderItem{ProductID: "p", ProductTitle: "P", Quantity: 1, UnitPrice: 10})
		if err := repo.Create(next); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		// The deleted order's number stays burned.
		if next.OrderNumber != 3 {
			t.Errorf("order number = %d, want 3", next.OrderNumber)
		}
	})
}

func TestRepository_FindAll_Filters(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	paid := newTestOrder("cust-1", OrderItem{ProductID: "p", ProductTitle: "P", Quantity: 1, UnitPrice: 10})
	unpaid := newTestOrder("cust-2", OrderItem{ProductID: "p", ProductTitle: "P", Quantity: 1, UnitPrice: 10})
	for _, o := range []*Order{paid, unpaid} {
		if err := repo.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.SetPaymentStatus(paid.ID, PaymentPaid); err != nil {
		t.Fatalf("SetPaymentStatus() error = %v", err)
	}
	if err := repo.SetStatus(paid.ID, StatusInvoiced); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   int
	}{
		{"no filter", ListFilter{}, 2},
		{"by payment status", ListFilter{PaymentStatus: PaymentPaid}, 1},
		{"by fulfillment status", ListFilter{Status: StatusNew}, 1},
		{"both axes", ListFilter{Status: StatusInvoiced, PaymentStatus: PaymentPaid}, 1},
		{"no match", ListFilter{Status: StatusDispatched}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindAll(tt.filter)
			if err != nil {
				t.Fatalf("FindAll() error = %v", err)
			}
			if len(found) != tt.want {
				t.Errorf("FindAll() returned %d orders, want %d", len(found), tt.want)
			}
		})
	}
}
