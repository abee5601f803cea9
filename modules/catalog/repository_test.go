package catalog

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

	if err := db.AutoMigrate(&Product{}, &ProductImage{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestProduct(title, sku string, price float64, available bool) *Product {
	return &Product{
		ID:          uuid.New().String(),
		Title:       title,
		SKU:         sku,
		UnitPrice:   price,
		StockStatus: StockInStock,
		IsAvailable: available,
	}
}

func TestRepository_CreateAndFindByID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	product := newTestProduct("Ceramic Mug", "MUG-001", 12.50, true)
	if err := repo.Create(product); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "Ceramic Mug" {
		t.Errorf("title = %q, want Ceramic Mug", found.Title)
	}
	if found.UnitPrice != 12.50 {
		t.Errorf("unit price = %v, want 12.50", found.UnitPrice)
	}
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	if _, err := repo.FindByID(uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestRepository_FindAvailable(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	visible := newTestProduct("Visible", "VIS-001", 10, true)
	hidden := newTestProduct("Hidden", "HID-001", 10, false)
	for _, p := range []*Product{visible, hidden} {
		if err := repo.Create(p); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("FindAll() returned %d products, want 2", len(all))
	}

	available, err := repo.FindAvailable()
	if err != nil {
		t.Fatalf("FindAvailable() error = %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("FindAvailable() returned %d products, want 1", len(available))
	}
	if available[0].ID != visible.ID {
		t.Errorf("FindAvailable() returned %q, want the visible product", available[0].Title)
	}
}

func TestRepository_Update(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	product := newTestProduct("Old Title", "SKU-1", 10, true)
	if err := repo.Create(product); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	product.Title = "New Title"
	product.UnitPrice = 0
	product.IsAvailable = false
	if err := repo.Update(product); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "New Title" {
		t.Errorf("title = %q, want New Title", found.Title)
	}
	// Zero values must land too; map updates, not struct updates.
	if found.UnitPrice != 0 {
		t.Errorf("unit price = %v, want 0", found.UnitPrice)
	}
	if found.IsAvailable {
		t.Error("expected product hidden after update")
	}
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	product := newTestProduct("Doomed", "DEL-001", 5, true)
	if err := repo.Create(product); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AddImage(&ProductImage{ID: uuid.New().String(), ProductID: product.ID, ObjectName: "x.jpg"}); err != nil {
		t.Fatalf("AddImage() error = %v", err)
	}

	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.FindByID(product.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrNotFound", err)
	}

	// Soft delete: the row stays behind the deleted_at filter.
	var count int64
	if err := db.Unscoped().Model(&Product{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
		t.Fatalf("unscoped count error = %v", err)
	}
	if count != 1 {
		t.Errorf("unscoped count = %d, want 1", count)
	}

	images, err := repo.FindImages(product.ID)
	if err != nil {
		t.Fatalf("FindImages() error = %v", err)
	}
	if len(images) != 0 {
		t.Errorf("expected image rows removed, found %d", len(images))
	}

	if err := repo.Delete(product.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestRepository_ImageOrdering(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	product := newTestProduct("Gallery", "GAL-001", 20, true)
	if err := repo.Create(product); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ids := make([]string, 4)
	for i := range ids {
		ids[i] = uuid.New().String()
		image := &ProductImage{ID: ids[i], ProductID: product.ID, ObjectName: ids[i] + ".jpg"}
		if err := repo.AddImage(image); err != nil {
			t.Fatalf("AddImage() error = %v", err)
		}
		if image.DisplayOrder != i {
			t.Errorf("image %d display order = %d, want %d", i, image.DisplayOrder, i)
		}
	}

	assertOrder := func(t *testing.T, want []string) {
		t.Helper()
		images, err := repo.FindImages(product.ID)
		if err != nil {
			t.Fatalf("FindImages() error = %v", err)
		}
		if len(images) != len(want) {
			t.Fatalf("FindImages() returned %d images, want %d", len(images), len(want))
		}
		for i, image := range images {
			if image.ID != want[i] {
				t.Errorf("position %d = %s, want %s", i, image.ID, want[i])
			}
			if image.DisplayOrder != i {
				t.Errorf("position %d display order = %d, want %d", i, image.DisplayOrder, i)
			}
		}
	}

	t.Run("remove closes the gap", func(t *testing.T) {
		removed, err := repo.RemoveImage(ids[1])
		if err != nil {
			t.Fatalf("RemoveImage() error = %v", err)
		}
		if removed.ObjectName != ids[1]+".jpg" {
			t.Errorf("removed object name = %q, want %q", removed.ObjectName, ids[1]+".jpg")
		}
		assertOrder(t, []string{ids[0], ids[2], ids[3]})
	})

	t.Run("move to front", func(t *testing.T) {
		if err := repo.ReorderImage(ids[3], 0); err != nil {
			t.Fatalf("ReorderImage() error = %v", err)
		}
		assertOrder(t, []string{ids[3], ids[0], ids[2]})
	})

	t.Run("position clamped to end", func(t *testing.T) {
		if err := repo.ReorderImage(ids[3], 99); err != nil {
			t.Fatalf("ReorderImage() error = %v", err)
		}
		assertOrder(t, []string{ids[0], ids[2], ids[3]})
	})

	t.Run("unknown image", func(t *testing.T) {
		if err := repo.ReorderImage(uuid.New().String(), 0); !errors.Is(err, ErrImageNotFound) {
			t.Errorf("ReorderImage() error = %v, want ErrImageNotFound", err)
		}
		if _, err := repo.RemoveImage(uuid.New().String()); !errors.Is(err, ErrImageNotFound) {
			t.Errorf("RemoveImage() error = %v, want ErrImageNotFound", err)
		}
	})
}
