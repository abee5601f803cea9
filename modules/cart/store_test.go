package cart

import (
	"context"
	"testing"
)

func TestMemoryStore_SetQuantity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetQuantity(ctx, "tok", "prod-a", 3); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}
	if err := store.SetQuantity(ctx, "tok", "prod-b", 1); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}

	cart, err := store.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cart["prod-a"] != 3 || cart["prod-b"] != 1 {
		t.Errorf("cart = %v, want prod-a:3 prod-b:1", cart)
	}

	t.Run("overwrite is not additive", func(t *testing.T) {
		if err := store.SetQuantity(ctx, "tok", "prod-a", 5); err != nil {
			t.Fatalf("SetQuantity() error = %v", err)
		}
		cart, _ := store.Get(ctx, "tok")
		if cart["prod-a"] != 5 {
			t.Errorf("prod-a = %d, want 5", cart["prod-a"])
		}
	})

	t.Run("zero removes the entry", func(t *testing.T) {
		if err := store.SetQuantity(ctx, "tok", "prod-a", 0); err != nil {
			t.Fatalf("SetQuantity() error = %v", err)
		}
		cart, _ := store.Get(ctx, "tok")
		if _, ok := cart["prod-a"]; ok {
			t.Error("expected prod-a removed at quantity 0")
		}
	})

	t.Run("negative removes the entry", func(t *testing.T) {
		if err := store.SetQuantity(ctx, "tok", "prod-b", -2); err != nil {
			t.Fatalf("SetQuantity() error = %v", err)
		}
		cart, _ := store.Get(ctx, "tok")
		if len(cart) != 0 {
			t.Errorf("cart = %v, want empty", cart)
		}
	})
}

func TestMemoryStore_RemoveAndClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.SetQuantity(ctx, "tok", id, 2); err != nil {
			t.Fatalf("SetQuantity() error = %v", err)
		}
	}

	if err := store.Remove(ctx, "tok", "b"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	cart, _ := store.Get(ctx, "tok")
	if len(cart) != 2 {
		t.Errorf("cart has %d entries after remove, want 2", len(cart))
	}

	// Removing a missing entry is a no-op.
	if err := store.Remove(ctx, "tok", "b"); err != nil {
		t.Errorf("Remove() of missing entry error = %v", err)
	}

	if err := store.Clear(ctx, "tok"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	cart, _ = store.Get(ctx, "tok")
	if len(cart) != 0 {
		t.Errorf("cart = %v after clear, want empty", cart)
	}
}

func TestMemoryStore_TokensAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetQuantity(ctx, "device-1", "prod", 1); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}
	if err := store.SetQuantity(ctx, "device-2", "prod", 7); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}

	first, _ := store.Get(ctx, "device-1")
	second, _ := store.Get(ctx, "device-2")
	if first["prod"] != 1 || second["prod"] != 7 {
		t.Errorf("carts = %v / %v, want isolated quantities 1 and 7", first, second)
	}

	// Get returns a copy, not the live map.
	first["prod"] = 99
	again, _ := store.Get(ctx, "device-1")
	if again["prod"] != 1 {
		t.Errorf("mutating a Get() result leaked into the store: %v", again)
	}
}
