package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/reganthompson23/wholesaleportal/modules/catalog"
)

// fakeCatalog implements catalog.CatalogPort over a fixed product map.
type fakeCatalog struct {
	products map[string]*catalog.ProductResponse
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*catalog.ProductResponse, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	return product, nil
}

func TestPriceEntries(t *testing.T) {
	port := &fakeCatalog{products: map[string]*catalog.ProductResponse{
		"prod-a": {ID: "prod-a", Title: "Widget A", SKU: "WID-A", UnitPrice: 29.99},
		"prod-b": {ID: "prod-b", Title: "Widget B", SKU: "WID-B", UnitPrice: 39.99},
	}}

	t.Run("subtotal over priced lines", func(t *testing.T) {
		entries, subtotal := priceEntries(context.Background(), port, map[string]int{
			"prod-a": 2,
			"prod-b": 1,
		})

		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		// Two at 29.99 plus one at 39.99 comes to exactly 99.97.
		if subtotal != 99.97 {
			t.Errorf("subtotal = %v, want 99.97", subtotal)
		}
		// Entries are sorted by product ID for stable output.
		if entries[0].ProductID != "prod-a" || entries[1].ProductID != "prod-b" {
			t.Errorf("entry order = %s, %s", entries[0].ProductID, entries[1].ProductID)
		}
		if entries[0].Subtotal != 59.98 {
			t.Errorf("line subtotal = %v, want 59.98", entries[0].Subtotal)
		}
	})

	t.Run("missing product flagged and excluded", func(t *testing.T) {
		entries, subtotal := priceEntries(context.Background(), port, map[string]int{
			"prod-a":  1,
			"deleted": 4,
		})

		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		var missing *Entry
		for i := range entries {
			if entries[i].ProductID == "deleted" {
				missing = &entries[i]
			}
		}
		if missing == nil {
			t.Fatal("missing entry not present")
		}
		if !missing.Missing {
			t.Error("expected entry flagged Missing")
		}
		if missing.Title != "Unknown Product" {
			t.Errorf("missing title = %q, want Unknown Product", missing.Title)
		}
		if subtotal != 29.99 {
			t.Errorf("subtotal = %v, want 29.99 excluding the missing line", subtotal)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		entries, subtotal := priceEntries(context.Background(), port, map[string]int{})
		if len(entries) != 0 || subtotal != 0 {
			t.Errorf("entries = %v, subtotal = %v, want empty and zero", entries, subtotal)
		}
	})

	t.Run("zero quantity lines skipped", func(t *testing.T) {
		entries, _ := priceEntries(context.Background(), port, map[string]int{"prod-a": 0})
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{99.97000000000001, 99.97},
		{0.1 + 0.2, 0.3},
		{10, 10},
		{2.005, 2.0}, // 2.005 is stored below the midpoint in binary
	}

	for _, tt := range tests {
		if got := roundCents(tt.in); got != tt.want {
			t.Errorf("roundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
