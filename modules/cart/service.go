package cart

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-monolith/mono"

	"github.com/reganthompson23/wholesaleportal/modules/catalog"
)

// newCart handles the cart.new service request.
func (m *CartModule) newCart(_ context.Context, _ NewCartRequest, _ *mono.Msg) (NewCartResponse, error) {
	return NewCartResponse{Token: m.newToken()}, nil
}

// setQuantity handles the cart.set-quantity service request. Quantities are
// clamped to >= 0; zero removes the entry.
func (m *CartModule) setQuantity(ctx context.Context, req SetQuantityRequest, _ *mono.Msg) (AckResponse, error) {
	if req.Token == "" {
		return AckResponse{}, fmt.Errorf("cart token is required")
	}
	if req.ProductID == "" {
		return AckResponse{}, fmt.Errorf("product id is required")
	}

	qty := req.Quantity
	if qty < 0 {
		qty = 0
	}
	if err := m.store.SetQuantity(ctx, req.Token, req.ProductID, qty); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}

// removeItem handles the cart.remove service request.
func (m *CartModule) removeItem(ctx context.Context, req RemoveRequest, _ *mono.Msg) (AckResponse, error) {
	if req.Token == "" {
		return AckResponse{}, fmt.Errorf("cart token is required")
	}
	if req.ProductID == "" {
		return AckResponse{}, fmt.Errorf("product id is required")
	}

	if err := m.store.Remove(ctx, req.Token, req.ProductID); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}

// clearCart handles the cart.clear service request.
func (m *CartModule) clearCart(ctx context.Context, req ClearRequest, _ *mono.Msg) (AckResponse, error) {
	if req.Token == "" {
		return AckResponse{}, fmt.Errorf("cart token is required")
	}

	if err := m.store.Clear(ctx, req.Token); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}

// getCart handles the cart.get service request. Entries are priced from the
// live catalog; a product that disappeared since it was added is flagged and
// excluded from the subtotal.
func (m *CartModule) getCart(ctx context.Context, req GetRequest, _ *mono.Msg) (GetResponse, error) {
	if req.Token == "" {
		return GetResponse{}, fmt.Errorf("cart token is required")
	}

	contents, err := m.store.Get(ctx, req.Token)
	if err != nil {
		return GetResponse{}, err
	}

	entries, subtotal := priceEntries(ctx, m.catalog, contents)
	return GetResponse{
		Token:    req.Token,
		Entries:  entries,
		Subtotal: subtotal,
	}, nil
}

// priceEntries resolves cart contents against the catalog and computes the
// pre-shipping subtotal over entries with quantity > 0.
func priceEntries(ctx context.Context, port catalog.CatalogPort, contents map[string]int) ([]Entry, float64) {
	productIDs := make([]string, 0, len(contents))
	for id := range contents {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	entries := make([]Entry, 0, len(productIDs))
	subtotal := 0.0
	for _, id := range productIDs {
		qty := contents[id]
		if qty <= 0 {
			continue
		}

		product, err := port.GetProduct(ctx, id)
		if err != nil {
			entries = append(entries, Entry{
				ProductID: id,
				Title:     "Unknown Product",
				Quantity:  qty,
				Missing:   true,
			})
			continue
		}

		lineTotal := roundCents(product.UnitPrice * float64(qty))
		entries = append(entries, Entry{
			ProductID: id,
			Title:     product.Title,
			SKU:       product.SKU,
			UnitPrice: product.UnitPrice,
			Quantity:  qty,
			Subtotal:  lineTotal,
		})
		subtotal += lineTotal
	}
	return entries, roundCents(subtotal)
}

// roundCents rounds a currency amount to whole cents.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
