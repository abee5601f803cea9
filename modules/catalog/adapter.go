package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CatalogPort defines the interface other modules use to read the catalog.
// Cart pricing and checkout validation go through this port so they never
// trust client-supplied product data.
type CatalogPort interface {
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
}

// CatalogAdapter implements CatalogPort using the service container.
type CatalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new CatalogAdapter.
func NewCatalogAdapter(container mono.ServiceContainer) *CatalogAdapter {
	return &CatalogAdapter{
		container: container,
	}
}

// GetProduct retrieves a product by ID.
func (a *CatalogAdapter) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	req := GetProductRequest{ID: id}
	var resp ProductResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("catalog get request failed: %w", err)
	}

	return &resp, nil
}
