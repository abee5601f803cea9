package accounts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CustomerPort defines the interface other modules use to read customers.
// The orders module annotates admin listings through it.
type CustomerPort interface {
	GetCustomer(ctx context.Context, id string) (*CustomerResponse, error)
}

// CustomerAdapter implements CustomerPort using the service container.
type CustomerAdapter struct {
	container mono.ServiceContainer
}

// NewCustomerAdapter creates a new CustomerAdapter.
func NewCustomerAdapter(container mono.ServiceContainer) *CustomerAdapter {
	return &CustomerAdapter{
		container: container,
	}
}

// GetCustomer retrieves a customer by ID.
func (a *CustomerAdapter) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	req := GetCustomerRequest{ID: id}
	var resp CustomerResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("accounts get request failed: %w", err)
	}

	return &resp, nil
}
