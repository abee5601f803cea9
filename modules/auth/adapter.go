package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface other modules use for identity operations.
// The API module validates tokens through it; the accounts module provisions
// and removes identities through it.
type AuthPort interface {
	ValidateToken(ctx context.Context, token string) (*ValidateTokenResponse, error)
	CreateIdentity(ctx context.Context, req CreateIdentityRequest) (*CreateIdentityResponse, error)
	DeleteIdentity(ctx context.Context, userID string) error
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// ValidateToken validates an access token.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*ValidateTokenResponse, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"validate-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("auth validate-token request failed: %w", err)
	}

	return &resp, nil
}

// CreateIdentity provisions a login identity with a one-time password.
func (a *AuthAdapter) CreateIdentity(ctx context.Context, req CreateIdentityRequest) (*CreateIdentityResponse, error) {
	var resp CreateIdentityResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-identity",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("auth create-identity request failed: %w", err)
	}

	return &resp, nil
}

// DeleteIdentity removes a login identity.
func (a *AuthAdapter) DeleteIdentity(ctx context.Context, userID string) error {
	req := DeleteIdentityRequest{UserID: userID}
	var resp DeleteIdentityResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-identity",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("auth delete-identity request failed: %w", err)
	}

	return nil
}
