package accounts

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	"github.com/reganthompson23/wholesaleportal/modules/auth"
)

// Service implements customer account provisioning and management.
type Service struct {
	repo     *Repository
	authPort auth.AuthPort
	eventBus mono.EventBus
}

// NewService creates a new accounts service.
func NewService(repo *Repository, authPort auth.AuthPort, eventBus mono.EventBus) *Service {
	return &Service{
		repo:     repo,
		authPort: authPort,
		eventBus: eventBus,
	}
}

// CreateCustomer provisions a customer: a login identity with a generated
// one-time password, then the customer record. The welcome email is published
// as an event so a mail failure can never fail provisioning.
func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if strings.TrimSpace(req.BusinessName) == "" {
		return nil, fmt.Errorf("business name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}

	identity, err := s.authPort.CreateIdentity(ctx, auth.CreateIdentityRequest{
		Email: email,
		Role:  auth.RoleCustomer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create login identity: %w", err)
	}

	customer := &Customer{
		ID:           uuid.New().String(),
		AuthUserID:   identity.UserID,
		BusinessName: strings.TrimSpace(req.BusinessName),
		ContactName:  strings.TrimSpace(req.ContactName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		State:        strings.TrimSpace(req.State),
		Postcode:     strings.TrimSpace(req.Postcode),
		Country:      strings.TrimSpace(req.Country),
	}

	if err := s.repo.Create(customer); err != nil {
		// Best-effort cleanup so the email is not left claimed by an
		// identity without a customer record.
		if delErr := s.authPort.DeleteIdentity(ctx, identity.UserID); delErr != nil {
			log.Printf("[accounts] Failed to clean up identity %s after customer create error: %v", identity.UserID, delErr)
		}
		return nil, err
	}

	s.publishProvisioned(customer, identity.TempPassword)
	return customer, nil
}

// Get returns a customer by ID.
func (s *Service) Get(id string) (*Customer, error) {
	return s.repo.FindByID(id)
}

// GetByAuthUser returns the customer linked to a login identity.
func (s *Service) GetByAuthUser(authUserID string) (*Customer, error) {
	return s.repo.FindByAuthUserID(authUserID)
}

// List returns all customers, filtered by search when given.
func (s *Service) List(search string) ([]*Customer, error) {
	if strings.TrimSpace(search) != "" {
		return s.repo.Search(search)
	}
	return s.repo.FindAll()
}

// Update applies profile field updates. Email is deliberately immutable since
// it doubles as the login.
func (s *Service) Update(req UpdateCustomerRequest) (*Customer, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	updates := make(map[string]any)
	if req.BusinessName != nil {
		if strings.TrimSpace(*req.BusinessName) == "" {
			return nil, fmt.Errorf("business name cannot be empty")
		}
		updates["business_name"] = strings.TrimSpace(*req.BusinessName)
	}
	if req.ContactName != nil {
		updates["contact_name"] = strings.TrimSpace(*req.ContactName)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.State != nil {
		updates["state"] = strings.TrimSpace(*req.State)
	}
	if req.Postcode != nil {
		updates["postcode"] = strings.TrimSpace(*req.Postcode)
	}
	if req.Country != nil {
		updates["country"] = strings.TrimSpace(*req.Country)
	}

	if err := s.repo.Update(req.ID, updates); err != nil {
		return nil, err
	}
	return s.repo.FindByID(req.ID)
}

// Delete removes a customer and its login identity. Past orders keep their
// customer ID and render without the customer block once it is gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	customer, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	if err := s.authPort.DeleteIdentity(ctx, customer.AuthUserID); err != nil {
		log.Printf("[accounts] Failed to delete identity %s for customer %s: %v", customer.AuthUserID, id, err)
	}
	return nil
}

func (s *Service) publishProvisioned(customer *Customer, tempPassword string) {
	if s.eventBus == nil {
		return
	}
	event := CustomerProvisionedEvent{
		CustomerID:   customer.ID,
		BusinessName: customer.BusinessName,
		ContactName:  customer.ContactName,
		Email:        customer.Email,
		TempPassword: tempPassword,
	}
	if err := CustomerProvisionedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[accounts] Failed to publish CustomerProvisioned event: %v", err)
	}
}

// toCustomerResponse converts a Customer entity to a CustomerResponse.
func toCustomerResponse(customer *Customer) CustomerResponse {
	return CustomerResponse{
		ID:           customer.ID,
		AuthUserID:   customer.AuthUserID,
		BusinessName: customer.BusinessName,
		ContactName:  customer.ContactName,
		Email:        customer.Email,
		Phone:        customer.Phone,
		Address:      customer.Address,
		State:        customer.State,
		Postcode:     customer.Postcode,
		Country:      customer.Country,
		CreatedAt:    customer.CreatedAt,
		UpdatedAt:    customer.UpdatedAt,
	}
}
