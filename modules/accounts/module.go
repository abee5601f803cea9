package accounts

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

	"github.com/reganthompson23/wholesaleportal/modules/auth"
)

// AccountsModule provides customer account services. It depends on the auth
// module for login identities and emits a provisioning event for the mailer.
type AccountsModule struct {
	db       *gorm.DB
	service  *Service
	authPort auth.AuthPort
	eventBus mono.EventBus
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*AccountsModule)(nil)
var _ mono.ServiceProviderModule = (*AccountsModule)(nil)
var _ mono.DependentModule = (*AccountsModule)(nil)
var _ mono.HealthCheckableModule = (*AccountsModule)(nil)
var _ mono.EventBusAwareModule = (*AccountsModule)(nil)
var _ mono.EventEmitterModule = (*AccountsModule)(nil)

// NewModule creates a new AccountsModule.
func NewModule() *AccountsModule {
	dbPath := os.Getenv("PORTAL_DB_PATH")
	if dbPath == "" {
		dbPath = "portal.db"
	}
	return &AccountsModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *AccountsModule) Name() string {
	return "accounts"
}

// Dependencies returns the modules this module depends on.
func (m *AccountsModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives dependency service containers.
func (m *AccountsModule) SetDependencyServiceContainer(dep string, container mono.ServiceContainer) {
	if dep == "auth" {
		m.authPort = auth.NewAuthAdapter(container)
	}
}

// SetEventBus receives the application event bus.
func (m *AccountsModule) SetEventBus(eventBus mono.EventBus) {
	m.eventBus = eventBus
}

// EmitEvents declares the events this module publishes.
func (m *AccountsModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		CustomerProvisionedV1.ToBase(),
	}
}

// Start initializes the database connection and builds the service.
func (m *AccountsModule) Start(_ context.Context) error {
	if m.authPort == nil {
		return fmt.Errorf("auth dependency not set")
	}

	log.Printf("[accounts] Connecting to SQLite database: %s", m.dbPath)

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

	if err := m.db.AutoMigrate(&Customer{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(NewRepository(m.db), m.authPort, m.eventBus)

	log.Println("[accounts] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *AccountsModule) Stop(_ context.Context) error {
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

	log.Println("[accounts] Database connection closed")
	return nil
}

// Health performs a health check on the accounts module.
func (m *AccountsModule) Health(ctx context.Context) mono.HealthStatus {
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
func (m *AccountsModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create", json.Unmarshal, json.Marshal, m.createCustomer)
		}},
		{"get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.getCustomer)
		}},
		{"get-by-auth-user", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-by-auth-user", json.Unmarshal, json.Marshal, m.getByAuthUser)
		}},
		{"list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.listCustomers)
		}},
		{"update", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update", json.Unmarshal, json.Marshal, m.updateCustomer)
		}},
		{"delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.deleteCustomer)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[accounts] Registered services: services.accounts.{create,get,get-by-auth-user,list,update,delete}")
	return nil
}

func (m *AccountsModule) createCustomer(ctx context.Context, req CreateCustomerRequest, _ *mono.Msg) (CustomerResponse, error) {
	customer, err := m.service.CreateCustomer(ctx, req)
	if err != nil {
		return CustomerResponse{}, err
	}
	return toCustomerResponse(customer), nil
}

func (m *AccountsModule) getCustomer(_ context.Context, req GetCustomerRequest, _ *mono.Msg) (CustomerResponse, error) {
	customer, err := m.service.Get(req.ID)
	if err != nil {
		return CustomerResponse{}, err
	}
	return toCustomerResponse(customer), nil
}

func (m *AccountsModule) getByAuthUser(_ context.Context, req GetByAuthUserRequest, _ *mono.Msg) (CustomerResponse, error) {
	customer, err := m.service.GetByAuthUser(req.AuthUserID)
	if err != nil {
		return CustomerResponse{}, err
	}
	return toCustomerResponse(customer), nil
}

func (m *AccountsModule) listCustomers(_ context.Context, req ListCustomersRequest, _ *mono.Msg) (ListCustomersResponse, error) {
	customers, err := m.service.List(req.Search)
	if err != nil {
		return ListCustomersResponse{}, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, toCustomerResponse(customer))
	}
	return ListCustomersResponse{
		Customers: responses,
		Total:     len(responses),
	}, nil
}

func (m *AccountsModule) updateCustomer(_ context.Context, req UpdateCustomerRequest, _ *mono.Msg) (CustomerResponse, error) {
	customer, err := m.service.Update(req)
	if err != nil {
		return CustomerResponse{}, err
	}
	return toCustomerResponse(customer), nil
}

func (m *AccountsModule) deleteCustomer(ctx context.Context, req DeleteCustomerRequest, _ *mono.Msg) (DeleteCustomerResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteCustomerResponse{}, err
	}
	return DeleteCustomerResponse{Deleted: true, ID: req.ID}, nil
}
