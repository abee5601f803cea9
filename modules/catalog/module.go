package catalog

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
)

// CatalogModule provides product catalog services via GORM + SQLite.
type CatalogModule struct {
	db     *gorm.DB
	repo   *Repository
	dbPath string
}

// Compile-time interface checks.
var _ mono.Module = (*CatalogModule)(nil)
var _ mono.ServiceProviderModule = (*CatalogModule)(nil)
var _ mono.HealthCheckableModule = (*CatalogModule)(nil)

// NewModule creates a new CatalogModule.
func NewModule() *CatalogModule {
	dbPath := os.Getenv("PORTAL_DB_PATH")
	if dbPath == "" {
		dbPath = "portal.db"
	}
	return &CatalogModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *CatalogModule) Name() string {
	return "catalog"
}

// Start initializes the database connection and runs migrations.
func (m *CatalogModule) Start(_ context.Context) error {
	log.Printf("[catalog] Connecting to SQLite database: %s", m.dbPath)

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

	if err := m.db.AutoMigrate(&Product{}, &ProductImage{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.repo = NewRepository(m.db)

	log.Println("[catalog] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *CatalogModule) Stop(_ context.Context) error {
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

	log.Println("[catalog] Database connection closed")
	return nil
}

// Health performs a health check on the catalog module.
func (m *CatalogModule) Health(ctx context.Context) mono.HealthStatus {
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
func (m *CatalogModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create", json.Unmarshal, json.Marshal, m.createProduct)
		}},
		{"get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.getProduct)
		}},
		{"list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.listProducts)
		}},
		{"search", func() error {
			return helper.RegisterTypedRequestReplyService(container, "search", json.Unmarshal, json.Marshal, m.searchProducts)
		}},
		{"update", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update", json.Unmarshal, json.Marshal, m.updateProduct)
		}},
		{"set-availability", func() error {
			return helper.RegisterTypedRequestReplyService(container, "set-availability", json.Unmarshal, json.Marshal, m.setAvailability)
		}},
		{"delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.deleteProduct)
		}},
		{"add-image", func() error {
			return helper.RegisterTypedRequestReplyService(container, "add-image", json.Unmarshal, json.Marshal, m.addImage)
		}},
		{"remove-image", func() error {
			return helper.RegisterTypedRequestReplyService(container, "remove-image", json.Unmarshal, json.Marshal, m.removeImage)
		}},
		{"reorder-image", func() error {
			return helper.RegisterTypedRequestReplyService(container, "reorder-image", json.Unmarshal, json.Marshal, m.reorderImage)
		}},
		{"list-images", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list-images", json.Unmarshal, json.Marshal, m.listImages)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[catalog] Registered services: services.catalog.{create,get,list,search,update,set-availability,delete,add-image,remove-image,reorder-image,list-images}")
	return nil
}
