package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"

	"github.com/reganthompson23/wholesaleportal/modules/catalog"
)

// CartModule provides the per-device cart store. Carts live in Redis when
// REDIS_ADDR is set, otherwise in process memory.
type CartModule struct {
	store    Store
	catalog  catalog.CatalogPort
	newToken func() string
}

// Compile-time interface checks.
var _ mono.Module = (*CartModule)(nil)
var _ mono.ServiceProviderModule = (*CartModule)(nil)
var _ mono.DependentModule = (*CartModule)(nil)
var _ mono.HealthCheckableModule = (*CartModule)(nil)

// NewModule creates a new CartModule.
func NewModule() *CartModule {
	gen, err := nanoid.Standard(21)
	if err != nil {
		// Standard only fails on invalid length, 21 is valid.
		panic(fmt.Sprintf("cart token generator: %v", err))
	}
	return &CartModule{newToken: gen}
}

// Name returns the module name.
func (m *CartModule) Name() string {
	return "cart"
}

// Dependencies returns the list of module dependencies.
func (m *CartModule) Dependencies() []string {
	return []string{"catalog"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *CartModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "catalog" {
		m.catalog = catalog.NewCatalogAdapter(container)
	}
}

// Start initializes the backing store.
func (m *CartModule) Start(ctx context.Context) error {
	if m.catalog == nil {
		return fmt.Errorf("catalog dependency not set")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("[cart] REDIS_ADDR not set, using in-memory cart store")
		m.store = NewMemoryStore()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	m.store = NewRedisStore(client, "cart:")
	log.Printf("[cart] Module started (redis: %s)", addr)
	return nil
}

// Stop closes the Redis connection if one is open.
func (m *CartModule) Stop(_ context.Context) error {
	if rs, ok := m.store.(*RedisStore); ok {
		if err := rs.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	log.Println("[cart] Module stopped")
	return nil
}

// Health performs a health check on the cart module.
func (m *CartModule) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if rs, ok := m.store.(*RedisStore); ok {
		if err := rs.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("redis ping failed: %v", err),
			}
		}
		return mono.HealthStatus{
			Healthy: true,
			Message: "operational",
			Details: map[string]any{"backend": "redis"},
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"backend": "memory"},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *CartModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "new", json.Unmarshal, json.Marshal, m.newCart,
	); err != nil {
		return fmt.Errorf("failed to register new service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-quantity", json.Unmarshal, json.Marshal, m.setQuantity,
	); err != nil {
		return fmt.Errorf("failed to register set-quantity service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "remove", json.Unmarshal, json.Marshal, m.removeItem,
	); err != nil {
		return fmt.Errorf("failed to register remove service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "clear", json.Unmarshal, json.Marshal, m.clearCart,
	); err != nil {
		return fmt.Errorf("failed to register clear service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getCart,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	log.Printf("[cart] Registered services: services.cart.{new,set-quantity,remove,clear,get}")
	return nil
}
