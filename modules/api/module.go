package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/reganthompson23/wholesaleportal/modules/auth"
	"github.com/reganthompson23/wholesaleportal/modules/storage"
)

// APIModule is the HTTP API module. It exposes the storefront and the admin
// surface over one Fiber server and calls everything else through module
// services.
type APIModule struct {
	app  *fiber.App
	port string

	authContainer     mono.ServiceContainer
	catalogContainer  mono.ServiceContainer
	cartContainer     mono.ServiceContainer
	ordersContainer   mono.ServiceContainer
	accountsContainer mono.ServiceContainer
	storageContainer  mono.ServiceContainer

	authAdapter    auth.AuthPort
	storageAdapter storage.StoragePort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &APIModule{
		port: port,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "catalog", "cart", "orders", "accounts", "storage"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "catalog":
		m.catalogContainer = container
	case "cart":
		m.cartContainer = container
	case "orders":
		m.ordersContainer = container
	case "accounts":
		m.accountsContainer = container
	case "storage":
		m.storageContainer = container
		m.storageAdapter = storage.NewStorageAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	for dep, container := range map[string]mono.ServiceContainer{
		"auth":     m.authContainer,
		"catalog":  m.catalogContainer,
		"cart":     m.cartContainer,
		"orders":   m.ordersContainer,
		"accounts": m.accountsContainer,
		"storage":  m.storageContainer,
	} {
		if container == nil {
			return fmt.Errorf("%s dependency not set", dep)
		}
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		BodyLimit:             12 << 20,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(
		m.authContainer,
		m.catalogContainer,
		m.cartContainer,
		m.ordersContainer,
		m.accountsContainer,
		m.authAdapter,
		m.storageAdapter,
	)

	api := m.app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	// Public auth routes.
	api.Post("/auth/login", handlers.Login)
	api.Post("/auth/refresh", handlers.Refresh)

	// Public storefront reads. Browsing needs no account; ordering does.
	api.Get("/products", handlers.ListProducts)
	api.Get("/products/:id", handlers.GetProduct)
	api.Get("/images/:name", handlers.ServeImage)

	// Cart routes keyed by the device token, no account required.
	api.Post("/cart", handlers.NewCart)
	api.Get("/cart", handlers.GetCart)
	api.Put("/cart/items", handlers.SetCartItem)
	api.Delete("/cart/items/:productID", handlers.RemoveCartItem)
	api.Delete("/cart", handlers.ClearCart)

	// Provisioning endpoint kept on its old proxy path and response shape.
	api.Post("/customers", AuthMiddleware(m.authAdapter), AdminMiddleware(), handlers.ProvisionCustomer)

	// Authenticated customer routes.
	protected := api.Group("", AuthMiddleware(m.authAdapter))
	protected.Post("/auth/change-password", handlers.ChangePassword)
	protected.Get("/me", handlers.Me)
	protected.Post("/checkout", handlers.Checkout)
	protected.Get("/orders", handlers.MyOrders)
	protected.Get("/orders/:id", handlers.MyOrder)

	// Admin routes.
	admin := api.Group("/admin", AuthMiddleware(m.authAdapter), AdminMiddleware())

	admin.Get("/products", handlers.AdminListProducts)
	admin.Post("/products", handlers.AdminCreateProduct)
	admin.Get("/products/:id", handlers.GetProduct)
	admin.Patch("/products/:id", handlers.AdminUpdateProduct)
	admin.Patch("/products/:id/availability", handlers.AdminSetAvailability)
	admin.Delete("/products/:id", handlers.AdminDeleteProduct)
	admin.Post("/products/:id/images", handlers.AdminUploadImage)
	admin.Patch("/images/:imageID/position", handlers.AdminReorderImage)
	admin.Delete("/images/:imageID", handlers.AdminRemoveImage)

	admin.Get("/customers", handlers.AdminListCustomers)
	admin.Post("/customers", handlers.AdminCreateCustomer)
	admin.Get("/customers/:id", handlers.AdminGetCustomer)
	admin.Patch("/customers/:id", handlers.AdminUpdateCustomer)
	admin.Delete("/customers/:id", handlers.AdminDeleteCustomer)

	admin.Get("/orders", handlers.AdminListOrders)
	admin.Get("/orders/:id", handlers.AdminGetOrder)
	admin.Patch("/orders/:id/status", handlers.AdminSetOrderStatus)
	admin.Patch("/orders/:id/payment-status", handlers.AdminSetPaymentStatus)
	admin.Patch("/orders/:id/shipping-cost", handlers.AdminSetShippingCost)
	admin.Patch("/orders/:id/notes", handlers.AdminSetOrderNotes)
	admin.Post("/orders/:id/items", handlers.AdminAddOrderItem)
	admin.Patch("/order-items/:itemID", handlers.AdminUpdateOrderItem)
	admin.Delete("/order-items/:itemID", handlers.AdminRemoveOrderItem)
	admin.Delete("/orders/:id", handlers.AdminDeleteOrder)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
