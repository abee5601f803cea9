package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/reganthompson23/wholesaleportal/modules/accounts"
	"github.com/reganthompson23/wholesaleportal/modules/api"
	"github.com/reganthompson23/wholesaleportal/modules/auth"
	"github.com/reganthompson23/wholesaleportal/modules/cart"
	"github.com/reganthompson23/wholesaleportal/modules/catalog"
	"github.com/reganthompson23/wholesaleportal/modules/mailer"
	"github.com/reganthompson23/wholesaleportal/modules/orders"
	"github.com/reganthompson23/wholesaleportal/modules/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Wholesale Portal ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies.
	app.Register(storage.NewModule())  // Image blobs (NATS JetStream)
	app.Register(auth.NewModule())     // Login identities + JWT
	app.Register(catalog.NewModule())  // Product catalog
	app.Register(accounts.NewModule()) // Customers (depends on auth, emits events)
	app.Register(cart.NewModule())     // Device-local carts (depends on catalog)
	app.Register(orders.NewModule())   // Order lifecycle (depends on catalog, accounts)
	app.Register(mailer.NewModule())   // Welcome emails (consumes accounts events)
	app.Register(api.NewModule())      // HTTP surface (depends on everything)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Storefront endpoints:")
	log.Println("  GET    /api/health")
	log.Println("  POST   /api/auth/login")
	log.Println("  POST   /api/auth/refresh")
	log.Println("  GET    /api/products")
	log.Println("  GET    /api/products/:id")
	log.Println("  GET    /api/images/:name")
	log.Println("  POST   /api/cart")
	log.Println("  GET    /api/cart")
	log.Println("  PUT    /api/cart/items")
	log.Println("  DELETE /api/cart/items/:productID")
	log.Println("  DELETE /api/cart")
	log.Println("")
	log.Println("Customer endpoints (Bearer token):")
	log.Println("  POST   /api/auth/change-password")
	log.Println("  GET    /api/me")
	log.Println("  POST   /api/checkout")
	log.Println("  GET    /api/orders")
	log.Println("  GET    /api/orders/:id")
	log.Println("")
	log.Println("Admin endpoints (Bearer token, admin role):")
	log.Println("  /api/admin/products, /api/admin/customers, /api/admin/orders")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
