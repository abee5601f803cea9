package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	"github.com/reganthompson23/wholesaleportal/modules/auth"
	"github.com/reganthompson23/wholesaleportal/modules/storage"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer     mono.ServiceContainer
	catalogContainer  mono.ServiceContainer
	cartContainer     mono.ServiceContainer
	ordersContainer   mono.ServiceContainer
	accountsContainer mono.ServiceContainer

	authAdapter    auth.AuthPort
	storageAdapter storage.StoragePort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	authContainer mono.ServiceContainer,
	catalogContainer mono.ServiceContainer,
	cartContainer mono.ServiceContainer,
	ordersContainer mono.ServiceContainer,
	accountsContainer mono.ServiceContainer,
	authAdapter auth.AuthPort,
	storageAdapter storage.StoragePort,
) *Handlers {
	return &Handlers{
		authContainer:     authContainer,
		catalogContainer:  catalogContainer,
		cartContainer:     cartContainer,
		ordersContainer:   ordersContainer,
		accountsContainer: accountsContainer,
		authAdapter:       authAdapter,
		storageAdapter:    storageAdapter,
	}
}

// call invokes a module service with JSON codecs. All handler-to-module
// traffic funnels through here.
func (h *Handlers) call(c *fiber.Ctx, container mono.ServiceContainer, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(),
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	)
}

// badRequest returns a 400 response with the given message.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// handleServiceError maps service errors to HTTP responses. Module services
// cross the container as plain messages, so mapping matches on text.
func handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	case strings.Contains(errStr, "already registered"),
		strings.Contains(errStr, "already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "Resource already exists",
		})
	case strings.Contains(errStr, "not authenticated"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication required",
		})
	case strings.Contains(errStr, "cart is empty"):
		return badRequest(c, "Cart is empty")
	case strings.Contains(errStr, "is required"),
		strings.Contains(errStr, "invalid"),
		strings.Contains(errStr, "must be"),
		strings.Contains(errStr, "cannot be"),
		strings.Contains(errStr, "exceeds maximum"):
		return badRequest(c, errStr)
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
