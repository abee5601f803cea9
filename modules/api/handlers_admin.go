package api

import (
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/reganthompson23/wholesaleportal/modules/accounts"
	"github.com/reganthompson23/wholesaleportal/modules/catalog"
	"github.com/reganthompson23/wholesaleportal/modules/orders"
)

// AdminListProducts returns the full catalog, including hidden products. An
// optional q parameter applies the fuzzy title search.
func (h *Handlers) AdminListProducts(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	var resp catalog.ListProductsResponse
	if query != "" {
		req := catalog.SearchProductsRequest{Query: query}
		if err := h.call(c, h.catalogContainer, "search", &req, &resp); err != nil {
			return handleServiceError(c, err)
		}
	} else {
		req := catalog.ListProductsRequest{}
		if err := h.call(c, h.catalogContainer, "list", &req, &resp); err != nil {
			return handleServiceError(c, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminCreateProduct creates a product.
func (h *Handlers) AdminCreateProduct(c *fiber.Ctx) error {
	var req catalog.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var resp catalog.ProductResponse
	if err := h.call(c, h.catalogContainer, "create", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// AdminUpdateProduct applies partial field updates to a product.
func (h *Handlers) AdminUpdateProduct(c *fiber.Ctx) error {
	var req catalog.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ID = c.Params("id")

	var resp catalog.ProductResponse
	if err := h.call(c, h.catalogContainer, "update", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminSetAvailability toggles a product's storefront visibility.
func (h *Handlers) AdminSetAvailability(c *fiber.Ctx) error {
	var body struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := catalog.SetAvailabilityRequest{
		ID:          c.Params("id"),
		IsAvailable: body.IsAvailable,
	}
	var resp catalog.ProductResponse
	if err := h.call(c, h.catalogContainer, "set-availability", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminDeleteProduct soft-deletes a product and cleans up its image blobs.
func (h *Handlers) AdminDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	// Snapshot the gallery before the rows go away.
	imagesReq := catalog.ListImagesRequest{ProductID: productID}
	var imagesResp catalog.ListImagesResponse
	if err := h.call(c, h.catalogContainer, "list-images", &imagesReq, &imagesResp); err != nil {
		return handleServiceError(c, err)
	}

	req := catalog.DeleteProductRequest{ID: productID}
	var resp catalog.DeleteProductResponse
	if err := h.call(c, h.catalogContainer, "delete", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	for _, image := range imagesResp.Images {
		if err := h.storageAdapter.DeleteObject(c.UserContext(), image.ObjectName); err != nil {
			log.Printf("[api] Failed to delete image blob %s: %v", image.ObjectName, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminUploadImage stores an uploaded image blob and appends it to the
// product's gallery.
func (h *Handlers) AdminUploadImage(c *fiber.Ctx) error {
	productID := c.Params("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "Failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Failed to read uploaded file")
	}

	uploaded, err := h.storageAdapter.Upload(
		c.UserContext(),
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		data,
	)
	if err != nil {
		return handleServiceError(c, err)
	}

	req := catalog.AddImageRequest{
		ProductID:  productID,
		ObjectName: uploaded.ObjectName,
		ImageURL:   "/api/images/" + uploaded.ObjectName,
	}
	var resp catalog.ImageResponse
	if err := h.call(c, h.catalogContainer, "add-image", &req, &resp); err != nil {
		// The gallery row failed; the orphaned blob goes too.
		if delErr := h.storageAdapter.DeleteObject(c.UserContext(), uploaded.ObjectName); delErr != nil {
			log.Printf("[api] Failed to delete orphaned blob %s: %v", uploaded.ObjectName, delErr)
		}
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// AdminReorderImage moves an image to a new gallery position.
func (h *Handlers) AdminReorderImage(c *fiber.Ctx) error {
	var body ImagePositionRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := catalog.ReorderImageRequest{
		ImageID:  c.Params("imageID"),
		Position: body.Position,
	}
	var resp catalog.ListImagesResponse
	if err := h.call(c, h.catalogContainer, "reorder-image", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminRemoveImage removes a gallery image and its blob.
func (h *Handlers) AdminRemoveImage(c *fiber.Ctx) error {
	req := catalog.RemoveImageRequest{ImageID: c.Params("imageID")}
	var resp catalog.RemoveImageResponse
	if err := h.call(c, h.catalogContainer, "remove-image", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	if resp.ObjectName != "" {
		if err := h.storageAdapter.DeleteObject(c.UserContext(), resp.ObjectName); err != nil {
			log.Printf("[api] Failed to delete image blob %s: %v", resp.ObjectName, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminListCustomers lists customers with an optional search filter.
func (h *Handlers) AdminListCustomers(c *fiber.Ctx) error {
	req := accounts.ListCustomersRequest{Search: c.Query("q")}
	var resp accounts.ListCustomersResponse

	if err := h.call(c, h.accountsContainer, "list", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminCreateCustomer provisions a customer account. The welcome email with
// the one-time password is sent asynchronously.
func (h *Handlers) AdminCreateCustomer(c *fiber.Ctx) error {
	var req accounts.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var resp accounts.CustomerResponse
	if err := h.call(c, h.accountsContainer, "create", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ProvisionCustomer is the flat provisioning endpoint kept compatible with the
// old server-side proxy: 200 with the customer record on success, 500 with
// {"error": message} on any failure.
func (h *Handlers) ProvisionCustomer(c *fiber.Ctx) error {
	var req accounts.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	var resp accounts.CustomerResponse
	if err := h.call(c, h.accountsContainer, "create", &req, &resp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminGetCustomer returns one customer.
func (h *Handlers) AdminGetCustomer(c *fiber.Ctx) error {
	req := accounts.GetCustomerRequest{ID: c.Params("id")}
	var resp accounts.CustomerResponse

	if err := h.call(c, h.accountsContainer, "get", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminUpdateCustomer applies partial profile updates to a customer.
func (h *Handlers) AdminUpdateCustomer(c *fiber.Ctx) error {
	var req accounts.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ID = c.Params("id")

	var resp accounts.CustomerResponse
	if err := h.call(c, h.accountsContainer, "update", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminDeleteCustomer removes a customer and its login identity.
func (h *Handlers) AdminDeleteCustomer(c *fiber.Ctx) error {
	req := accounts.DeleteCustomerRequest{ID: c.Params("id")}
	var resp accounts.DeleteCustomerResponse

	if err := h.call(c, h.accountsContainer, "delete", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminListOrders lists all orders with optional status, payment status, and
// business-name filters.
func (h *Handlers) AdminListOrders(c *fiber.Ctx) error {
	req := orders.AdminListOrdersRequest{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Search:        c.Query("q"),
	}
	var resp orders.ListOrdersResponse

	if err := h.call(c, h.ordersContainer, "admin-list", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminGetOrder returns one order, soft-deleted or not.
func (h *Handlers) AdminGetOrder(c *fiber.Ctx) error {
	req := orders.GetOrderRequest{ID: c.Params("id"), IncludeDeleted: true}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "get", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminSetOrderStatus updates an order's fulfillment status.
func (h *Handlers) AdminSetOrderStatus(c *fiber.Ctx) error {
	var body StatusUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := orders.SetStatusRequest{ID: c.Params("id"), Status: body.Status}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "set-status", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminSetPaymentStatus updates an order's payment status.
func (h *Handlers) AdminSetPaymentStatus(c *fiber.Ctx) error {
	var body PaymentStatusUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := orders.SetPaymentStatusRequest{ID: c.Params("id"), PaymentStatus: body.PaymentStatus}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "set-payment-status", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminSetShippingCost updates an order's quoted shipping cost.
func (h *Handlers) AdminSetShippingCost(c *fiber.Ctx) error {
	var body ShippingCostUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := orders.SetShippingCostRequest{ID: c.Params("id"), ShippingCost: body.ShippingCost}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "set-shipping-cost", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminSetOrderNotes updates an order's internal notes.
func (h *Handlers) AdminSetOrderNotes(c *fiber.Ctx) error {
	var body NotesUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := orders.SetNotesRequest{ID: c.Params("id"), InternalNotes: body.InternalNotes}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "set-notes", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminAddOrderItem appends a product to an order at its current catalog
// price.
func (h *Handlers) AdminAddOrderItem(c *fiber.Ctx) error {
	var body OrderItemAddRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := orders.AddItemRequest{
		OrderID:   c.Params("id"),
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "add-item", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminUpdateOrderItem edits an order item's quantity or unit price.
func (h *Handlers) AdminUpdateOrderItem(c *fiber.Ctx) error {
	var body OrderItemUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := orders.UpdateItemRequest{
		ItemID:    c.Params("itemID"),
		Quantity:  body.Quantity,
		UnitPrice: body.UnitPrice,
	}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "update-item", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminRemoveOrderItem removes an item from an order.
func (h *Handlers) AdminRemoveOrderItem(c *fiber.Ctx) error {
	req := orders.RemoveItemRequest{ItemID: c.Params("itemID")}
	var resp orders.AckResponse

	if err := h.call(c, h.ordersContainer, "remove-item", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AdminDeleteOrder soft-deletes an order. The row survives for recovery; it
// just stops appearing in listings.
func (h *Handlers) AdminDeleteOrder(c *fiber.Ctx) error {
	req := orders.DeleteOrderRequest{ID: c.Params("id")}
	var resp orders.DeleteOrderResponse

	if err := h.call(c, h.ordersContainer, "delete", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
