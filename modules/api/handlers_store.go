package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/reganthompson23/wholesaleportal/modules/accounts"
	"github.com/reganthompson23/wholesaleportal/modules/cart"
	"github.com/reganthompson23/wholesaleportal/modules/catalog"
	"github.com/reganthompson23/wholesaleportal/modules/orders"
)

// CartTokenHeader carries the device-local cart token.
const CartTokenHeader = "X-Cart-Token"

// ListProducts returns the storefront catalog: available products only. An
// optional q parameter applies the fuzzy title search.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	var resp catalog.ListProductsResponse
	if query != "" {
		req := catalog.SearchProductsRequest{Query: query, AvailableOnly: true}
		if err := h.call(c, h.catalogContainer, "search", &req, &resp); err != nil {
			return handleServiceError(c, err)
		}
	} else {
		req := catalog.ListProductsRequest{AvailableOnly: true}
		if err := h.call(c, h.catalogContainer, "list", &req, &resp); err != nil {
			return handleServiceError(c, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetProduct returns one product with its image gallery.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	req := catalog.GetProductRequest{ID: c.Params("id")}
	var resp catalog.ProductResponse

	if err := h.call(c, h.catalogContainer, "get", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ServeImage streams an image blob from the object store.
func (h *Handlers) ServeImage(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return badRequest(c, "Image name is required")
	}

	obj, err := h.storageAdapter.GetObject(c.UserContext(), name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Image not found",
		})
	}

	c.Set(fiber.HeaderContentType, obj.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Status(fiber.StatusOK).Send(obj.Data)
}

// NewCart mints a fresh cart token for the device to store locally.
func (h *Handlers) NewCart(c *fiber.Ctx) error {
	req := cart.NewCartRequest{}
	var resp cart.NewCartResponse

	if err := h.call(c, h.cartContainer, "new", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetCart returns the cart contents priced from the live catalog.
func (h *Handlers) GetCart(c *fiber.Ctx) error {
	token := c.Get(CartTokenHeader)
	if token == "" {
		return badRequest(c, "Cart token is required")
	}

	req := cart.GetRequest{Token: token}
	var resp cart.GetResponse

	if err := h.call(c, h.cartContainer, "get", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// SetCartItem sets the quantity for one product. Quantity zero removes the
// line.
func (h *Handlers) SetCartItem(c *fiber.Ctx) error {
	token := c.Get(CartTokenHeader)
	if token == "" {
		return badRequest(c, "Cart token is required")
	}

	var body CartItemRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.ProductID == "" {
		return badRequest(c, "Product id is required")
	}

	req := cart.SetQuantityRequest{
		Token:     token,
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	}
	var resp cart.AckResponse

	if err := h.call(c, h.cartContainer, "set-quantity", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// RemoveCartItem removes one product from the cart.
func (h *Handlers) RemoveCartItem(c *fiber.Ctx) error {
	token := c.Get(CartTokenHeader)
	if token == "" {
		return badRequest(c, "Cart token is required")
	}

	req := cart.RemoveRequest{
		Token:     token,
		ProductID: c.Params("productID"),
	}
	var resp cart.AckResponse

	if err := h.call(c, h.cartContainer, "remove", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ClearCart empties the cart.
func (h *Handlers) ClearCart(c *fiber.Ctx) error {
	token := c.Get(CartTokenHeader)
	if token == "" {
		return badRequest(c, "Cart token is required")
	}

	req := cart.ClearRequest{Token: token}
	var resp cart.AckResponse

	if err := h.call(c, h.cartContainer, "clear", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Checkout converts the caller's cart into an order. The cart token names the
// cart; the authenticated identity names the customer. Cart lines whose
// product has vanished are dropped rather than blocking the order.
func (h *Handlers) Checkout(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	token := c.Get(CartTokenHeader)
	if token == "" {
		return badRequest(c, "Cart token is required")
	}

	var body CheckoutRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	customer, err := h.currentCustomer(c, claims)
	if err != nil {
		return handleServiceError(c, err)
	}

	cartReq := cart.GetRequest{Token: token}
	var cartResp cart.GetResponse
	if err := h.call(c, h.cartContainer, "get", &cartReq, &cartResp); err != nil {
		return handleServiceError(c, err)
	}

	items := make([]orders.CheckoutItem, 0, len(cartResp.Entries))
	for _, entry := range cartResp.Entries {
		if entry.Missing {
			continue
		}
		items = append(items, orders.CheckoutItem{
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
		})
	}

	checkoutReq := orders.CheckoutRequest{
		CustomerID: customer.ID,
		Items:      items,
		Shipping:   shippingFromBody(body, customer),
	}
	var order orders.OrderResponse
	if err := h.call(c, h.ordersContainer, "checkout", &checkoutReq, &order); err != nil {
		return handleServiceError(c, err)
	}

	// The order exists; a stale cart is the lesser failure.
	clearReq := cart.ClearRequest{Token: token}
	var clearResp cart.AckResponse
	if err := h.call(c, h.cartContainer, "clear", &clearReq, &clearResp); err != nil {
		log.Printf("[api] Failed to clear cart %s after checkout: %v", token, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// shippingFromBody builds the shipping details, falling back to the customer
// profile for fields the form left blank.
func shippingFromBody(body CheckoutRequest, customer *accounts.CustomerResponse) orders.ShippingDetails {
	details := orders.ShippingDetails{
		BusinessName: body.BusinessName,
		ContactName:  body.ContactName,
		Email:        body.Email,
		Phone:        body.Phone,
		Address:      body.Address,
		State:        body.State,
		Postcode:     body.Postcode,
		Country:      body.Country,
		Notes:        body.Notes,
	}
	if details.BusinessName == "" {
		details.BusinessName = customer.BusinessName
	}
	if details.ContactName == "" {
		details.ContactName = customer.ContactName
	}
	if details.Email == "" {
		details.Email = customer.Email
	}
	if details.Phone == "" {
		details.Phone = customer.Phone
	}
	if details.Address == "" {
		details.Address = customer.Address
	}
	if details.State == "" {
		details.State = customer.State
	}
	if details.Postcode == "" {
		details.Postcode = customer.Postcode
	}
	if details.Country == "" {
		details.Country = customer.Country
	}
	return details
}

// MyOrders lists the caller's own orders.
func (h *Handlers) MyOrders(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	customer, err := h.currentCustomer(c, claims)
	if err != nil {
		return handleServiceError(c, err)
	}

	req := orders.ListOrdersRequest{CustomerID: customer.ID}
	var resp orders.ListOrdersResponse

	if err := h.call(c, h.ordersContainer, "list", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// MyOrder returns one of the caller's own orders. Another customer's order is
// indistinguishable from a missing one.
func (h *Handlers) MyOrder(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	customer, err := h.currentCustomer(c, claims)
	if err != nil {
		return handleServiceError(c, err)
	}

	req := orders.GetOrderRequest{ID: c.Params("id")}
	var resp orders.OrderResponse

	if err := h.call(c, h.ordersContainer, "get", &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	if resp.CustomerID != customer.ID {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
