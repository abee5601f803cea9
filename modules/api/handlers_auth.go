package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/reganthompson23/wholesaleportal/modules/accounts"
	"github.com/reganthompson23/wholesaleportal/modules/auth"
)

// Login handles customer and admin login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := h.call(c, h.authContainer, "login", &authReq, &resp); err != nil {
		// Unknown email and wrong password both land here.
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	authReq := auth.RefreshTokenRequest{
		RefreshToken: req.RefreshToken,
	}
	var resp auth.RefreshTokenResponse

	if err := h.call(c, h.authContainer, "refresh-token", &authReq, &resp); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ChangePassword replaces the caller's password. Fresh customers arrive here
// with the one-time password from their welcome email.
func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "Current and new passwords are required")
	}

	authReq := auth.ChangePasswordRequest{
		UserID:          claims.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
	var resp auth.ChangePasswordResponse

	if err := h.call(c, h.authContainer, "change-password", &authReq, &resp); err != nil {
		errStr := err.Error()
		switch {
		case strings.Contains(errStr, "current password is incorrect"):
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Current password is incorrect",
			})
		case strings.Contains(errStr, "at least"):
			return badRequest(c, "New password must be at least 8 characters")
		default:
			return handleServiceError(c, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Me returns the caller's customer profile. Admin identities have no customer
// record and get the bare claims instead.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	if claims.Role == auth.RoleAdmin {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		})
	}

	customer, err := h.currentCustomer(c, claims)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(customer)
}

// currentCustomer resolves the customer record linked to the authenticated
// identity.
func (h *Handlers) currentCustomer(c *fiber.Ctx, claims *auth.Claims) (*accounts.CustomerResponse, error) {
	req := accounts.GetByAuthUserRequest{AuthUserID: claims.UserID}
	var resp accounts.CustomerResponse

	if err := h.call(c, h.accountsContainer, "get-by-auth-user", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
