package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/reganthompson23/wholesaleportal/modules/auth"
)

const (
	// UserContextKey is the key used to store verified claims in the Fiber
	// context.
	UserContextKey = "user"
)

// AuthMiddleware creates a middleware that validates JWT access tokens.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		result, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil || !result.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, &auth.Claims{
			UserID: result.UserID,
			Email:  result.Email,
			Role:   result.Role,
		})

		return c.Next()
	}
}

// AdminMiddleware rejects requests from non-admin identities. It must run
// after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := currentClaims(c)
		if claims == nil || claims.Role != auth.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Error:   "forbidden",
				Message: "Admin access required",
			})
		}
		return c.Next()
	}
}

// currentClaims returns the verified claims set by AuthMiddleware, or nil.
func currentClaims(c *fiber.Ctx) *auth.Claims {
	claims, ok := c.Locals(UserContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
