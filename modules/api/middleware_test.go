package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/reganthompson23/wholesaleportal/modules/auth"
)

// mockAuthPort implements auth.AuthPort for testing.
type mockAuthPort struct {
	validateTokenFunc func(ctx context.Context, token string) (*auth.ValidateTokenResponse, error)
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (*auth.ValidateTokenResponse, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) CreateIdentity(ctx context.Context, req auth.CreateIdentityRequest) (*auth.CreateIdentityResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) DeleteIdentity(ctx context.Context, userID string) error {
	return errors.New("not implemented")
}

func validCustomer() *mockAuthPort {
	return &mockAuthPort{
		validateTokenFunc: func(ctx context.Context, token string) (*auth.ValidateTokenResponse, error) {
			return &auth.ValidateTokenResponse{
				Valid:  true,
				UserID: "user-123",
				Email:  "pat@acme.test",
				Role:   auth.RoleCustomer,
			}, nil
		},
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockAuth       *mockAuthPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Authorization header is required"`,
		},
		{
			name:           "invalid authorization format - no bearer",
			authHeader:     "Basic token123",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Invalid authorization header format`,
		},
		{
			name:       "transport error",
			authHeader: "Bearer some-token",
			mockAuth: &mockAuthPort{
				validateTokenFunc: func(ctx context.Context, token string) (*auth.ValidateTokenResponse, error) {
					return nil, errors.New("auth service unreachable")
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid or expired token"`,
		},
		{
			name:       "rejected token",
			authHeader: "Bearer expired-token",
			mockAuth: &mockAuthPort{
				validateTokenFunc: func(ctx context.Context, token string) (*auth.ValidateTokenResponse, error) {
					return &auth.ValidateTokenResponse{Valid: false, Error: "token expired"}, nil
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid or expired token"`,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			mockAuth:       validCustomer(),
			expectedStatus: http.StatusOK,
			expectedBody:   `"authenticated"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthMiddleware(tt.mockAuth))
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "authenticated"})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

func TestAuthMiddleware_ClaimsInContext(t *testing.T) {
	app := fiber.New()
	app.Use(AuthMiddleware(validCustomer()))

	var captured *auth.Claims
	app.Get("/test", func(c *fiber.Ctx) error {
		captured = currentClaims(c)
		return c.JSON(fiber.Map{"status": "ok"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if captured == nil {
		t.Fatal("claims not set in context")
	}
	if captured.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want user-123", captured.UserID)
	}
	if captured.Role != auth.RoleCustomer {
		t.Errorf("claims.Role = %v, want customer", captured.Role)
	}
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{"customer is rejected", auth.RoleCustomer, http.StatusForbidden},
		{"admin passes", auth.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := &mockAuthPort{
				validateTokenFunc: func(ctx context.Context, token string) (*auth.ValidateTokenResponse, error) {
					return &auth.ValidateTokenResponse{
						Valid:  true,
						UserID: "user-123",
						Role:   tt.role,
					}, nil
				},
			}

			app := fiber.New()
			app.Use(AuthMiddleware(mockAuth), AdminMiddleware())
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "ok"})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer valid-token")

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}
		})
	}
}

func TestAdminMiddleware_NoClaims(t *testing.T) {
	// AdminMiddleware without AuthMiddleware in front must fail closed.
	app := fiber.New()
	app.Use(AdminMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusForbidden)
	}
}
