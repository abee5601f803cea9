package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides login identity and JWT services.
type AuthModule struct {
	db      *gorm.DB
	service *Service
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule() *AuthModule {
	dbPath := os.Getenv("PORTAL_DB_PATH")
	if dbPath == "" {
		dbPath = "portal.db"
	}
	return &AuthModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the database connection and builds the service stack.
func (m *AuthModule) Start(_ context.Context) error {
	log.Printf("[auth] Connecting to SQLite database: %s", m.dbPath)

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

	if err := m.db.AutoMigrate(&Identity{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtConfig := DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		jwtConfig.SecretKey = secret
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		jwtConfig.Issuer = issuer
	}

	tempPassword, err := newTempPasswordGenerator()
	if err != nil {
		return fmt.Errorf("failed to initialize password generator: %w", err)
	}

	m.service = NewService(
		NewIdentityRepository(m.db),
		NewPasswordHasher(),
		NewJWTManager(jwtConfig),
		tempPassword,
	)

	log.Println("[auth] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *AuthModule) Stop(_ context.Context) error {
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

	log.Println("[auth] Database connection closed")
	return nil
}

// Health performs a health check on the auth module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
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
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create-identity", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create-identity", json.Unmarshal, json.Marshal, m.createIdentity)
		}},
		{"delete-identity", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete-identity", json.Unmarshal, json.Marshal, m.deleteIdentity)
		}},
		{"login", func() error {
			return helper.RegisterTypedRequestReplyService(container, "login", json.Unmarshal, json.Marshal, m.login)
		}},
		{"refresh-token", func() error {
			return helper.RegisterTypedRequestReplyService(container, "refresh-token", json.Unmarshal, json.Marshal, m.refreshToken)
		}},
		{"validate-token", func() error {
			return helper.RegisterTypedRequestReplyService(container, "validate-token", json.Unmarshal, json.Marshal, m.validateToken)
		}},
		{"change-password", func() error {
			return helper.RegisterTypedRequestReplyService(container, "change-password", json.Unmarshal, json.Marshal, m.changePassword)
		}},
		{"get-identity", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-identity", json.Unmarshal, json.Marshal, m.getIdentity)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[auth] Registered services: services.auth.{create-identity,delete-identity,login,refresh-token,validate-token,change-password,get-identity}")
	return nil
}

func (m *AuthModule) createIdentity(_ context.Context, req CreateIdentityRequest, _ *mono.Msg) (CreateIdentityResponse, error) {
	resp, err := m.service.CreateIdentity(req)
	if err != nil {
		return CreateIdentityResponse{}, err
	}
	return *resp, nil
}

func (m *AuthModule) deleteIdentity(_ context.Context, req DeleteIdentityRequest, _ *mono.Msg) (DeleteIdentityResponse, error) {
	if err := m.service.DeleteIdentity(req.UserID); err != nil {
		return DeleteIdentityResponse{}, err
	}
	return DeleteIdentityResponse{Deleted: true}, nil
}

func (m *AuthModule) login(_ context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	resp, err := m.service.Login(req)
	if err != nil {
		return LoginResponse{}, err
	}
	return *resp, nil
}

func (m *AuthModule) refreshToken(_ context.Context, req RefreshTokenRequest, _ *mono.Msg) (RefreshTokenResponse, error) {
	resp, err := m.service.RefreshTokens(req.RefreshToken)
	if err != nil {
		return RefreshTokenResponse{}, err
	}
	return *resp, nil
}

// validateToken never returns an error: invalid tokens come back as a
// response with Valid=false so the caller can map them to 401 uniformly.
func (m *AuthModule) validateToken(_ context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(req.Token)
	if err != nil {
		return ValidateTokenResponse{
			Valid: false,
			Error: err.Error(),
		}, nil
	}
	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (m *AuthModule) changePassword(_ context.Context, req ChangePasswordRequest, _ *mono.Msg) (ChangePasswordResponse, error) {
	if err := m.service.ChangePassword(req); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return ChangePasswordResponse{}, fmt.Errorf("current password is incorrect")
		}
		return ChangePasswordResponse{}, err
	}
	return ChangePasswordResponse{Changed: true}, nil
}

func (m *AuthModule) getIdentity(_ context.Context, req GetIdentityRequest, _ *mono.Msg) (IdentityResponse, error) {
	identity, err := m.service.GetIdentity(req.UserID)
	if err != nil {
		return IdentityResponse{}, err
	}
	return IdentityResponse{
		ID:                 identity.ID,
		Email:              identity.Email,
		Role:               identity.Role,
		MustChangePassword: identity.MustChangePassword,
	}, nil
}
