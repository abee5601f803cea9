package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service implements identity provisioning and the login flows.
type Service struct {
	repo         *IdentityRepository
	hasher       *PasswordHasher
	jwt          *JWTManager
	tempPassword func() string
}

// NewService creates a new auth service.
func NewService(repo *IdentityRepository, hasher *PasswordHasher, jwtManager *JWTManager, tempPassword func() string) *Service {
	return &Service{
		repo:         repo,
		hasher:       hasher,
		jwt:          jwtManager,
		tempPassword: tempPassword,
	}
}

// CreateIdentity provisions a login identity with a generated one-time
// password. The plaintext password is returned once and never stored.
func (s *Service) CreateIdentity(req CreateIdentityRequest) (*CreateIdentityResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}

	role := req.Role
	if role == "" {
		role = RoleCustomer
	}
	if role != RoleCustomer && role != RoleAdmin {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	tempPassword := s.tempPassword()
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &Identity{
		ID:                 uuid.New().String(),
		Email:              email,
		PasswordHash:       hash,
		Role:               role,
		MustChangePassword: true,
	}
	if err := s.repo.Create(identity); err != nil {
		return nil, err
	}

	return &CreateIdentityResponse{
		UserID:       identity.ID,
		Email:        identity.Email,
		Role:         identity.Role,
		TempPassword: tempPassword,
	}, nil
}

// DeleteIdentity removes a login identity.
func (s *Service) DeleteIdentity(userID string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	return s.repo.Delete(userID)
}

// Login verifies credentials and issues a token pair. The error is the same
// for an unknown email and a wrong password.
func (s *Service) Login(req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	identity, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidPassword
	}

	if err := s.hasher.Verify(req.Password, identity.PasswordHash); err != nil {
		return nil, ErrInvalidPassword
	}

	pair, err := s.issueTokens(identity)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:        pair.AccessToken,
		RefreshToken:       pair.RefreshToken,
		ExpiresIn:          pair.ExpiresIn,
		TokenType:          pair.TokenType,
		UserID:             identity.ID,
		Email:              identity.Email,
		Role:               identity.Role,
		MustChangePassword: identity.MustChangePassword,
	}, nil
}

// RefreshTokens exchanges a valid refresh token for a fresh pair.
func (s *Service) RefreshTokens(refreshToken string) (*RefreshTokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// Re-read the identity so a deleted account cannot keep refreshing.
	identity, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	pair, err := s.issueTokens(identity)
	if err != nil {
		return nil, err
	}

	return &RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    pair.TokenType,
	}, nil
}

// ValidateToken checks an access token and returns its claims.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	return &Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// ChangePassword replaces the identity's password after verifying the
// current one. Clearing the must-change flag happens in the same update.
func (s *Service) ChangePassword(req ChangePasswordRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	identity, err := s.repo.FindByID(req.UserID)
	if err != nil {
		return err
	}

	if err := s.hasher.Verify(req.CurrentPassword, identity.PasswordHash); err != nil {
		return ErrInvalidPassword
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(identity.ID, hash)
}

// GetIdentity returns an identity by ID.
func (s *Service) GetIdentity(userID string) (*Identity, error) {
	return s.repo.FindByID(userID)
}

func (s *Service) issueTokens(identity *Identity) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(identity.ID, identity.Email, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(identity.ID, identity.Email, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwt.AccessTokenDuration(),
		TokenType:    "Bearer",
	}, nil
}
