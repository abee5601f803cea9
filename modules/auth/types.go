package auth

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response.
type LoginResponse struct {
	AccessToken        string `json:"access_token"`
	RefreshToken       string `json:"refresh_token"`
	ExpiresIn          int64  `json:"expires_in"`
	TokenType          string `json:"token_type"`
	UserID             string `json:"user_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

// RefreshTokenRequest represents a token refresh request.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenResponse represents a token refresh response.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CreateIdentityRequest provisions a login identity with a generated
// one-time password.
type CreateIdentityRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// CreateIdentityResponse carries the generated one-time password back to the
// caller exactly once. It is never retrievable again.
type CreateIdentityResponse struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TempPassword string `json:"temp_password"`
}

// DeleteIdentityRequest removes a login identity.
type DeleteIdentityRequest struct {
	UserID string `json:"user_id"`
}

// DeleteIdentityResponse acknowledges identity removal.
type DeleteIdentityResponse struct {
	Deleted bool `json:"deleted"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	UserID          string `json:"user_id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePasswordResponse acknowledges a password change.
type ChangePasswordResponse struct {
	Changed bool `json:"changed"`
}

// GetIdentityRequest fetches an identity by ID.
type GetIdentityRequest struct {
	UserID string `json:"user_id"`
}

// IdentityResponse represents an identity in responses.
type IdentityResponse struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}
