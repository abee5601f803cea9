package auth

import "time"

// Roles an identity can hold.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Identity is a login identity. Wholesale customers get one provisioned by
// an admin with a generated one-time password; they are expected to change
// it on first login.
type Identity struct {
	ID                 string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"size:255;not null" json:"-"`
	Role               string    `gorm:"size:20;not null;default:customer" json:"role"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"must_change_password"`
}

// TableName returns the table name for Identity model.
func (Identity) TableName() string {
	return "identities"
}

// Claims are the verified token claims handed to request handlers.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	TokenType    string
}
