package auth

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrIdentityNotFound is returned when an identity is not found.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("email already registered")
)

// IdentityRepository handles identity data persistence.
type IdentityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository creates a new IdentityRepository.
func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// Create creates a new identity.
func (r *IdentityRepository) Create(identity *Identity) error {
	exists, err := r.EmailExists(identity.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailExists
	}
	return r.db.Create(identity).Error
}

// FindByID finds an identity by ID.
func (r *IdentityRepository) FindByID(id string) (*Identity, error) {
	var identity Identity
	err := r.db.Where("id = ?", id).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// FindByEmail finds an identity by email.
func (r *IdentityRepository) FindByEmail(email string) (*Identity, error) {
	var identity Identity
	err := r.db.Where("email = ?", email).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// EmailExists checks whether an identity with the given email exists.
func (r *IdentityRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&Identity{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePassword replaces the password hash and clears the must-change flag.
func (r *IdentityRepository) UpdatePassword(id, passwordHash string) error {
	result := r.db.Model(&Identity{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": false,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// Delete removes an identity.
func (r *IdentityRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&Identity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdentityNotFound
	}
	return nil
}
