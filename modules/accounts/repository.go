package accounts

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a customer is not found.
	ErrNotFound = errors.New("customer not found")
	// ErrEmailExists is returned when a customer with the email exists.
	ErrEmailExists = errors.New("customer email already registered")
)

// Repository handles customer data persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a new customer.
func (r *Repository) Create(customer *Customer) error {
	var count int64
	err := r.db.Model(&Customer{}).Where("email = ?", customer.Email).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailExists
	}
	return r.db.Create(customer).Error
}

// FindByID finds a customer by ID.
func (r *Repository) FindByID(id string) (*Customer, error) {
	var customer Customer
	err := r.db.Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByAuthUserID finds the customer linked to a login identity.
func (r *Repository) FindByAuthUserID(authUserID string) (*Customer, error) {
	var customer Customer
	err := r.db.Where("auth_user_id = ?", authUserID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll returns all customers ordered by business name.
func (r *Repository) FindAll() ([]*Customer, error) {
	var customers []*Customer
	err := r.db.Order("business_name ASC").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Search returns customers whose business name, contact name, or email
// contains the query, case-insensitive.
func (r *Repository) Search(query string) ([]*Customer, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var customers []*Customer
	err := r.db.
		Where("LOWER(business_name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern).
		Order("business_name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Update applies the given field updates to a customer. Map updates so empty
// strings still land.
func (r *Repository) Update(id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.Model(&Customer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a customer row.
func (r *Repository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
