package accounts

import "time"

// CreateCustomerRequest provisions a customer account plus its login
// identity.
type CreateCustomerRequest struct {
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
}

// CustomerResponse represents a customer in responses.
type CustomerResponse struct {
	ID           string    `json:"id"`
	AuthUserID   string    `json:"auth_user_id"`
	BusinessName string    `json:"business_name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	State        string    `json:"state"`
	Postcode     string    `json:"postcode"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GetCustomerRequest fetches a customer by ID.
type GetCustomerRequest struct {
	ID string `json:"id"`
}

// GetByAuthUserRequest fetches the customer linked to a login identity.
type GetByAuthUserRequest struct {
	AuthUserID string `json:"auth_user_id"`
}

// ListCustomersRequest lists all customers, optionally filtered by a
// case-insensitive search on business name, contact name, or email.
type ListCustomersRequest struct {
	Search string `json:"search,omitempty"`
}

// ListCustomersResponse is the response containing a list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
}

// UpdateCustomerRequest updates customer profile fields. Nil fields are left
// untouched.
type UpdateCustomerRequest struct {
	ID           string  `json:"id"`
	BusinessName *string `json:"business_name,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	State        *string `json:"state,omitempty"`
	Postcode     *string `json:"postcode,omitempty"`
	Country      *string `json:"country,omitempty"`
}

// DeleteCustomerRequest removes a customer and its login identity.
type DeleteCustomerRequest struct {
	ID string `json:"id"`
}

// DeleteCustomerResponse acknowledges customer removal.
type DeleteCustomerResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
