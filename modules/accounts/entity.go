package accounts

import "time"

// Customer is a wholesale customer account. The login identity lives in the
// auth module; AuthUserID links the two.
type Customer struct {
	ID           string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AuthUserID   string    `gorm:"size:36;uniqueIndex;not null" json:"auth_user_id"`
	BusinessName string    `gorm:"size:255;not null" json:"business_name"`
	ContactName  string    `gorm:"size:255" json:"contact_name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:50" json:"phone"`
	Address      string    `gorm:"size:500" json:"address"`
	State        string    `gorm:"size:100" json:"state"`
	Postcode     string    `gorm:"size:20" json:"postcode"`
	Country      string    `gorm:"size:100" json:"country"`
}

// TableName returns the table name for Customer model.
func (Customer) TableName() string {
	return "customers"
}
