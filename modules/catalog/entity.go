package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Stock status values shown on the storefront.
const (
	StockInStock    = "in_stock"
	StockLowStock   = "low_stock"
	StockOutOfStock = "out_of_stock"
)

// Product represents a purchasable item in the catalog.
type Product struct {
	ID            string         `gorm:"primarykey;size:36" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	SKU           string         `gorm:"size:64;index" json:"sku"`
	UnitPrice     float64        `gorm:"not null" json:"unit_price"`
	Description   string         `gorm:"size:2000" json:"description"`
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`
	StockStatus   string         `gorm:"size:20;not null;default:in_stock" json:"stock_status"`
	IsAvailable   bool           `gorm:"not null;default:true" json:"is_available"`
	Images        []ProductImage `gorm:"foreignKey:ProductID" json:"images"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// ProductImage is one uploaded image of a product. Images of a product are
// kept in a contiguous display order starting at 0.
type ProductImage struct {
	ID           string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ProductID    string    `gorm:"size:36;not null;index" json:"product_id"`
	ObjectName   string    `gorm:"size:255;not null" json:"object_name"`
	ImageURL     string    `gorm:"size:500" json:"image_url"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
}

// TableName returns the table name for ProductImage model.
func (ProductImage) TableName() string {
	return "product_images"
}
