package catalog

import "time"

// CreateProductRequest is the request for creating a product.
type CreateProductRequest struct {
	Title         string  `json:"title"`
	SKU           string  `json:"sku"`
	UnitPrice     float64 `json:"unit_price"`
	Description   string  `json:"description"`
	StockQuantity int     `json:"stock_quantity"`
	StockStatus   string  `json:"stock_status"`
	IsAvailable   bool    `json:"is_available"`
}

// GetProductRequest is the request for getting a product.
type GetProductRequest struct {
	ID string `json:"id"`
}

// ListProductsRequest is the request for listing products. AvailableOnly
// restricts the listing to the storefront view.
type ListProductsRequest struct {
	AvailableOnly bool `json:"available_only"`
}

// SearchProductsRequest is the request for fuzzy product search.
type SearchProductsRequest struct {
	Query         string `json:"query"`
	AvailableOnly bool   `json:"available_only"`
}

// UpdateProductRequest is the request for updating a product. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	ID            string   `json:"id"`
	Title         *string  `json:"title,omitempty"`
	SKU           *string  `json:"sku,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	Description   *string  `json:"description,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	StockStatus   *string  `json:"stock_status,omitempty"`
	IsAvailable   *bool    `json:"is_available,omitempty"`
}

// SetAvailabilityRequest is the request for toggling storefront visibility.
type SetAvailabilityRequest struct {
	ID          string `json:"id"`
	IsAvailable bool   `json:"is_available"`
}

// DeleteProductRequest is the request for deleting a product.
type DeleteProductRequest struct {
	ID string `json:"id"`
}

// DeleteProductResponse is the response after deleting a product.
type DeleteProductResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// ImageResponse represents a product image in responses.
type ImageResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ObjectName   string `json:"object_name"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

// ProductResponse represents a product in responses.
type ProductResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	SKU           string          `json:"sku"`
	UnitPrice     float64         `json:"unit_price"`
	Description   string          `json:"description"`
	StockQuantity int             `json:"stock_quantity"`
	StockStatus   string          `json:"stock_status"`
	IsAvailable   bool            `json:"is_available"`
	Images        []ImageResponse `json:"images"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ListProductsResponse is the response containing a list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

// AddImageRequest is the request for attaching an uploaded image to a
// product. The file itself is already in the object store under ObjectName.
type AddImageRequest struct {
	ProductID  string `json:"product_id"`
	ObjectName string `json:"object_name"`
	ImageURL   string `json:"image_url"`
}

// RemoveImageRequest is the request for removing a product image.
type RemoveImageRequest struct {
	ImageID string `json:"image_id"`
}

// RemoveImageResponse returns the storage key of the removed image so the
// caller can clean up the object store.
type RemoveImageResponse struct {
	Removed    bool   `json:"removed"`
	ObjectName string `json:"object_name"`
}

// ReorderImageRequest is the request for moving an image to a new position
// in the gallery.
type ReorderImageRequest struct {
	ImageID  string `json:"image_id"`
	Position int    `json:"position"`
}

// ListImagesRequest is the request for listing a product's images.
type ListImagesRequest struct {
	ProductID string `json:"product_id"`
}

// ListImagesResponse is the response containing a product's images.
type ListImagesResponse struct {
	Images []ImageResponse `json:"images"`
}
