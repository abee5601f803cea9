package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a product is not found.
	ErrNotFound = errors.New("product not found")
	// ErrImageNotFound is returned when a product image is not found.
	ErrImageNotFound = errors.New("product image not found")
)

// Repository provides access to product and product image storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new product to the database.
func (r *Repository) Create(product *Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID, images included in display order.
func (r *Repository) FindByID(id string) (*Product, error) {
	var product Product
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindAll retrieves all products ordered by title.
func (r *Repository) FindAll() ([]*Product, error) {
	var products []*Product
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).Order("title ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// FindAvailable retrieves the products visible on the storefront.
func (r *Repository) FindAvailable() ([]*Product, error) {
	var products []*Product
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).Where("is_available = ?", true).Order("title ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find available products: %w", err)
	}
	return products, nil
}

// Update updates an existing product.
func (r *Repository) Update(product *Product) error {
	result := r.db.Model(&Product{}).Where("id = ?", product.ID).Updates(map[string]any{
		"title":          product.Title,
		"sku":            product.SKU,
		"unit_price":     product.UnitPrice,
		"description":    product.Description,
		"stock_quantity": product.StockQuantity,
		"stock_status":   product.StockStatus,
		"is_available":   product.IsAvailable,
	})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailability flips the storefront visibility flag.
func (r *Repository) SetAvailability(id string, available bool) error {
	result := r.db.Model(&Product{}).Where("id = ?", id).Update("is_available", available)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product by ID (soft delete) along with its image rows.
func (r *Repository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Product{}, "id = ?", id)
		if err := result.Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Delete(&ProductImage{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		return nil
	})
}

// FindImages retrieves the images of a product in display order.
func (r *Repository) FindImages(productID string) ([]*ProductImage, error) {
	var images []*ProductImage
	err := r.db.Where("product_id = ?", productID).
		Order("display_order ASC").Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product images: %w", err)
	}
	return images, nil
}

// AddImage appends an image at the end of the product's display order.
func (r *Repository) AddImage(image *ProductImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ProductImage{}).
			Where("product_id = ?", image.ProductID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count product images: %w", err)
		}
		image.DisplayOrder = int(count)
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to create product image: %w", err)
		}
		return nil
	})
}

// RemoveImage deletes an image and closes the gap in the display order so it
// stays contiguous.
func (r *Repository) RemoveImage(imageID string) (*ProductImage, error) {
	var image ProductImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, "id = ?", imageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrImageNotFound
			}
			return fmt.Errorf("failed to find product image: %w", err)
		}
		if err := tx.Delete(&ProductImage{}, "id = ?", imageID).Error; err != nil {
			return fmt.Errorf("failed to delete product image: %w", err)
		}
		err := tx.Model(&ProductImage{}).
			Where("product_id = ? AND display_order > ?", image.ProductID, image.DisplayOrder).
			Update("display_order", gorm.Expr("display_order - 1")).Error
		if err != nil {
			return fmt.Errorf("failed to resequence product images: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ReorderImage moves an image to the given position and rewrites the display
// order of every image of the product.
func (r *Repository) ReorderImage(imageID string, position int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var image ProductImage
		if err := tx.First(&image, "id = ?", imageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrImageNotFound
			}
			return fmt.Errorf("failed to find product image: %w", err)
		}

		var images []*ProductImage
		err := tx.Where("product_id = ?", image.ProductID).
			Order("display_order ASC").Find(&images).Error
		if err != nil {
			return fmt.Errorf("failed to find product images: %w", err)
		}

		if position < 0 {
			position = 0
		}
		if position > len(images)-1 {
			position = len(images) - 1
		}

		// Rebuild the sequence with the moved image at its new slot.
		reordered := make([]*ProductImage, 0, len(images))
		for _, img := range images {
			if img.ID != imageID {
				reordered = append(reordered, img)
			}
		}
		reordered = append(reordered[:position], append([]*ProductImage{&image}, reordered[position:]...)...)

		for i, img := range reordered {
			if img.DisplayOrder == i {
				continue
			}
			err := tx.Model(&ProductImage{}).Where("id = ?", img.ID).
				Update("display_order", i).Error
			if err != nil {
				return fmt.Errorf("failed to resequence product images: %w", err)
			}
		}
		return nil
	})
}
