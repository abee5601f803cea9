package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createProduct handles the catalog.create service request.
func (m *CatalogModule) createProduct(_ context.Context, req CreateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	if req.Title == "" {
		return ProductResponse{}, fmt.Errorf("title is required")
	}
	if req.UnitPrice < 0 {
		return ProductResponse{}, fmt.Errorf("unit price must be non-negative")
	}
	if req.StockQuantity < 0 {
		return ProductResponse{}, fmt.Errorf("stock quantity must be non-negative")
	}
	status := req.StockStatus
	if status == "" {
		status = StockInStock
	}
	if !validStockStatus(status) {
		return ProductResponse{}, fmt.Errorf("invalid stock status: %s", status)
	}

	product := &Product{
		ID:            uuid.New().String(),
		Title:         req.Title,
		SKU:           req.SKU,
		UnitPrice:     req.UnitPrice,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		StockStatus:   status,
		IsAvailable:   req.IsAvailable,
	}

	if err := m.repo.Create(product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to save product: %w", err)
	}

	return toProductResponse(product), nil
}

// getProduct handles the catalog.get service request.
func (m *CatalogModule) getProduct(_ context.Context, req GetProductRequest, _ *mono.Msg) (ProductResponse, error) {
	if req.ID == "" {
		return ProductResponse{}, fmt.Errorf("id is required")
	}

	product, err := m.repo.FindByID(req.ID)
	if err != nil {
		return ProductResponse{}, err
	}

	return toProductResponse(product), nil
}

// listProducts handles the catalog.list service request.
func (m *CatalogModule) listProducts(_ context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products, err := m.findProducts(req.AvailableOnly)
	if err != nil {
		return ListProductsResponse{}, err
	}
	return toListResponse(products), nil
}

// searchProducts handles the catalog.search service request. Matching is a
// case-insensitive character subsequence check on the title, the same match
// the admin product selector uses.
func (m *CatalogModule) searchProducts(_ context.Context, req SearchProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products, err := m.findProducts(req.AvailableOnly)
	if err != nil {
		return ListProductsResponse{}, err
	}
	return toListResponse(filterBySubsequence(products, strings.TrimSpace(req.Query))), nil
}

// updateProduct handles the catalog.update service request.
func (m *CatalogModule) updateProduct(_ context.Context, req UpdateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	if req.ID == "" {
		return ProductResponse{}, fmt.Errorf("id is required")
	}

	product, err := m.repo.FindByID(req.ID)
	if err != nil {
		return ProductResponse{}, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return ProductResponse{}, fmt.Errorf("title cannot be empty")
		}
		product.Title = *req.Title
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return ProductResponse{}, fmt.Errorf("unit price must be non-negative")
		}
		product.UnitPrice = *req.UnitPrice
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return ProductResponse{}, fmt.Errorf("stock quantity must be non-negative")
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.StockStatus != nil {
		if !validStockStatus(*req.StockStatus) {
			return ProductResponse{}, fmt.Errorf("invalid stock status: %s", *req.StockStatus)
		}
		product.StockStatus = *req.StockStatus
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := m.repo.Update(product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to update product: %w", err)
	}

	return toProductResponse(product), nil
}

// setAvailability handles the catalog.set-availability service request.
func (m *CatalogModule) setAvailability(_ context.Context, req SetAvailabilityRequest, _ *mono.Msg) (ProductResponse, error) {
	if req.ID == "" {
		return ProductResponse{}, fmt.Errorf("id is required")
	}

	if err := m.repo.SetAvailability(req.ID, req.IsAvailable); err != nil {
		return ProductResponse{}, err
	}

	product, err := m.repo.FindByID(req.ID)
	if err != nil {
		return ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// deleteProduct handles the catalog.delete service request.
func (m *CatalogModule) deleteProduct(_ context.Context, req DeleteProductRequest, _ *mono.Msg) (DeleteProductResponse, error) {
	if req.ID == "" {
		return DeleteProductResponse{Deleted: false}, fmt.Errorf("id is required")
	}

	if err := m.repo.Delete(req.ID); err != nil {
		return DeleteProductResponse{Deleted: false, ID: req.ID}, err
	}

	return DeleteProductResponse{Deleted: true, ID: req.ID}, nil
}

// addImage handles the catalog.add-image service request.
func (m *CatalogModule) addImage(_ context.Context, req AddImageRequest, _ *mono.Msg) (ImageResponse, error) {
	if req.ProductID == "" {
		return ImageResponse{}, fmt.Errorf("product id is required")
	}
	if req.ObjectName == "" {
		return ImageResponse{}, fmt.Errorf("object name is required")
	}

	// The product must exist before an image can be attached.
	if _, err := m.repo.FindByID(req.ProductID); err != nil {
		return ImageResponse{}, err
	}

	image := &ProductImage{
		ID:         uuid.New().String(),
		ProductID:  req.ProductID,
		ObjectName: req.ObjectName,
		ImageURL:   req.ImageURL,
	}
	if err := m.repo.AddImage(image); err != nil {
		return ImageResponse{}, fmt.Errorf("failed to add image: %w", err)
	}

	return toImageResponse(image), nil
}

// removeImage handles the catalog.remove-image service request.
func (m *CatalogModule) removeImage(_ context.Context, req RemoveImageRequest, _ *mono.Msg) (RemoveImageResponse, error) {
	if req.ImageID == "" {
		return RemoveImageResponse{}, fmt.Errorf("image id is required")
	}

	image, err := m.repo.RemoveImage(req.ImageID)
	if err != nil {
		return RemoveImageResponse{}, err
	}

	return RemoveImageResponse{Removed: true, ObjectName: image.ObjectName}, nil
}

// reorderImage handles the catalog.reorder-image service request.
func (m *CatalogModule) reorderImage(_ context.Context, req ReorderImageRequest, _ *mono.Msg) (ListImagesResponse, error) {
	if req.ImageID == "" {
		return ListImagesResponse{}, fmt.Errorf("image id is required")
	}

	if err := m.repo.ReorderImage(req.ImageID, req.Position); err != nil {
		return ListImagesResponse{}, err
	}

	var image ProductImage
	if err := m.db.First(&image, "id = ?", req.ImageID).Error; err != nil {
		return ListImagesResponse{}, fmt.Errorf("failed to reload image: %w", err)
	}

	images, err := m.repo.FindImages(image.ProductID)
	if err != nil {
		return ListImagesResponse{}, err
	}
	return toImagesResponse(images), nil
}

// listImages handles the catalog.list-images service request.
func (m *CatalogModule) listImages(_ context.Context, req ListImagesRequest, _ *mono.Msg) (ListImagesResponse, error) {
	if req.ProductID == "" {
		return ListImagesResponse{}, fmt.Errorf("product id is required")
	}

	images, err := m.repo.FindImages(req.ProductID)
	if err != nil {
		return ListImagesResponse{}, err
	}
	return toImagesResponse(images), nil
}

func (m *CatalogModule) findProducts(availableOnly bool) ([]*Product, error) {
	if availableOnly {
		return m.repo.FindAvailable()
	}
	return m.repo.FindAll()
}

func validStockStatus(status string) bool {
	switch status {
	case StockInStock, StockLowStock, StockOutOfStock:
		return true
	}
	return false
}

// toProductResponse converts a Product entity to a ProductResponse.
func toProductResponse(product *Product) ProductResponse {
	images := make([]ImageResponse, 0, len(product.Images))
	for i := range product.Images {
		images = append(images, toImageResponse(&product.Images[i]))
	}
	return ProductResponse{
		ID:            product.ID,
		Title:         product.Title,
		SKU:           product.SKU,
		UnitPrice:     product.UnitPrice,
		Description:   product.Description,
		StockQuantity: product.StockQuantity,
		StockStatus:   product.StockStatus,
		IsAvailable:   product.IsAvailable,
		Images:        images,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func toImageResponse(image *ProductImage) ImageResponse {
	return ImageResponse{
		ID:           image.ID,
		ProductID:    image.ProductID,
		ObjectName:   image.ObjectName,
		ImageURL:     image.ImageURL,
		DisplayOrder: image.DisplayOrder,
	}
}

func toImagesResponse(images []*ProductImage) ListImagesResponse {
	resp := ListImagesResponse{Images: make([]ImageResponse, 0, len(images))}
	for _, img := range images {
		resp.Images = append(resp.Images, toImageResponse(img))
	}
	return resp
}

func toListResponse(products []*Product) ListProductsResponse {
	resp := ListProductsResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    len(products),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	return resp
}
