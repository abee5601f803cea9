package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// StoragePort defines the interface the API module uses to move image blobs.
type StoragePort interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (*UploadResponse, error)
	GetObject(ctx context.Context, objectName string) (*GetObjectResponse, error)
	DeleteObject(ctx context.Context, objectName string) error
}

// StorageAdapter implements StoragePort using the service container.
type StorageAdapter struct {
	container mono.ServiceContainer
}

// NewStorageAdapter creates a new StorageAdapter.
func NewStorageAdapter(container mono.ServiceContainer) *StorageAdapter {
	return &StorageAdapter{
		container: container,
	}
}

// Upload stores an image blob.
func (a *StorageAdapter) Upload(ctx context.Context, fileName, contentType string, data []byte) (*UploadResponse, error) {
	req := UploadRequest{
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	}
	var resp UploadResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"upload",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("storage upload request failed: %w", err)
	}

	return &resp, nil
}

// GetObject retrieves an image blob.
func (a *StorageAdapter) GetObject(ctx context.Context, objectName string) (*GetObjectResponse, error) {
	req := GetObjectRequest{ObjectName: objectName}
	var resp GetObjectResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-object",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("storage get-object request failed: %w", err)
	}

	return &resp, nil
}

// DeleteObject removes an image blob.
func (a *StorageAdapter) DeleteObject(ctx context.Context, objectName string) error {
	req := DeleteObjectRequest{ObjectName: objectName}
	var resp DeleteObjectResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-object",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("storage delete-object request failed: %w", err)
	}

	return nil
}
