package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// maxImageSize caps uploads at 10 MB.
const maxImageSize = 10 << 20

// StorageModule provides product image blob storage backed by NATS JetStream
// Object Store.
type StorageModule struct {
	store   *JetStreamObjectStore
	natsURL string
	bucket  string
}

// Compile-time interface checks.
var _ mono.Module = (*StorageModule)(nil)
var _ mono.ServiceProviderModule = (*StorageModule)(nil)
var _ mono.HealthCheckableModule = (*StorageModule)(nil)

// NewModule creates a new StorageModule.
func NewModule() *StorageModule {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	bucket := os.Getenv("NATS_BUCKET")
	if bucket == "" {
		bucket = "product-images"
	}
	return &StorageModule{
		natsURL: natsURL,
		bucket:  bucket,
	}
}

// Name returns the module name.
func (m *StorageModule) Name() string {
	return "storage"
}

// Start connects to NATS and binds the image bucket.
func (m *StorageModule) Start(ctx context.Context) error {
	store, err := NewJetStreamObjectStore(m.natsURL, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to create object store: %w", err)
	}

	if err := store.Init(ctx); err != nil {
		store.Close()
		return fmt.Errorf("failed to initialize object store: %w", err)
	}

	m.store = store
	log.Printf("[storage] Module started (NATS: %s, bucket: %s)", m.natsURL, m.bucket)
	return nil
}

// Stop shuts down the module.
func (m *StorageModule) Stop(_ context.Context) error {
	if m.store != nil {
		m.store.Close()
	}
	log.Println("[storage] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *StorageModule) Health(_ context.Context) mono.HealthStatus {
	healthy := m.store != nil && m.store.IsConnected()
	message := "connected"
	if !healthy {
		message = "disconnected"
	}
	return mono.HealthStatus{
		Healthy: healthy,
		Message: message,
		Details: map[string]any{
			"nats_url": m.natsURL,
			"bucket":   m.bucket,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *StorageModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"upload", func() error {
			return helper.RegisterTypedRequestReplyService(container, "upload", json.Unmarshal, json.Marshal, m.upload)
		}},
		{"get-object", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-object", json.Unmarshal, json.Marshal, m.getObject)
		}},
		{"delete-object", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete-object", json.Unmarshal, json.Marshal, m.deleteObject)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[storage] Registered services: services.storage.{upload,get-object,delete-object}")
	return nil
}

// upload stores a blob under a generated name. The original file name only
// contributes its extension; object names never collide.
func (m *StorageModule) upload(ctx context.Context, req UploadRequest, _ *mono.Msg) (UploadResponse, error) {
	if len(req.Data) == 0 {
		return UploadResponse{}, fmt.Errorf("image data is required")
	}
	if len(req.Data) > maxImageSize {
		return UploadResponse{}, fmt.Errorf("image exceeds maximum size of %d bytes", maxImageSize)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := uuid.New().String() + strings.ToLower(path.Ext(req.FileName))
	info, err := m.store.Put(ctx, objectName, req.Data, contentType)
	if err != nil {
		return UploadResponse{}, err
	}

	return UploadResponse{
		ObjectName:  info.Name,
		Size:        info.Size,
		ContentType: info.ContentType,
		StoredAt:    info.ModTime,
	}, nil
}

func (m *StorageModule) getObject(ctx context.Context, req GetObjectRequest, _ *mono.Msg) (GetObjectResponse, error) {
	if req.ObjectName == "" {
		return GetObjectResponse{}, fmt.Errorf("object name is required")
	}

	data, info, err := m.store.Get(ctx, req.ObjectName)
	if err != nil {
		return GetObjectResponse{}, err
	}

	return GetObjectResponse{
		ObjectName:  info.Name,
		ContentType: info.ContentType,
		Data:        data,
	}, nil
}

func (m *StorageModule) deleteObject(ctx context.Context, req DeleteObjectRequest, _ *mono.Msg) (DeleteObjectResponse, error) {
	if req.ObjectName == "" {
		return DeleteObjectResponse{}, fmt.Errorf("object name is required")
	}

	if err := m.store.Delete(ctx, req.ObjectName); err != nil {
		return DeleteObjectResponse{Deleted: false, ObjectName: req.ObjectName}, err
	}
	return DeleteObjectResponse{Deleted: true, ObjectName: req.ObjectName}, nil
}
