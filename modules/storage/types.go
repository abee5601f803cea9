package storage

import "time"

// UploadRequest stores an image blob under a generated object name.
type UploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// UploadResponse is the response after storing an image.
type UploadResponse struct {
	ObjectName  string    `json:"object_name"`
	Size        uint64    `json:"size"`
	ContentType string    `json:"content_type"`
	StoredAt    time.Time `json:"stored_at"`
}

// GetObjectRequest fetches an image blob by object name.
type GetObjectRequest struct {
	ObjectName string `json:"object_name"`
}

// GetObjectResponse carries the blob and its metadata.
type GetObjectResponse struct {
	ObjectName  string `json:"object_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// DeleteObjectRequest removes an image blob.
type DeleteObjectRequest struct {
	ObjectName string `json:"object_name"`
}

// DeleteObjectResponse acknowledges blob removal.
type DeleteObjectResponse struct {
	Deleted    bool   `json:"deleted"`
	ObjectName string `json:"object_name"`
}
