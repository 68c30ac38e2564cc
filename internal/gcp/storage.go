package gcp

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"

	"github.com/Lllllllleong/docanalytics/internal/models"
)

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ObjectReader fetches uploaded objects from Cloud Storage.
type ObjectReader struct {
	client *storage.Client
}

func NewObjectReader(client *storage.Client) *ObjectReader {
	return &ObjectReader{client: client}
}

// Fetch downloads the object's bytes together with its size and
// last-modified metadata. A missing object surfaces as
// storage.ErrObjectNotExist in the wrapped error.
func (r *ObjectReader) Fetch(ctx context.Context, bucket, name string) (*models.StoredObject, error) {
	reader, err := r.client.Bucket(bucket).Object(name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open gs://%s/%s: %w", bucket, name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", bucket, name, err)
	}

	return &models.StoredObject{
		Data:         data,
		Size:         reader.Attrs.Size,
		LastModified: reader.Attrs.LastModified,
	}, nil
}
