package messaging

import (
	"context"
	"time"
)

// AttachmentStorage abstracts the object store holding message attachments.
// Uploads and downloads happen directly between the browser and the store
// through presigned URLs; the portal only brokers the URLs and keys.
type AttachmentStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for the given storage key.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned GET URL for the given storage key.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject removes an attachment from the store.
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists reports whether the attachment has actually been uploaded.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
