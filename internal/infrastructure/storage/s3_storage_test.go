package storage

import (
	"testing"

	infraconfig "github.com/hrportal/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStorageConfig() *infraconfig.StorageConfig {
	return &infraconfig.StorageConfig{
		Endpoint:        "localhost:9000",
		Region:          "eu-west-3",
		Bucket:          "hrportal-attachments",
		AccessKeyID:     "test-access",
		SecretAccessKey: "test-secret",
		KeyPrefix:       "messages",
		UsePathStyle:    true,
	}
}

func TestNewS3AttachmentStorage(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		store, err := NewS3AttachmentStorage(validStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, "hrportal-attachments", store.GetBucket())
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3AttachmentStorage(nil)
		assert.Error(t, err)
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.Bucket = ""
		_, err := NewS3AttachmentStorage(cfg)
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.AccessKeyID = ""
		_, err := NewS3AttachmentStorage(cfg)
		assert.Error(t, err)

		cfg = validStorageConfig()
		cfg.SecretAccessKey = ""
		_, err = NewS3AttachmentStorage(cfg)
		assert.Error(t, err)
	})
}

func TestObjectKey(t *testing.T) {
	t.Run("applies key prefix", func(t *testing.T) {
		store, err := NewS3AttachmentStorage(validStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, "messages/2026/receipt.pdf", store.ObjectKey("2026/receipt.pdf"))
	})

	t.Run("no prefix", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.KeyPrefix = ""
		store, err := NewS3AttachmentStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "receipt.pdf", store.ObjectKey("/receipt.pdf"))
	})
}
