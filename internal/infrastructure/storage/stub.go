// Package storage provides object storage implementations for message attachments.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	messagingapp "github.com/hrportal/backend/internal/application/messaging"
)

// StubAttachmentStorage is an in-memory AttachmentStorage for development
// and tests. Generated URLs are fake; uploads are tracked by key only.
type StubAttachmentStorage struct {
	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string

	mu      sync.Mutex
	deleted map[string]bool
}

// NewStubAttachmentStorage creates a new StubAttachmentStorage
func NewStubAttachmentStorage() *StubAttachmentStorage {
	return &StubAttachmentStorage{
		BaseURL: "https://storage.example.com",
		deleted: make(map[string]bool),
	}
}

var _ messagingapp.AttachmentStorage = (*StubAttachmentStorage)(nil)

// GenerateUploadURL generates a fake presigned upload URL
func (s *StubAttachmentStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, _ string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL generates a fake presigned download URL
func (s *StubAttachmentStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// DeleteObject marks the key as deleted
func (s *StubAttachmentStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	s.deleted[storageKey] = true
	s.mu.Unlock()
	return nil
}

// ObjectExists reports true for any key that has not been deleted, which
// keeps the attachment confirmation flow working in development.
func (s *StubAttachmentStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.deleted[storageKey], nil
}
