package storage

import (
	"context"
	"errors"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
)

// NoOpReceiptStorage is used when screenshot storage is disabled: receipts
// are submitted as bare references and there is nothing to upload or delete.
type NoOpReceiptStorage struct{}

// NewNoOpReceiptStorage creates a new NoOpReceiptStorage
func NewNoOpReceiptStorage() *NoOpReceiptStorage {
	return &NoOpReceiptStorage{}
}

var _ appescrow.ReceiptStorage = (*NoOpReceiptStorage)(nil)

// Upload accepts the data and reports a synthetic key without storing anything
func (s *NoOpReceiptStorage) Upload(_ context.Context, data []byte, _ string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("screenshot data is required")
	}
	return ReceiptObjectKey(), nil
}

// Delete is a no-op that always succeeds
func (s *NoOpReceiptStorage) Delete(_ context.Context, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}
	return nil
}

// ObjectExists always reports false
func (s *NoOpReceiptStorage) ObjectExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}
