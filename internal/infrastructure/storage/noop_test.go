package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpReceiptStorage(t *testing.T) {
	s := NewNoOpReceiptStorage()
	ctx := context.Background()

	t.Run("upload yields a receipt key", func(t *testing.T) {
		key, err := s.Upload(ctx, []byte("fake-png-bytes"), "image/png")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "receipts/"))
	})

	t.Run("upload rejects empty data", func(t *testing.T) {
		_, err := s.Upload(ctx, nil, "image/png")
		assert.Error(t, err)
	})

	t.Run("delete succeeds for any key", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "receipts/2026-08-27/some-key"))
	})

	t.Run("delete rejects empty key", func(t *testing.T) {
		assert.Error(t, s.Delete(ctx, ""))
	})

	t.Run("exists is always false", func(t *testing.T) {
		exists, err := s.ObjectExists(ctx, "receipts/2026-08-27/some-key")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestReceiptObjectKey(t *testing.T) {
	a := ReceiptObjectKey()
	b := ReceiptObjectKey()

	assert.True(t, strings.HasPrefix(a, "receipts/"))
	assert.NotEqual(t, a, b)
}
