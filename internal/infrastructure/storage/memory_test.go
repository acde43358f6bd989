package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryObjectStorage()

	t.Run("upload and exists", func(t *testing.T) {
		require.NoError(t, store.Upload(ctx, "orders/abc.pdf", []byte("%PDF-1.4"), "application/pdf"))

		exists, err := store.ObjectExists(ctx, "orders/abc.pdf")
		require.NoError(t, err)
		assert.True(t, exists)

		data, ok := store.Object("orders/abc.pdf")
		require.True(t, ok)
		assert.Equal(t, []byte("%PDF-1.4"), data)
	})

	t.Run("download url for stored object", func(t *testing.T) {
		url, expiresAt, err := store.GenerateDownloadURL(ctx, "orders/abc.pdf", time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "orders/abc.pdf")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("download url for missing object fails", func(t *testing.T) {
		_, _, err := store.GenerateDownloadURL(ctx, "missing.pdf", time.Minute)
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteObject(ctx, "orders/abc.pdf"))

		exists, err := store.ObjectExists(ctx, "orders/abc.pdf")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		assert.Error(t, store.Upload(ctx, "", nil, ""))
		assert.Error(t, store.DeleteObject(ctx, ""))
	})
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	_, err := NewS3ObjectStorage(nil)
	assert.Error(t, err)
}
