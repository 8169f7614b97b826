package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jewelscan/internal/config"
	"jewelscan/internal/storage"
)

func TestNew(t *testing.T) {
	log := zap.NewNop()

	store, err := storage.New(context.Background(), &config.StorageConfig{Provider: "noop"}, log)
	require.NoError(t, err)
	assert.NotNil(t, store)

	store, err = storage.New(context.Background(), &config.StorageConfig{Provider: "s3", Region: "ap-south-1"}, log)
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = storage.New(context.Background(), &config.StorageConfig{Provider: "gcs"}, log)
	assert.ErrorContains(t, err, "unknown provider")
}
