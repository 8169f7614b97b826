package noop_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"jewelscan/internal/port"
	"jewelscan/internal/storage/noop"
)

func TestNoopStorage_Upload(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	store := noop.NewNoopStorage(zap.New(core))

	out, err := store.Upload(context.Background(), port.UploadInput{
		Bucket: "imports", Key: "2026/10/a.xlsx", Body: strings.NewReader("abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, "noop://imports/2026/10/a.xlsx", out.Location)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, int64(3), entry.ContextMap()["bytes"])
}
