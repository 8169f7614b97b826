package noop

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"jewelscan/internal/port"
)

type noopStorage struct {
	log *zap.Logger
}

// NewNoopStorage creates an ObjectStorage that discards uploads and logs their keys.
func NewNoopStorage(log *zap.Logger) port.ObjectStorage {
	return &noopStorage{log: log}
}

func (s *noopStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	n, err := io.Copy(io.Discard, input.Body)
	if err != nil {
		return nil, fmt.Errorf("noop upload: %w", err)
	}
	s.log.Debug("noop archive upload",
		zap.String("bucket", input.Bucket),
		zap.String("key", input.Key),
		zap.Int64("bytes", n),
	)
	return &port.UploadOutput{Location: fmt.Sprintf("noop://%s/%s", input.Bucket, input.Key)}, nil
}
