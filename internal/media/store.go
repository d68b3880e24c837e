package media

import (
	"context"
	"fmt"
	"io"

	"go-hrsuit/internal/config"

	"go.uber.org/zap"
)

const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// Store persists uploaded files under a slash-separated key and returns the
// path to record on the owning entity.
type Store interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

func NewStore(ctx context.Context, cfg config.MediaConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "", BackendLocal:
		return NewLocalStore(cfg.Root, logger), nil
	case BackendGCS:
		return NewGCSStore(ctx, cfg.Bucket, cfg.CredentialsFile, logger)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}
