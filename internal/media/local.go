package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type LocalStore struct {
	root   string
	logger *zap.Logger
}

func NewLocalStore(root string, logger *zap.Logger) *LocalStore {
	if logger == nil {
		logger = zap.L()
	}
	return &LocalStore{root: root, logger: logger.Named("media.local")}
}

func (s *LocalStore) Save(ctx context.Context, key, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	path := filepath.Join(s.root, clean)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", fmt.Errorf("write media file %s: %w", key, err)
	}

	s.logger.Info("media stored", zap.String("key", key), zap.Int64("bytes", n))
	return strings.TrimPrefix(filepath.ToSlash(clean), "/"), nil
}
