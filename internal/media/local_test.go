package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-hrsuit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStore_Save(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, zap.NewNop())

	path, err := store.Save(context.Background(), "profiles/abc.png", "image/png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "profiles/abc.png", path)
	data, err := os.ReadFile(filepath.Join(root, "profiles", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store := NewLocalStore(t.TempDir(), zap.NewNop())

	_, err := store.Save(context.Background(), "../escape.png", "image/png", strings.NewReader("x"))

	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	t.Run("local default", func(t *testing.T) {
		store, err := NewStore(context.Background(), config.MediaConfig{Root: t.TempDir()}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &LocalStore{}, store)
	})

	t.Run("gcs without bucket", func(t *testing.T) {
		_, err := NewStore(context.Background(), config.MediaConfig{Backend: BackendGCS}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewStore(context.Background(), config.MediaConfig{Backend: "s3"}, zap.NewNop())
		assert.Error(t, err)
	})
}
