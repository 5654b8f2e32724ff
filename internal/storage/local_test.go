package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveDeleteExists(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(filepath.Join(dir, "community_art"))
	ctx := context.Background()

	require.NoError(t, l.Save(ctx, "jane_fanart_1700000000000.png", strings.NewReader("png-bytes")))

	exists, err := l.Exists(ctx, "jane_fanart_1700000000000.png")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := os.ReadFile(filepath.Join(dir, "community_art", "jane_fanart_1700000000000.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, l.Delete(ctx, "jane_fanart_1700000000000.png"))

	exists, err = l.Exists(ctx, "jane_fanart_1700000000000.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalDeleteMissingIsNoop(t *testing.T) {
	l := NewLocal(t.TempDir())
	assert.NoError(t, l.Delete(context.Background(), "never-existed.png"))
}

func TestLocalRejectsUnsafeFilenames(t *testing.T) {
	l := NewLocal(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../escape.png", "a/b.png", "a\\b.png", "nul\x00.png"} {
		err := l.Save(ctx, name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidFilename, "name %q", name)

		err = l.Delete(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidFilename, "name %q", name)
	}
}

func TestValidFilename(t *testing.T) {
	assert.True(t, ValidFilename("jane_art_1700000000000.jpg"))
	assert.False(t, ValidFilename("dir/file.jpg"))
	assert.False(t, ValidFilename(".."))
	assert.False(t, ValidFilename(""))
}
