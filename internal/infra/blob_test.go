package infra

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"investigacion/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlob_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewLocalBlob(filepath.Join(t.TempDir(), "uploads"))
	data := []byte("%PDF-1.4 contenido")

	path, err := b.Put(ctx, "a1b2.pdf", data, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(b.Dir(), "a1b2.pdf"), path)

	got, err := b.Get(ctx, "a1b2.pdf")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, b.Delete(ctx, "a1b2.pdf"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, b.Delete(ctx, "a1b2.pdf"), "deleting a missing blob is a no-op")
}

func TestLocalBlob_RefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	b := NewLocalBlob(t.TempDir())
	_, err := b.Put(ctx, "x.pdf", []byte("1"), "")
	require.NoError(t, err)
	_, err = b.Put(ctx, "x.pdf", []byte("2"), "")
	assert.Error(t, err)
}

func TestLocalBlob_RejectsTraversal(t *testing.T) {
	b := NewLocalBlob(t.TempDir())
	for _, name := range []string{"../x.pdf", "a/b.pdf", "", ".env"} {
		_, err := b.Put(context.Background(), name, []byte("x"), "")
		assert.ErrorIs(t, err, ErrNombreBlobInvalido, name)
	}
}

func TestNewBlob_UnknownDriver(t *testing.T) {
	_, err := NewBlob(context.Background(), &config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}
