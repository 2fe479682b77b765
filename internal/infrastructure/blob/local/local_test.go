package local

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-storage-api/config"
	"file-storage-api/internal/application/ports"
)

func newStoreForTest(t *testing.T) *Store {
	t.Helper()

	s, err := New(zap.NewNop(), config.Storage{LocalDir: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestStore_PutGetRoundtrip(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()
	payload := []byte("the quick brown fox")

	obj, err := s.Put(ctx, strings.NewReader(string(payload)), int64(len(payload)), "text/plain", "notes.txt")
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, obj.StoredName, obj.LocationPointer)
	assert.True(t, strings.HasSuffix(obj.StoredName, "notes.txt"))

	rc, err := s.Get(ctx, obj.LocationPointer)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestStore_PutNeverCollides(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()

	a, err := s.Put(ctx, strings.NewReader("first"), 5, "text/plain", "same-name.txt")
	require.NoError(t, err)
	b, err := s.Put(ctx, strings.NewReader("second"), 6, "text/plain", "same-name.txt")
	require.NoError(t, err)

	assert.NotEqual(t, a.LocationPointer, b.LocationPointer)

	rc, err := s.Get(ctx, a.LocationPointer)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestStore_PutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(zap.NewNop(), config.Storage{LocalDir: dir})
	require.NoError(t, err)

	_, err = s.Put(context.Background(), strings.NewReader("x"), 1, "text/plain", "a.txt")
	require.NoError(t, err)

	entries, err := filepath.Glob(filepath.Join(dir, ".*"))
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be renamed away or removed")
}

func TestStore_Delete(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()

	obj, err := s.Put(ctx, strings.NewReader("bye"), 3, "text/plain", "bye.txt")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, obj.LocationPointer))

	_, err = s.Get(ctx, obj.LocationPointer)
	require.ErrorIs(t, err, ports.ErrBlobNotFound)

	err = s.Delete(ctx, obj.LocationPointer)
	require.ErrorIs(t, err, ports.ErrBlobNotFound)
}

func TestStore_RejectsEscapingPointers(t *testing.T) {
	s := newStoreForTest(t)
	ctx := context.Background()

	pointers := []string{
		"",
		"../etc/passwd",
		"sub/dir.txt",
		"..",
		".hidden",
	}

	for _, p := range pointers {
		p := p
		t.Run("pointer "+p, func(t *testing.T) {
			_, err := s.Get(ctx, p)
			require.ErrorIs(t, err, ports.ErrBlobNotFound)

			err = s.Delete(ctx, p)
			require.ErrorIs(t, err, ports.ErrBlobNotFound)
		})
	}
}
