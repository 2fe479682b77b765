package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"file-storage-api/config"
	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/infrastructure/blob"
)

// Store keeps blobs as flat files in a managed directory. Stored names embed a
// nanosecond timestamp, so concurrent uploads of equally named files never
// collide.
type Store struct {
	logger *zap.Logger
	dir    string
}

func New(logger *zap.Logger, cfg config.Storage) (*Store, error) {
	if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	logger.Info("local blob store ready", zap.String("dir", cfg.LocalDir))

	return &Store{
		logger: logger,
		dir:    cfg.LocalDir,
	}, nil
}

func (s *Store) Put(ctx context.Context, r io.Reader, size int64, contentType, originalName string) (*ports.BlobObject, error) {
	storedName := fmt.Sprintf("%d-%s",
		time.Now().UnixNano(),
		blob.EnsureExt(blob.SafeFileName(originalName), contentType),
	)

	// Write to a temp file in the same directory, then rename: a pointer never
	// resolves to a partially written blob.
	tmp, err := os.CreateTemp(s.dir, "."+storedName+".*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = io.Copy(tmp, r); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("write blob: %w", err)
	}

	if err = os.Rename(tmpName, filepath.Join(s.dir, storedName)); err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("finalize blob: %w", err)
	}

	return &ports.BlobObject{
		StoredName:      storedName,
		LocationPointer: storedName,
	}, nil
}

func (s *Store) Get(ctx context.Context, pointer string) (io.ReadCloser, error) {
	p, err := s.resolve(pointer)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrBlobNotFound
		}
		return nil, err
	}

	return f, nil
}

func (s *Store) Delete(ctx context.Context, pointer string) error {
	p, err := s.resolve(pointer)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ports.ErrBlobNotFound
		}
		return err
	}

	return nil
}

func (s *Store) Bucket() string { return s.dir }

// resolve rejects pointers that would escape the managed directory.
func (s *Store) resolve(pointer string) (string, error) {
	if pointer == "" || pointer != filepath.Base(pointer) || strings.HasPrefix(pointer, ".") {
		return "", ports.ErrBlobNotFound
	}
	return filepath.Join(s.dir, pointer), nil
}
