package ports

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned by blob store adapters when a location pointer
// does not resolve to a stored object.
var ErrBlobNotFound = errors.New("blob not found")

// BlobObject is the handle a successful Put returns.
type BlobObject struct {
	StoredName      string
	LocationPointer string
	DownloadURL     string
}

// BlobStore abstracts byte storage. A Put either stores the whole payload and
// returns a pointer, or leaves nothing reachable behind.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, size int64, contentType, originalName string) (*BlobObject, error)
	Get(ctx context.Context, pointer string) (io.ReadCloser, error)
	Delete(ctx context.Context, pointer string) error
	Bucket() string
}
