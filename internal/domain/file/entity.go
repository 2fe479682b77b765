package file

import (
	"time"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/user"
)

type (
	// File is a catalog record describing one stored blob. LocationPointer is
	// the opaque handle (disk name or object key) the blob store resolves.
	File struct {
		UUID    uuid.UUID
		OwnerID *user.ID

		StoredName      string
		OriginalName    string
		MimeType        string
		SizeBytes       uint64
		LocationPointer string
		DownloadURL     string
		Tags            []string

		UploadedAt time.Time
	}
	Files []*File

	// Filter narrows a catalog listing. Tags use AND semantics; NameContains
	// is a case-insensitive literal substring match on the original name.
	Filter struct {
		NameContains string
		Tags         []string
	}
)

// HasTag reports whether the record carries the tag. Tags are stored
// normalized, so a plain equality check suffices.
func (f *File) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
