package file

import (
	"time"

	"github.com/google/uuid"

	userDB "file-storage-api/internal/infrastructure/db/postgres/user"
)

type (
	File struct {
		ID      uint64
		UUID    uuid.UUID
		OwnerID *userDB.ID

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
)
