package ports

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

type FileService interface {
	Upload(ctx context.Context, ownerUUID user.UUID, in *multipart.FileHeader, tags []string) (*file.File, error)
	List(ctx context.Context, nameContains string, tags []string) (file.Files, error)
	Download(ctx context.Context, id uuid.UUID) (*file.File, io.ReadCloser, error)
	Delete(ctx context.Context, requesterUUID user.UUID, id uuid.UUID) error
	AddTag(ctx context.Context, requesterUUID user.UUID, id uuid.UUID, tag string) (*file.File, error)
	RemoveTag(ctx context.Context, requesterUUID user.UUID, id uuid.UUID, tag string) (*file.File, error)
	EditTag(ctx context.Context, requesterUUID user.UUID, id uuid.UUID, oldTag, newTag string) (*file.File, error)
}
