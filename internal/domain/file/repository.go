package file

import (
	"context"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/user"
)

type Repository interface {
	FetchFiles(ctx context.Context, filter Filter) (Files, error)
	FetchFileByUUID(ctx context.Context, uuid uuid.UUID) (*File, error)
	CreateFile(ctx context.Context, ownerID user.ID, req *File) (*File, error)
	UpdateTags(ctx context.Context, uuid uuid.UUID, tags []string) (*File, error)
	DeleteFile(ctx context.Context, uuid uuid.UUID) (*File, error)
}
