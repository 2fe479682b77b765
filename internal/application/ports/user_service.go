package ports

import (
	"context"

	"file-storage-api/internal/domain/user"
)

type UserService interface {
	FindUserByUUID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateProfile(ctx context.Context, uuid user.UUID, username, email *string) (*user.User, error)
}
