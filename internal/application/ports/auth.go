package ports

import (
	"context"

	"file-storage-api/internal/domain/user"
)

type Auth interface {
	Register(ctx context.Context, username, email, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	ChangePassword(ctx context.Context, uuid user.UUID, currentPassword, newPassword string) error
}
