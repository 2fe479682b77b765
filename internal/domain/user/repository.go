package user

import (
	"context"
)

type Repository interface {
	FetchUserByUUID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateProfile(ctx context.Context, req User) (*User, error)
	UpdatePassword(ctx context.Context, uuid UUID, passwordHash string) error
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
}
