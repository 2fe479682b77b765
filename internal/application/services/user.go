package services

import (
	"context"
	"strings"

	"file-storage-api/internal/application/ports"
	domain "file-storage-api/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
}

func NewUserService(userRepository domain.Repository) ports.UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

func (us *UserService) FindUserByUUID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return u, nil
}

// UpdateProfile changes username and/or email; nil fields keep their current
// value.
func (us *UserService) UpdateProfile(ctx context.Context, uuid domain.UUID, username, email *string) (*domain.User, error) {
	current, err := us.userRepository.FetchUserByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	req := *current
	if username != nil {
		req.Username = strings.TrimSpace(*username)
	}
	if email != nil {
		req.Email = NormalizeEmail(*email)
	}

	u, err := us.userRepository.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	return u, nil
}
