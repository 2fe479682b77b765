package user

import (
	domain "file-storage-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:         model.UUID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}
