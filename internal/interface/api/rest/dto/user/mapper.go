package user

import (
	domain "file-storage-api/internal/domain/user"
)

func ToResponseUser(uDomain domain.User) User {
	var u = User{
		Username: uDomain.Username,
		Email:    uDomain.Email,
	}

	return u
}
