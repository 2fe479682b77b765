package auth

import (
	"file-storage-api/internal/interface/api/rest/dto/user"
)

type (
	RegisterResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	LoginResponse struct {
		Success bool      `json:"success"`
		Token   string    `json:"token"`
		User    user.User `json:"user"`
	}
)
