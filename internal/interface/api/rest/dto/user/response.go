package user

type (
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	ProfileResponse struct {
		Success bool `json:"success"`
		User    User `json:"user"`
	}
	UpdateProfileResponse struct {
		Message string `json:"message"`
		User    User   `json:"user"`
	}
)
