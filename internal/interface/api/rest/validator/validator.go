package validator

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"file-storage-api/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe
	maxUsernameLen = 50
	maxEmailLen    = 100
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateRegister reports every violated rule, not just the first.
func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	// Normalize
	username := strings.TrimSpace(r.Username)
	email := strings.ToLower(strings.TrimSpace(r.Email))

	// username (required + length)
	if username == "" {
		errs["username"] = "username is required"
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs["username"] = "username must be at most 50 characters"
	}

	// email (required + format + length)
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	} else if len(email) > maxEmailLen {
		errs["email"] = "email must be at most 100 characters"
	}

	// password (length + digit)
	if msg := passwordRule(r.Password); msg != "" {
		errs["password"] = msg
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateUpdateProfile(r auth.UpdateProfileRequest) map[string]string {
	errs := make(map[string]string)

	if r.Username == nil && r.Email == nil {
		errs["fields"] = "at least one of username or email is required"
	}
	if r.Username != nil {
		username := strings.TrimSpace(*r.Username)
		if username == "" {
			errs["username"] = "username must not be empty"
		} else if utf8.RuneCountInString(username) > maxUsernameLen {
			errs["username"] = "username must be at most 50 characters"
		}
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = "invalid email format"
		} else if len(email) > maxEmailLen {
			errs["email"] = "email must be at most 100 characters"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateChangePassword(r auth.ChangePasswordRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.CurrentPassword) == "" {
		errs["currentPassword"] = "current password is required"
	}
	if msg := passwordRule(r.NewPassword); msg != "" {
		errs["newPassword"] = msg
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateTag(tag string) string {
	if strings.TrimSpace(tag) == "" {
		return "tag is required"
	}
	return ""
}

func passwordRule(password string) string {
	l := utf8.RuneCountInString(password)
	switch {
	case l < minPasswordLen:
		return "password must be at least 8 characters"
	case l > maxPasswordLen:
		return "password must be at most 72 characters"
	case !containsDigit(password):
		return "password must contain a number"
	}
	return ""
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
