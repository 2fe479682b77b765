package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/jwt"
)

const (
	bcryptCost = bcrypt.DefaultCost
	tokenTTL   = time.Hour
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	userRepository user.Repository
	jwtService     *jwt.Service
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository user.Repository,
	jwtService *jwt.Service,
	mCounter *prometheus.CounterVec,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mCounter:       mCounter,
	}
}

// Register derives a one-way credential from the password and stores the new
// user. The plaintext never leaves this function.
func (as *AuthService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	h := string(hash)

	u, err := as.userRepository.CreateUser(ctx, user.User{
		Username:     strings.TrimSpace(username),
		Email:        NormalizeEmail(email),
		PasswordHash: &h,
	})
	if err != nil {
		return nil, err
	}

	as.mCounter.WithLabelValues("users_registered_total").Inc()

	return u, nil
}

// Login deliberately reports the same error for an unknown email and a wrong
// password.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := as.userRepository.FetchUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil || u.PasswordHash == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Email, tokenTTL)
	if err != nil {
		return "", nil, ErrFailedToGenerateToken
	}

	as.mCounter.WithLabelValues("users_logged_in_total").Inc()

	return token, u, nil
}

func (as *AuthService) ChangePassword(ctx context.Context, uuid user.UUID, currentPassword, newPassword string) error {
	u, err := as.userRepository.FetchUserByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if u == nil || u.PasswordHash == nil {
		return ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	return as.userRepository.UpdatePassword(ctx, uuid, string(hash))
}

// NormalizeEmail lowercases and trims an email before any comparison or
// storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
