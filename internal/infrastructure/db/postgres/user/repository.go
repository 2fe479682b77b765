package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/db/postgres"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already in use")
	ErrUsernameAlreadyExists = errors.New("username already in use")
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByUUID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByUUID, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByEmail, email).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Username, req.Email, req.PasswordHash,
	).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if dupErr := uniqueViolation(err); dupErr != nil {
			return nil, dupErr
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) UpdateProfile(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, UpdateProfileByUUID,
		req.Username, req.Email, req.UUID,
	).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if dupErr := uniqueViolation(err); dupErr != nil {
			return nil, dupErr
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) UpdatePassword(ctx context.Context, uuid user.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, UpdatePasswordByUUID, passwordHash, uuid.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found by uuid %s", uuid.String())
	}

	return nil
}

func (r *Repository) FetchInternalID(ctx context.Context, uuid user.UUID) (user.ID, error) {
	var id uint64
	if err := r.db.QueryRow(ctx, SelectIdByUUID, uuid.String()).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user not found by uuid %s: %w", uuid.String(), err)
		}
		return 0, err
	}

	return user.ID(id), nil
}

// uniqueViolation maps a unique-constraint error to the matching sentinel, or
// nil when err is something else.
func uniqueViolation(err error) error {
	switch postgres.UniqueConstraintName(err) {
	case "users_email_key":
		return ErrEmailAlreadyExists
	case "users_username_key":
		return ErrUsernameAlreadyExists
	case "":
		return nil
	default:
		return ErrEmailAlreadyExists
	}
}
