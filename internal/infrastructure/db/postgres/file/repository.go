package file

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainFile "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domainFile.Repository {
	return &Repository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes a search string safe to embed in an ILIKE pattern, so the
// substring match stays literal.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *Repository) FetchFiles(ctx context.Context, filter domainFile.Filter) (domainFile.Files, error) {
	tags := filter.Tags
	if tags == nil {
		tags = []string{}
	}

	rows, err := r.db.Query(ctx, SelectFiles, escapeLike(filter.NameContains), tags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.OwnerID,

			&f.StoredName,
			&f.OriginalName,
			&f.MimeType,
			&f.SizeBytes,
			&f.LocationPointer,
			&f.DownloadURL,
			&f.Tags,

			&f.UploadedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFileByUUID(ctx context.Context, id uuid.UUID) (*domainFile.File, error) {
	f := new(File)
	err := r.db.QueryRow(ctx, SelectFileByUUID, id.String()).Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerID,

		&f.StoredName,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.LocationPointer,
		&f.DownloadURL,
		&f.Tags,

		&f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) CreateFile(ctx context.Context, ownerID user.ID, req *domainFile.File) (*domainFile.File, error) {
	f := new(File)

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		ownerID, req.StoredName, req.OriginalName, req.MimeType, req.SizeBytes, req.LocationPointer, req.DownloadURL, tags,
	).Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerID,

		&f.StoredName,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.LocationPointer,
		&f.DownloadURL,
		&f.Tags,

		&f.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), err
}

// UpdateTags replaces the whole tag set. Concurrent mutations are
// last-write-wins at the row level.
func (r *Repository) UpdateTags(ctx context.Context, id uuid.UUID, tags []string) (*domainFile.File, error) {
	f := new(File)

	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRow(ctx, UpdateTagsByUUID, tags, id.String()).Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerID,

		&f.StoredName,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.LocationPointer,
		&f.DownloadURL,
		&f.Tags,

		&f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) (*domainFile.File, error) {
	f := new(File)
	err := r.db.QueryRow(ctx, DeleteFileByUUID, id.String()).Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerID,

		&f.StoredName,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.LocationPointer,
		&f.DownloadURL,
		&f.Tags,

		&f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}
