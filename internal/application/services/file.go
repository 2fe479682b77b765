package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-storage-api/config"
	"file-storage-api/internal/application/ports"
	domain "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/mq"
	fileDTO "file-storage-api/internal/interface/api/rest/dto/file"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrBlobMissing     = errors.New("file content missing from storage")
	ErrTagNotFound     = errors.New("tag not found")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// FileService coordinates the blob store and the catalog so the two never
// diverge irrecoverably: blob writes happen before catalog inserts, catalog
// inserts that fail trigger a compensating blob delete, and deletes remove
// the blob before the record.
type FileService struct {
	logger         *zap.Logger
	blobs          ports.BlobStore
	fileRepository domain.Repository
	userRepository user.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	maxSizeBytes   int64
	allowedTypes   map[string]struct{}
	sharedFiles    bool
}

func NewFileService(
	logger *zap.Logger,
	blobs ports.BlobStore,
	fileRepository domain.Repository,
	userRepository user.Repository,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	uploadCfg config.Upload,
	storageCfg config.Storage,
) ports.FileService {
	var allowed map[string]struct{}
	if len(uploadCfg.AllowedTypes) > 0 {
		allowed = make(map[string]struct{}, len(uploadCfg.AllowedTypes))
		for _, t := range uploadCfg.AllowedTypes {
			allowed[t] = struct{}{}
		}
	}

	return &FileService{
		logger:         logger,
		blobs:          blobs,
		fileRepository: fileRepository,
		userRepository: userRepository,
		mq:             rbMQ,
		mCounter:       mCounter,
		maxSizeBytes:   uploadCfg.MaxSizeBytes,
		allowedTypes:   allowed,
		sharedFiles:    storageCfg.SharedFiles,
	}
}

// Upload validates constraints before any byte is written, stores the blob
// and then the catalog record. A failed insert deletes the just-written blob
// so no orphan stays behind.
func (fs *FileService) Upload(ctx context.Context, ownerUUID user.UUID, in *multipart.FileHeader, tags []string) (*domain.File, error) {
	if in.Size > fs.maxSizeBytes {
		return nil, ErrFileTooLarge
	}
	contentType := in.Header.Get("Content-Type")
	if !fs.typeAllowed(contentType) {
		return nil, ErrUnsupportedType
	}

	ownerID, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	f, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := fs.blobs.Put(ctx, f, in.Size, contentType, in.Filename)
	if err != nil {
		return nil, fmt.Errorf("blob put: %w", err)
	}

	out, err := fs.fileRepository.CreateFile(ctx, ownerID, &domain.File{
		StoredName:      obj.StoredName,
		OriginalName:    filepath.Base(in.Filename),
		MimeType:        contentType,
		SizeBytes:       uint64(in.Size),
		LocationPointer: obj.LocationPointer,
		DownloadURL:     obj.DownloadURL,
		Tags:            NormalizeTags(tags),
	})
	if err != nil {
		if delErr := fs.blobs.Delete(ctx, obj.LocationPointer); delErr != nil {
			// Orphaned blob: the reconciliation story for this is manual.
			fs.logger.Error("compensating blob delete failed",
				zap.String("pointer", obj.LocationPointer), zap.Error(delErr))
		}
		return nil, fmt.Errorf("catalog insert: %w", err)
	}

	fs.publishEvent(http.MethodPost, out)
	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return out, nil
}

func (fs *FileService) List(ctx context.Context, nameContains string, tags []string) (domain.Files, error) {
	return fs.fileRepository.FetchFiles(ctx, domain.Filter{
		NameContains: strings.TrimSpace(nameContains),
		Tags:         NormalizeTags(tags),
	})
}

func (fs *FileService) Download(ctx context.Context, id uuid.UUID) (*domain.File, io.ReadCloser, error) {
	rec, err := fs.fileRepository.FetchFileByUUID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, ErrFileNotFound
	}

	rc, err := fs.blobs.Get(ctx, rec.LocationPointer)
	if err != nil {
		if errors.Is(err, ports.ErrBlobNotFound) {
			return nil, nil, ErrBlobMissing
		}
		return nil, nil, err
	}

	fs.mCounter.WithLabelValues("files_downloaded_total").Inc()

	return rec, rc, nil
}

// Delete removes the blob first, then the record: a crash in between leaves
// an orphaned record pointing at nothing, which is detectable, rather than a
// leaked blob, which is not.
func (fs *FileService) Delete(ctx context.Context, requesterUUID user.UUID, id uuid.UUID) error {
	rec, err := fs.fileRepository.FetchFileByUUID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrFileNotFound
	}
	if err = fs.authorize(ctx, requesterUUID, rec); err != nil {
		return err
	}

	if err = fs.blobs.Delete(ctx, rec.LocationPointer); err != nil && !errors.Is(err, ports.ErrBlobNotFound) {
		return fmt.Errorf("blob delete: %w", err)
	}

	out, err := fs.fileRepository.DeleteFile(ctx, id)
	if err != nil {
		return err
	}
	if out == nil {
		return ErrFileNotFound
	}

	fs.publishEvent(http.MethodDelete, out)
	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

// AddTag is idempotent: adding a tag the record already carries returns the
// record unchanged.
func (fs *FileService) AddTag(ctx context.Context, requesterUUID user.UUID, id uuid.UUID, tag string) (*domain.File, error) {
	rec, err := fs.fetchForTagEdit(ctx, requesterUUID, id)
	if err != nil {
		return nil, err
	}

	t := NormalizeTag(tag)
	if rec.HasTag(t) {
		return rec, nil
	}

	return fs.saveTags(ctx, id, append(rec.Tags, t))
}

func (fs *FileService) RemoveTag(ctx context.Context, requesterUUID user.UUID, id uuid.UUID, tag string) (*domain.File, error) {
	rec, err := fs.fetchForTagEdit(ctx, requesterUUID, id)
	if err != nil {
		return nil, err
	}

	t := NormalizeTag(tag)
	if !rec.HasTag(t) {
		return nil, ErrTagNotFound
	}

	tags := make([]string, 0, len(rec.Tags))
	for _, existing := range rec.Tags {
		if existing != t {
			tags = append(tags, existing)
		}
	}

	return fs.saveTags(ctx, id, tags)
}

func (fs *FileService) EditTag(ctx context.Context, requesterUUID user.UUID, id uuid.UUID, oldTag, newTag string) (*domain.File, error) {
	rec, err := fs.fetchForTagEdit(ctx, requesterUUID, id)
	if err != nil {
		return nil, err
	}

	o, n := NormalizeTag(oldTag), NormalizeTag(newTag)
	if !rec.HasTag(o) {
		return nil, ErrTagNotFound
	}

	tags := make([]string, 0, len(rec.Tags))
	for _, existing := range rec.Tags {
		if existing == o {
			existing = n
		}
		tags = append(tags, existing)
	}

	return fs.saveTags(ctx, id, NormalizeTags(tags))
}

func (fs *FileService) fetchForTagEdit(ctx context.Context, requesterUUID user.UUID, id uuid.UUID) (*domain.File, error) {
	rec, err := fs.fileRepository.FetchFileByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrFileNotFound
	}
	if err = fs.authorize(ctx, requesterUUID, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (fs *FileService) saveTags(ctx context.Context, id uuid.UUID, tags []string) (*domain.File, error) {
	out, err := fs.fileRepository.UpdateTags(ctx, id, tags)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrFileNotFound
	}

	fs.publishEvent(http.MethodPatch, out)
	fs.mCounter.WithLabelValues("files_tags_updated_total").Inc()

	return out, nil
}

// authorize enforces per-user ownership when shared mode is off. Denials look
// identical to a missing record so file ids cannot be probed.
func (fs *FileService) authorize(ctx context.Context, requesterUUID user.UUID, rec *domain.File) error {
	if fs.sharedFiles {
		return nil
	}

	requesterID, err := fs.userRepository.FetchInternalID(ctx, requesterUUID)
	if err != nil {
		return err
	}
	if rec.OwnerID == nil || *rec.OwnerID != requesterID {
		return ErrFileNotFound
	}

	return nil
}

func (fs *FileService) typeAllowed(contentType string) bool {
	if fs.allowedTypes == nil {
		return true
	}
	_, ok := fs.allowedTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return ok
}

func (fs *FileService) publishEvent(method string, rec *domain.File) {
	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Method:  method,
		FileID:  rec.UUID.String(),
		Payload: fileDTO.ToResponseFile(*rec),
	}
}

// NormalizeTag lowercases and trims a tag so matching is case-insensitive.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags normalizes every tag, dropping empties and duplicates while
// keeping order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
