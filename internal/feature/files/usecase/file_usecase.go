// Package usecase implements company-scoped file management on top of an
// object storage backend.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"workspace_backend/internal/feature/files/domain/entity"
)

// FileRepository defines persistence for file metadata rows. Every query
// is scoped by company so one tenant can never observe another's files.
type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	FindByID(ctx context.Context, companyID, id uint) (*entity.File, error)
	ListByCompany(ctx context.Context, companyID uint) ([]entity.File, error)
	Delete(ctx context.Context, companyID, id uint) error
}

// ObjectStorage is the port to the blob backend. Keys are opaque to the
// caller; the usecase mints them.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// MembershipChecker reports whether a user belongs to a company.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID, companyID uint) (bool, error)
}

// KeyMinter produces a unique object key suffix for a new upload.
type KeyMinter func() string

// Upload carries the payload and metadata of a new file.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileWithURL pairs a metadata row with a presigned download URL.
type FileWithURL struct {
	File entity.File
	URL  string
}

// FileUsecase implements file operations for company members.
type FileUsecase struct {
	files      FileRepository
	storage    ObjectStorage
	members    MembershipChecker
	mintKey    KeyMinter
	urlExpires time.Duration
}

// Option configures a FileUsecase.
type Option func(*FileUsecase)

// WithURLExpiry overrides how long presigned download URLs stay valid.
func WithURLExpiry(d time.Duration) Option {
	return func(u *FileUsecase) { u.urlExpires = d }
}

// NewFileUsecase creates a new FileUsecase.
func NewFileUsecase(files FileRepository, storage ObjectStorage, members MembershipChecker, mintKey KeyMinter, opts ...Option) *FileUsecase {
	u := &FileUsecase{
		files:      files,
		storage:    storage,
		members:    members,
		mintKey:    mintKey,
		urlExpires: 15 * time.Minute,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload stores the payload in object storage and records a metadata row.
// The object is written first; if the row insert fails the object is
// removed again so storage does not accumulate orphans.
func (u *FileUsecase) Upload(ctx context.Context, userID, companyID uint, in Upload) (*entity.File, error) {
	if err := u.requireMember(ctx, userID, companyID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}

	key := fmt.Sprintf("companies/%d/%s", companyID, u.mintKey())
	if err := u.storage.Put(ctx, key, in.Body, in.ContentType, in.Size); err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	file := &entity.File{
		CompanyID:   companyID,
		UploaderID:  userID,
		Name:        name,
		ObjectKey:   key,
		ContentType: in.ContentType,
		Size:        in.Size,
	}
	if err := u.files.Create(ctx, file); err != nil {
		if delErr := u.storage.Delete(ctx, key); delErr != nil {
			slog.Error("failed to remove object after insert failure", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return file, nil
}

// List returns the company's files, each with a presigned download URL.
func (u *FileUsecase) List(ctx context.Context, userID, companyID uint) ([]FileWithURL, error) {
	if err := u.requireMember(ctx, userID, companyID); err != nil {
		return nil, err
	}

	files, err := u.files.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	out := make([]FileWithURL, 0, len(files))
	for i := range files {
		url, err := u.storage.PresignGet(ctx, files[i].ObjectKey, u.urlExpires)
		if err != nil {
			return nil, fmt.Errorf("presign %q: %w", files[i].ObjectKey, err)
		}
		out = append(out, FileWithURL{File: files[i], URL: url})
	}
	return out, nil
}

// Delete removes the object and then the metadata row. A storage failure
// aborts the delete so the row keeps pointing at a live object.
func (u *FileUsecase) Delete(ctx context.Context, userID, companyID, fileID uint) error {
	if err := u.requireMember(ctx, userID, companyID); err != nil {
		return err
	}

	file, err := u.files.FindByID(ctx, companyID, fileID)
	if err != nil {
		return err
	}
	if err := u.storage.Delete(ctx, file.ObjectKey); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return u.files.Delete(ctx, companyID, fileID)
}

func (u *FileUsecase) requireMember(ctx context.Context, userID, companyID uint) error {
	ok, err := u.members.IsMember(ctx, userID, companyID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
