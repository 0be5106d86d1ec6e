package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/config"
	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/storage"
	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/internal/infrastructure/metrics"
	"github.com/supanut9/store-it/pkg/filetype"
)

var newID = uuid.NewString

type FileService struct {
	clients     ports.ClientFactory
	urls        ports.S3Client
	revalidator ports.Revalidator
	cfg         config.Backend
	logger      *zap.Logger
	mCounter    *prometheus.CounterVec
}

func NewFileService(
	clients ports.ClientFactory,
	urls ports.S3Client,
	revalidator ports.Revalidator,
	cfg config.Backend,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		clients:     clients,
		urls:        urls,
		revalidator: revalidator,
		cfg:         cfg,
		logger:      logger,
		mCounter:    mCounter,
	}
}

func (fs *FileService) files(admin ports.AdminClient) file.Repository {
	return admin.Databases().Files(fs.cfg.DatabaseID, fs.cfg.FilesCollectionID)
}

// UploadFile stores the payload, then records it. When the record cannot be
// written the stored object is deleted again before the error is returned.
func (fs *FileService) UploadFile(ctx context.Context, in file.UploadInput) (*file.Document, error) {
	admin, err := fs.clients.NewAdminClient()
	if err != nil {
		return nil, handleError(fs.logger, "failed to create admin client", err)
	}
	store := admin.Storage()

	obj, err := store.CreateFile(ctx, fs.cfg.BucketID, newID(), storage.InputFile{
		Name:   in.FileName,
		Size:   in.Size,
		Reader: in.Payload,
	})
	if err != nil {
		return nil, handleError(fs.logger, "failed to upload file", err, zap.String("file_name", in.FileName))
	}

	info := filetype.FromMIME(obj.Name, obj.MimeType)
	doc := &file.Document{
		Type:         info.Type,
		Name:         obj.Name,
		URL:          fs.urls.GetPublicURL(obj.ID),
		Extension:    info.Extension,
		Size:         obj.SizeOriginal,
		Owner:        in.OwnerID,
		AccountID:    in.AccountID,
		Users:        []string{},
		BucketFileID: obj.ID,
	}

	rollback := func() {
		// the request may already be cancelled; the object must go regardless
		if rbErr := store.DeleteFile(context.WithoutCancel(ctx), fs.cfg.BucketID, obj.ID); rbErr != nil {
			fs.logger.Error("failed to roll back uploaded object",
				zap.String("bucket_file_id", obj.ID), zap.Error(rbErr))
			fs.mCounter.WithLabelValues(metrics.RollbackFailures).Inc()
			return
		}
		fs.mCounter.WithLabelValues(metrics.UploadRollbacks).Inc()
	}

	created, err := fs.files(admin).CreateFile(ctx, newID(), doc)
	if err != nil {
		rollback()
		return nil, handleError(fs.logger, "failed to create file document", err,
			zap.String("bucket_file_id", obj.ID), zap.String("file_name", obj.Name))
	}

	fs.revalidate(ctx, in.Path)
	fs.mCounter.WithLabelValues(metrics.FilesUploaded).Inc()

	return created, nil
}

func (fs *FileService) GetFiles(ctx context.Context, u *user.User, params file.ListParams) (*file.DocumentList, error) {
	if u == nil {
		return nil, handleError(fs.logger, "failed to get files", user.ErrUserNotFound)
	}

	admin, err := fs.clients.NewAdminClient()
	if err != nil {
		return nil, handleError(fs.logger, "failed to create admin client", err)
	}

	list, err := fs.files(admin).ListFiles(ctx, buildFileQueries(u, params))
	if err != nil {
		return nil, handleError(fs.logger, "failed to get files", err, zap.String("user_id", u.ID))
	}

	return list, nil
}

func (fs *FileService) RenameFile(ctx context.Context, in file.RenameInput) (*file.Document, error) {
	admin, err := fs.clients.NewAdminClient()
	if err != nil {
		return nil, handleError(fs.logger, "failed to create admin client", err)
	}

	name := in.Name
	if in.Extension != "" {
		name = fmt.Sprintf("%s.%s", in.Name, in.Extension)
	}

	updated, err := fs.files(admin).UpdateFile(ctx, in.FileID, file.Patch{Name: &name})
	if err != nil {
		return nil, handleError(fs.logger, "failed to rename file", err, zap.String("file_id", in.FileID))
	}

	fs.revalidate(ctx, in.Path)
	fs.mCounter.WithLabelValues(metrics.FilesRenamed).Inc()

	return updated, nil
}

// UpdateFileUsers replaces the sharing list with exactly in.Emails.
func (fs *FileService) UpdateFileUsers(ctx context.Context, in file.UpdateUsersInput) (*file.Document, error) {
	admin, err := fs.clients.NewAdminClient()
	if err != nil {
		return nil, handleError(fs.logger, "failed to create admin client", err)
	}

	emails := in.Emails
	if emails == nil {
		emails = []string{}
	}

	updated, err := fs.files(admin).UpdateFile(ctx, in.FileID, file.Patch{Users: &emails})
	if err != nil {
		return nil, handleError(fs.logger, "failed to update file users", err, zap.String("file_id", in.FileID))
	}

	fs.revalidate(ctx, in.Path)
	fs.mCounter.WithLabelValues(metrics.FilesShared).Inc()

	return updated, nil
}

// DeleteFile removes the record first and the stored object only after
// that succeeded. A failed object delete leaves an orphan, which is logged
// and counted.
func (fs *FileService) DeleteFile(ctx context.Context, in file.DeleteInput) error {
	admin, err := fs.clients.NewAdminClient()
	if err != nil {
		return handleError(fs.logger, "failed to create admin client", err)
	}

	deleted, err := fs.files(admin).DeleteFile(ctx, in.FileID)
	if err != nil {
		return handleError(fs.logger, "failed to delete file document", err, zap.String("file_id", in.FileID))
	}
	fs.revalidate(ctx, in.Path)

	objectID := deleted.BucketFileID
	if objectID == "" {
		objectID = in.BucketFileID
	} else if in.BucketFileID != "" && in.BucketFileID != objectID {
		fs.logger.Warn("bucket file id does not match the deleted document",
			zap.String("file_id", in.FileID),
			zap.String("requested", in.BucketFileID),
			zap.String("stored", objectID))
	}

	if objectID == "" {
		fs.logger.Warn("deleted document has no stored object", zap.String("file_id", in.FileID))
		fs.mCounter.WithLabelValues(metrics.FilesDeleted).Inc()
		return nil
	}

	if err = admin.Storage().DeleteFile(ctx, fs.cfg.BucketID, objectID); err != nil {
		fs.mCounter.WithLabelValues(metrics.OrphanedObjects).Inc()
		return handleError(fs.logger, "failed to delete stored object", err,
			zap.String("file_id", in.FileID), zap.String("orphaned_bucket_file_id", objectID))
	}

	fs.mCounter.WithLabelValues(metrics.FilesDeleted).Inc()

	return nil
}

// OpenFile streams a stored object of the configured bucket.
func (fs *FileService) OpenFile(ctx context.Context, bucketID, fileID string) (io.ReadCloser, *storage.Object, error) {
	if bucketID != fs.cfg.BucketID {
		return nil, nil, fmt.Errorf("bucket %s: %w", bucketID, storage.ErrObjectNotFound)
	}

	admin, err := fs.clients.NewAdminClient()
	if err != nil {
		return nil, nil, handleError(fs.logger, "failed to create admin client", err)
	}

	body, obj, err := admin.Storage().GetFileView(ctx, bucketID, fileID)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, err
		}
		return nil, nil, handleError(fs.logger, "failed to open file", err, zap.String("bucket_file_id", fileID))
	}

	return body, obj, nil
}

func (fs *FileService) revalidate(ctx context.Context, path string) {
	if err := fs.revalidator.Revalidate(ctx, path); err != nil {
		fs.logger.Warn("failed to revalidate path", zap.String("path", path), zap.Error(err))
		fs.mCounter.WithLabelValues(metrics.RevalidateFailures).Inc()
	}
}
