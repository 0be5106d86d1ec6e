package ports

import (
	"context"
	"io"

	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/storage"
	"github.com/supanut9/store-it/internal/domain/user"
)

type FileService interface {
	UploadFile(ctx context.Context, in file.UploadInput) (*file.Document, error)
	GetFiles(ctx context.Context, u *user.User, params file.ListParams) (*file.DocumentList, error)
	RenameFile(ctx context.Context, in file.RenameInput) (*file.Document, error)
	UpdateFileUsers(ctx context.Context, in file.UpdateUsersInput) (*file.Document, error)
	DeleteFile(ctx context.Context, in file.DeleteInput) error
	OpenFile(ctx context.Context, bucketID, fileID string) (io.ReadCloser, *storage.Object, error)
}
