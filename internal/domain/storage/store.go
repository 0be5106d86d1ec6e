package storage

import (
	"context"
	"io"
)

// Store keeps file payloads in buckets.
type Store interface {
	CreateFile(ctx context.Context, bucketID, fileID string, in InputFile) (*Object, error)
	DeleteFile(ctx context.Context, bucketID, fileID string) error
	GetFileView(ctx context.Context, bucketID, fileID string) (io.ReadCloser, *Object, error)
	FileExists(ctx context.Context, bucketID, fileID string) (bool, error)
}
