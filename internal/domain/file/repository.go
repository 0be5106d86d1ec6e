package file

import (
	"context"

	"github.com/supanut9/store-it/pkg/query"
)

type Repository interface {
	CreateFile(ctx context.Context, id string, req *Document) (*Document, error)
	ListFiles(ctx context.Context, queries []query.Query) (*DocumentList, error)
	UpdateFile(ctx context.Context, id string, patch Patch) (*Document, error)
	DeleteFile(ctx context.Context, id string) (*Document, error)
}
