package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/infrastructure/db/postgres"
	"github.com/supanut9/store-it/pkg/query"
)

type Repository struct {
	db    postgres.DB
	table string
}

// NewRepository binds the repository to the files collection stored in
// schema.table.
func NewRepository(db postgres.DB, schema, table string) file.Repository {
	return &Repository{db: db, table: pgx.Identifier{schema, table}.Sanitize()}
}

func scanFile(row pgx.Row, extra ...any) (*File, error) {
	f := new(File)
	dest := []any{
		&f.ID,
		&f.Type,
		&f.Name,
		&f.URL,
		&f.Extension,
		&f.Size,
		&f.Owner,
		&f.AccountID,
		&f.Users,
		&f.BucketFileID,

		&f.CreatedAt,
		&f.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *Repository) CreateFile(ctx context.Context, id string, req *file.Document) (*file.Document, error) {
	users := req.Users
	if users == nil {
		users = []string{}
	}

	f, err := scanFile(r.db.QueryRow(
		ctx,
		fmt.Sprintf(insertFile, r.table),
		id, string(req.Type), req.Name, req.URL, req.Extension, req.Size,
		req.Owner, req.AccountID, users, req.BucketFileID,
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, file.ErrAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) ListFiles(ctx context.Context, queries []query.Query) (*file.DocumentList, error) {
	c, err := compile(queries)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, c.sql(fmt.Sprintf(selectFiles, r.table)), c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		fs    Files
		total int
	)
	for rows.Next() {
		f, err := scanFile(rows, &total)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &file.DocumentList{Total: total, Documents: fromDBModels(fs)}, nil
}

func (r *Repository) UpdateFile(ctx context.Context, id string, patch file.Patch) (*file.Document, error) {
	var users *[]string
	if patch.Users != nil {
		us := *patch.Users
		if us == nil {
			us = []string{}
		}
		users = &us
	}

	f, err := scanFile(r.db.QueryRow(ctx, fmt.Sprintf(updateFile, r.table), id, patch.Name, users))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, file.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteFile(ctx context.Context, id string) (*file.Document, error) {
	f, err := scanFile(r.db.QueryRow(ctx, fmt.Sprintf(deleteFile, r.table), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, file.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(f), nil
}
