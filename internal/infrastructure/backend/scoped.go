package backend

import (
	"context"
	"errors"

	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/account"
	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/internal/infrastructure/db/postgres"
	filerepo "github.com/supanut9/store-it/internal/infrastructure/db/postgres/file"
	userrepo "github.com/supanut9/store-it/internal/infrastructure/db/postgres/user"
	"github.com/supanut9/store-it/pkg/query"
)

var ErrAccessDenied = errors.New("access denied")

// SessionDatabases hands out repositories limited to what the session's
// account may see: files it owns or that are shared with its email, and
// its own user record. Only the owning account may create, change or
// delete a file.
type SessionDatabases struct {
	db      postgres.DB
	account ports.Accounts
}

func (d *SessionDatabases) Files(databaseID, collectionID string) file.Repository {
	return &sessionFiles{
		repo:    filerepo.NewRepository(d.db, databaseID, collectionID),
		account: d.account,
	}
}

func (d *SessionDatabases) Users(databaseID, collectionID string) user.Repository {
	return &sessionUsers{
		repo:    userrepo.NewRepository(d.db, databaseID, collectionID),
		account: d.account,
	}
}

type sessionFiles struct {
	repo    file.Repository
	account ports.Accounts
}

func visibleTo(acc *account.Account) query.Query {
	if acc.Email == "" {
		return query.Equal("accountId", acc.ID)
	}
	return query.Or(
		query.Equal("accountId", acc.ID),
		query.Contains("users", acc.Email),
	)
}

func (s *sessionFiles) CreateFile(ctx context.Context, id string, req *file.Document) (*file.Document, error) {
	acc, err := s.account.Get(ctx)
	if err != nil {
		return nil, err
	}
	if req.AccountID != acc.ID {
		return nil, ErrAccessDenied
	}
	return s.repo.CreateFile(ctx, id, req)
}

func (s *sessionFiles) ListFiles(ctx context.Context, queries []query.Query) (*file.DocumentList, error) {
	acc, err := s.account.Get(ctx)
	if err != nil {
		return nil, err
	}
	scoped := make([]query.Query, 0, len(queries)+1)
	scoped = append(scoped, visibleTo(acc))
	scoped = append(scoped, queries...)
	return s.repo.ListFiles(ctx, scoped)
}

// owned reports file.ErrNotFound for files the account does not own, so
// other accounts' ids are indistinguishable from missing ones.
func (s *sessionFiles) owned(ctx context.Context, id string) error {
	acc, err := s.account.Get(ctx)
	if err != nil {
		return err
	}
	list, err := s.repo.ListFiles(ctx, []query.Query{
		query.Equal("accountId", acc.ID),
		query.Equal(query.AttrID, id),
		query.Limit(1),
	})
	if err != nil {
		return err
	}
	if len(list.Documents) == 0 {
		return file.ErrNotFound
	}
	return nil
}

func (s *sessionFiles) UpdateFile(ctx context.Context, id string, patch file.Patch) (*file.Document, error) {
	if err := s.owned(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateFile(ctx, id, patch)
}

func (s *sessionFiles) DeleteFile(ctx context.Context, id string) (*file.Document, error) {
	if err := s.owned(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.DeleteFile(ctx, id)
}

type sessionUsers struct {
	repo    user.Repository
	account ports.Accounts
}

func (s *sessionUsers) FetchUserByAccountID(ctx context.Context, accountID string) (*user.User, error) {
	acc, err := s.account.Get(ctx)
	if err != nil {
		return nil, err
	}
	if accountID != acc.ID {
		return nil, ErrAccessDenied
	}
	return s.repo.FetchUserByAccountID(ctx, accountID)
}
