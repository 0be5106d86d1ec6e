package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/internal/infrastructure/db/postgres"
)

type Repository struct {
	db    postgres.DB
	table string
}

func NewRepository(db postgres.DB, schema, table string) user.Repository {
	return &Repository{db: db, table: pgx.Identifier{schema, table}.Sanitize()}
}

// FetchUserByAccountID returns nil, nil when no user is linked to the account.
func (r *Repository) FetchUserByAccountID(ctx context.Context, accountID string) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, fmt.Sprintf(SelectUserByAccountID, r.table), accountID).Scan(
		&u.ID,
		&u.AccountID,
		&u.Email,
		&u.FullName,
		&u.Avatar,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
