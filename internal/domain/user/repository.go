package user

import (
	"context"
)

type Repository interface {
	FetchUserByAccountID(ctx context.Context, accountID string) (*User, error)
}
