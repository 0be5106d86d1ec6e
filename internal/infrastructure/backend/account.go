package backend

import (
	"context"
	"errors"
	"time"

	"github.com/supanut9/store-it/internal/domain/account"
	"github.com/supanut9/store-it/internal/infrastructure/jwt"
)

const sessionTTL = 30 * 24 * time.Hour

type Account struct {
	tokens  *jwt.Service
	session string
}

// Get returns the account the session was issued for.
func (a *Account) Get(ctx context.Context) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.session == "" {
		return nil, ErrNoSession
	}

	claims, err := a.tokens.ValidateToken(a.session)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	return &account.Account{ID: claims.AccountID, Email: claims.Email}, nil
}

// CreateSession issues a session token for acc.
func (a *Account) CreateSession(ctx context.Context, acc account.Account) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.tokens.GenerateJWT(acc.ID, acc.Email, sessionTTL)
}
