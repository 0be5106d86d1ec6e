package ports

import (
	"context"

	"github.com/supanut9/store-it/internal/domain/user"
)

type UserService interface {
	CurrentUser(ctx context.Context, session string) (*user.User, error)
	AvatarURL(u *user.User) string
}
