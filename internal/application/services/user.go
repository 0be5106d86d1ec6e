package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/supanut9/store-it/config"
	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/user"
)

type UserService struct {
	clients ports.ClientFactory
	cfg     config.Backend
	logger  *zap.Logger
}

func NewUserService(
	clients ports.ClientFactory,
	cfg config.Backend,
	logger *zap.Logger,
) ports.UserService {
	return &UserService{
		clients: clients,
		cfg:     cfg,
		logger:  logger,
	}
}

// CurrentUser resolves the user linked to the account of session.
func (us *UserService) CurrentUser(ctx context.Context, session string) (*user.User, error) {
	sess, err := us.clients.NewSessionClient(session)
	if err != nil {
		return nil, err
	}

	acc, err := sess.Account().Get(ctx)
	if err != nil {
		return nil, err
	}

	u, err := sess.Databases().
		Users(us.cfg.DatabaseID, us.cfg.UsersCollectionID).
		FetchUserByAccountID(ctx, acc.ID)
	if err != nil {
		return nil, handleError(us.logger, "failed to fetch current user", err, zap.String("account_id", acc.ID))
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	return u, nil
}

// AvatarURL is the stored avatar, or an initials avatar when there is none.
func (us *UserService) AvatarURL(u *user.User) string {
	if u.Avatar != "" {
		return u.Avatar
	}

	admin, err := us.clients.NewAdminClient()
	if err != nil {
		us.logger.Warn("no admin client for avatar", zap.Error(err))
		return ""
	}
	return admin.Avatars().GetInitials(u.FullName)
}
