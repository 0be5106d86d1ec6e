package ports

import (
	"context"

	"github.com/supanut9/store-it/internal/domain/account"
	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/storage"
	"github.com/supanut9/store-it/internal/domain/user"
)

type (
	// ClientFactory hands out backend clients. Session clients act on behalf
	// of a signed in account, admin clients with the project secret.
	ClientFactory interface {
		NewSessionClient(session string) (SessionClient, error)
		NewAdminClient() (AdminClient, error)
	}

	SessionClient interface {
		Account() Accounts
		Databases() Databases
	}

	AdminClient interface {
		Account() Accounts
		Databases() Databases
		Storage() storage.Store
		Avatars() Avatars
	}

	Accounts interface {
		Get(ctx context.Context) (*account.Account, error)
		CreateSession(ctx context.Context, a account.Account) (string, error)
	}

	Databases interface {
		Files(databaseID, collectionID string) file.Repository
		Users(databaseID, collectionID string) user.Repository
	}

	Avatars interface {
		GetInitials(name string) string
	}
)
