package backend

import (
	"errors"
	"strings"

	"github.com/supanut9/store-it/config"
	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/storage"
	"github.com/supanut9/store-it/internal/infrastructure/db/postgres"
	"github.com/supanut9/store-it/internal/infrastructure/jwt"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
	ErrNoSecretKey    = errors.New("backend secret key is not configured")
)

// Factory builds clients over one shared pool and object store. It holds
// no per request state.
type Factory struct {
	cfg    config.Backend
	db     postgres.DB
	store  storage.Store
	tokens *jwt.Service
}

func NewFactory(cfg config.Backend, db postgres.DB, store storage.Store) *Factory {
	return &Factory{
		cfg:    cfg,
		db:     db,
		store:  store,
		tokens: jwt.New(cfg.SecretKey, cfg.ProjectID),
	}
}

type SessionClient struct {
	session string
	f       *Factory
}

// NewSessionClient returns ErrNoSession for an empty session. The token is
// only verified when the account is read.
func (f *Factory) NewSessionClient(session string) (ports.SessionClient, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return nil, ErrNoSession
	}
	return &SessionClient{session: session, f: f}, nil
}

func (c *SessionClient) Account() ports.Accounts {
	return &Account{tokens: c.f.tokens, session: c.session}
}

// Databases is limited to the session's account; see SessionDatabases.
func (c *SessionClient) Databases() ports.Databases {
	return &SessionDatabases{db: c.f.db, account: c.Account()}
}

type AdminClient struct {
	f *Factory
}

func (f *Factory) NewAdminClient() (ports.AdminClient, error) {
	if f.cfg.SecretKey == "" {
		return nil, ErrNoSecretKey
	}
	return &AdminClient{f: f}, nil
}

func (c *AdminClient) Account() ports.Accounts {
	return &Account{tokens: c.f.tokens}
}

func (c *AdminClient) Databases() ports.Databases {
	return &Databases{db: c.f.db}
}

func (c *AdminClient) Storage() storage.Store { return c.f.store }

func (c *AdminClient) Avatars() ports.Avatars {
	return &Avatars{endpoint: strings.TrimRight(c.f.cfg.Endpoint, "/"), project: c.f.cfg.ProjectID}
}

var _ ports.ClientFactory = (*Factory)(nil)
