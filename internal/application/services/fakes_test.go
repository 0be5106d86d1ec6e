package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/account"
	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/storage"
	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/pkg/filetype"
	"github.com/supanut9/store-it/pkg/query"
)

type FakeClientFactory struct {
	NewSessionClientFunc func(session string) (ports.SessionClient, error)
	NewAdminClientFunc   func() (ports.AdminClient, error)
}

func (f *FakeClientFactory) NewSessionClient(session string) (ports.SessionClient, error) {
	if f.NewSessionClientFunc == nil {
		return nil, errors.New("not used")
	}
	return f.NewSessionClientFunc(session)
}

func (f *FakeClientFactory) NewAdminClient() (ports.AdminClient, error) {
	if f.NewAdminClientFunc == nil {
		return nil, errors.New("not used")
	}
	return f.NewAdminClientFunc()
}

// fakeBackend is an in-memory backend shared by the session and admin
// clients it hands out.
type fakeBackend struct {
	store    *fakeStore
	files    *fakeFiles
	users    *fakeUsers
	accounts *fakeAccounts
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		store:    &fakeStore{objects: map[string][]byte{}},
		files:    &fakeFiles{docs: map[string]*file.Document{}},
		users:    &fakeUsers{byAccount: map[string]*user.User{}},
		accounts: &fakeAccounts{sessions: map[string]account.Account{}},
	}
}

func (b *fakeBackend) factory() *FakeClientFactory {
	return &FakeClientFactory{
		NewSessionClientFunc: func(session string) (ports.SessionClient, error) {
			if session == "" {
				return nil, errNoSession
			}
			return &fakeClient{b: b, session: session}, nil
		},
		NewAdminClientFunc: func() (ports.AdminClient, error) {
			return &fakeClient{b: b}, nil
		},
	}
}

var (
	errNoSession      = errors.New("no session")
	errInvalidSession = errors.New("invalid session")
)

type fakeClient struct {
	b       *fakeBackend
	session string
}

func (c *fakeClient) Account() ports.Accounts {
	return &fakeAccountHandle{a: c.b.accounts, session: c.session}
}
func (c *fakeClient) Databases() ports.Databases { return &fakeDatabases{b: c.b} }
func (c *fakeClient) Storage() storage.Store     { return c.b.store }
func (c *fakeClient) Avatars() ports.Avatars     { return fakeAvatars{} }

type fakeAccounts struct {
	sessions map[string]account.Account
}

type fakeAccountHandle struct {
	a       *fakeAccounts
	session string
}

func (h *fakeAccountHandle) Get(ctx context.Context) (*account.Account, error) {
	acc, ok := h.a.sessions[h.session]
	if !ok {
		return nil, errInvalidSession
	}
	return &acc, nil
}

func (h *fakeAccountHandle) CreateSession(ctx context.Context, acc account.Account) (string, error) {
	token := "session-" + acc.ID
	h.a.sessions[token] = acc
	return token, nil
}

type fakeAvatars struct{}

func (fakeAvatars) GetInitials(name string) string { return "initials:" + name }

type fakeDatabases struct {
	b *fakeBackend
}

func (d *fakeDatabases) Files(databaseID, collectionID string) file.Repository {
	d.b.files.lastCollection = databaseID + "/" + collectionID
	return d.b.files
}

func (d *fakeDatabases) Users(databaseID, collectionID string) user.Repository {
	return d.b.users
}

type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	createErr error
	deleteErr error
	creates   int
	deletes   []string
}

func (s *fakeStore) CreateFile(ctx context.Context, bucketID, fileID string, in storage.InputFile) (*storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return nil, s.createErr
	}
	b, err := io.ReadAll(in.Reader)
	if err != nil {
		return nil, err
	}
	s.objects[fileID] = b
	return &storage.Object{
		ID:           fileID,
		BucketID:     bucketID,
		Name:         in.Name,
		SizeOriginal: int64(len(b)),
		MimeType:     "text/plain; charset=utf-8",
	}, nil
}

func (s *fakeStore) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, fileID)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, fileID)
	return nil
}

func (s *fakeStore) GetFileView(ctx context.Context, bucketID, fileID string) (io.ReadCloser, *storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[fileID]
	if !ok {
		return nil, nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), &storage.Object{ID: fileID, BucketID: bucketID, SizeOriginal: int64(len(b))}, nil
}

func (s *fakeStore) FileExists(ctx context.Context, bucketID, fileID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[fileID]
	return ok, nil
}

type fakeFiles struct {
	mu             sync.Mutex
	docs           map[string]*file.Document
	createErr      error
	deleteErr      error
	creates        int
	lastQueries    []query.Query
	lastCollection string
}

func clone(d *file.Document) *file.Document {
	c := *d
	c.Users = slices.Clone(d.Users)
	return &c
}

func (f *fakeFiles) CreateFile(ctx context.Context, id string, req *file.Document) (*file.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.docs[id]; ok {
		return nil, file.ErrAlreadyExists
	}
	d := clone(req)
	d.ID = id
	f.docs[id] = d
	return clone(d), nil
}

func (f *fakeFiles) ListFiles(ctx context.Context, queries []query.Query) (*file.DocumentList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQueries = queries

	var (
		out   file.Documents
		limit = -1
	)
	for _, q := range queries {
		if q.Method == query.MethodLimit {
			limit, _ = q.Int()
		}
	}
	ids := make([]string, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		d := f.docs[id]
		ok, err := matchAll(d, queries)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, clone(d))
		}
	}
	total := len(out)
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return &file.DocumentList{Total: total, Documents: out}, nil
}

func (f *fakeFiles) UpdateFile(ctx context.Context, id string, patch file.Patch) (*file.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, file.ErrNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Users != nil {
		d.Users = slices.Clone(*patch.Users)
	}
	return clone(d), nil
}

func (f *fakeFiles) DeleteFile(ctx context.Context, id string) (*file.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	d, ok := f.docs[id]
	if !ok {
		return nil, file.ErrNotFound
	}
	delete(f.docs, id)
	return d, nil
}

// matchAll evaluates the filter queries against d the way the database does.
func matchAll(d *file.Document, queries []query.Query) (bool, error) {
	for _, q := range queries {
		if !q.IsFilter() {
			continue
		}
		ok, err := match(d, q)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func match(d *file.Document, q query.Query) (bool, error) {
	if q.Method == query.MethodOr {
		for _, sub := range q.Queries {
			if ok, err := match(d, sub); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}

	for _, v := range q.Values {
		want := fmt.Sprint(v)
		switch q.Attribute {
		case "owner":
			if d.Owner == want {
				return true, nil
			}
		case "users":
			if slices.Contains(d.Users, want) {
				return true, nil
			}
		case "type":
			if d.Type == filetype.Type(want) {
				return true, nil
			}
		case "name":
			if q.Method == query.MethodContains && strings.Contains(strings.ToLower(d.Name), strings.ToLower(want)) ||
				q.Method == query.MethodEqual && d.Name == want {
				return true, nil
			}
		default:
			return false, fmt.Errorf("%w: %s", file.ErrInvalidQuery, q.Attribute)
		}
	}
	return false, nil
}

type fakeUsers struct {
	byAccount map[string]*user.User
	err       error
}

func (u *fakeUsers) FetchUserByAccountID(ctx context.Context, accountID string) (*user.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.byAccount[accountID], nil
}

type fakeURLs struct{}

func (fakeURLs) GetPublicURL(fileID string) string { return "http://backend/view/" + fileID }
func (fakeURLs) GetBucket() string                 { return "uploads" }

type FakeRevalidator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *FakeRevalidator) Revalidate(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return r.err
}
