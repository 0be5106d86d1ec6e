package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/account"
	"github.com/supanut9/store-it/internal/domain/user"
)

func TestUserService_CurrentUser(t *testing.T) {
	jane := &user.User{ID: "u1", AccountID: "acc-1", Email: "jane@example.com", FullName: "Jane Doe"}
	dbErr := errors.New("db down")

	tests := []struct {
		name    string
		session func(b *fakeBackend) string
		usersDB error
		want    *user.User
		wantErr error
	}{
		{
			name:    "no session",
			session: func(b *fakeBackend) string { return "" },
			wantErr: errNoSession,
		},
		{
			name:    "unknown session",
			session: func(b *fakeBackend) string { return "forged" },
			wantErr: errInvalidSession,
		},
		{
			name: "linked user",
			session: func(b *fakeBackend) string {
				s, _ := (&fakeClient{b: b}).Account().CreateSession(context.Background(), account.Account{ID: "acc-1"})
				return s
			},
			want: jane,
		},
		{
			name: "account without user",
			session: func(b *fakeBackend) string {
				s, _ := (&fakeClient{b: b}).Account().CreateSession(context.Background(), account.Account{ID: "acc-2"})
				return s
			},
			wantErr: user.ErrUserNotFound,
		},
		{
			name: "users collection error",
			session: func(b *fakeBackend) string {
				s, _ := (&fakeClient{b: b}).Account().CreateSession(context.Background(), account.Account{ID: "acc-1"})
				return s
			},
			usersDB: dbErr,
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			b.users.byAccount["acc-1"] = jane
			b.users.err = tt.usersDB
			svc := NewUserService(b.factory(), testBackendCfg, zap.NewNop())

			got, err := svc.CurrentUser(context.Background(), tt.session(b))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserService_AvatarURL(t *testing.T) {
	b := newFakeBackend()
	svc := NewUserService(b.factory(), testBackendCfg, zap.NewNop())

	assert.Equal(t, "https://cdn/jane.png", svc.AvatarURL(&user.User{FullName: "Jane Doe", Avatar: "https://cdn/jane.png"}))
	assert.Equal(t, "initials:Jane Doe", svc.AvatarURL(&user.User{FullName: "Jane Doe"}))

	noAdmin := NewUserService(&FakeClientFactory{
		NewAdminClientFunc: func() (ports.AdminClient, error) { return nil, errors.New("no key") },
	}, testBackendCfg, zap.NewNop())
	assert.Equal(t, "", noAdmin.AvatarURL(&user.User{FullName: "Jane Doe"}))
}
