package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FetchUserByAccountID(t *testing.T) {
	now := time.Now()
	boom := errors.New("db down")

	tests := []struct {
		name      string
		rows      *pgxmock.Rows
		returnErr error
		wantUser  bool
		wantErr   error
	}{
		{
			name: "found",
			rows: pgxmock.NewRows([]string{"id", "account_id", "email", "full_name", "avatar", "created_at", "updated_at"}).
				AddRow("u1", "acc1", "jane@example.com", "Jane Doe", "", now, now),
			wantUser: true,
		},
		{
			name:      "not found",
			returnErr: pgx.ErrNoRows,
		},
		{
			name:      "db error",
			returnErr: boom,
			wantErr:   boom,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			exp := mock.ExpectQuery(regexp.QuoteMeta(`FROM "app"."members"`)).WithArgs("acc1")
			if tt.returnErr != nil {
				exp.WillReturnError(tt.returnErr)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			repo := NewRepository(mock, "app", "members")
			u, err := repo.FetchUserByAccountID(context.Background(), "acc1")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.wantUser {
				require.NotNil(t, u)
				assert.Equal(t, "u1", u.ID)
				assert.Equal(t, "jane@example.com", u.Email)
				assert.Equal(t, "Jane Doe", u.FullName)
			} else {
				assert.Nil(t, u)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
