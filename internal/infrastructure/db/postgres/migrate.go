package postgres

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/supanut9/store-it/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Names substituted into the migrations by goose ENVSUB.
const (
	envSchema     = "STOREIT_SCHEMA"
	envUsersTable = "STOREIT_USERS_TABLE"
	envFilesTable = "STOREIT_FILES_TABLE"
)

// migrationEnv maps the configured database and collections to the
// schema and tables the migrations create.
func migrationEnv(b config.Backend) map[string]string {
	return map[string]string{
		envSchema:     b.DatabaseID,
		envUsersTable: b.UsersCollectionID,
		envFilesTable: b.FilesCollectionID,
	}
}

// Migrate applies the embedded schema migrations to the schema and tables
// named by b, the same ones the repositories address.
func Migrate(ctx context.Context, pool *pgxpool.Pool, b config.Backend) error {
	for k, v := range migrationEnv(b) {
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("migrate: set %s: %w", k, err)
		}
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
