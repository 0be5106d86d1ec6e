package backend

import (
	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/internal/infrastructure/db/postgres"
	filerepo "github.com/supanut9/store-it/internal/infrastructure/db/postgres/file"
	userrepo "github.com/supanut9/store-it/internal/infrastructure/db/postgres/user"
)

// Databases maps a database id to a Postgres schema and a collection id
// to a table inside it.
type Databases struct {
	db postgres.DB
}

func (d *Databases) Files(databaseID, collectionID string) file.Repository {
	return filerepo.NewRepository(d.db, databaseID, collectionID)
}

func (d *Databases) Users(databaseID, collectionID string) user.Repository {
	return userrepo.NewRepository(d.db, databaseID, collectionID)
}
