package pgsql

import (
	portsrepo "github.com/Aimecol/erp-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo: entryRepo,
	}
}
