package services

import (
	"github.com/Aimecol/erp-sub001/internal/core/ledger"
	portsrepo "github.com/Aimecol/erp-sub001/internal/core/ports/repositories"
	portssvc "github.com/Aimecol/erp-sub001/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(engine *ledger.Engine, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(engine, repos.EntryRepo)

	return container
}
