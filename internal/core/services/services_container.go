package services

import (
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/platform/config"
)

// NewServiceContainer creates the service container with its dependencies
// wired in order: the ledger first, since the import service issues debts
// through it rather than touching repositories itself.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.DebtRepo, repos.WorkerRepo)
	container.DebtImport = NewDebtImportService(container.Ledger)

	container.Worker = NewWorkerService(repos.WorkerRepo)
	container.Plot = NewPlotService(repos.PlotRepo)
	container.Assignment = NewAssignmentService(repos.AssignmentRepo, repos.WorkerRepo, repos.PlotRepo)

	container.Auth = NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}
