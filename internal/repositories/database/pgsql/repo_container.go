package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DebtRepo:       newPgxDebtRepository(dbPool),
		WorkerRepo:     newPgxWorkerRepository(dbPool),
		PlotRepo:       newPgxPlotRepository(dbPool),
		AssignmentRepo: newPgxAssignmentRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
