package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	DebtRepo       DebtRepositoryWithTx
	WorkerRepo     WorkerRepositoryFacade
	PlotRepo       PlotRepositoryFacade
	AssignmentRepo AssignmentRepositoryFacade
	UserRepo       UserRepositoryFacade
}
