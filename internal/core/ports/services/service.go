package services

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	Ledger     LedgerSvcFacade
	DebtImport DebtImportSvcFacade
	Worker     WorkerSvcFacade
	Plot       PlotSvcFacade
	Assignment AssignmentSvcFacade
	Auth       AuthSvcFacade
}
