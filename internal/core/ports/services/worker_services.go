package services

import (
	"context"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
)

// WorkerSvcFacade manages worker records. Rollup fields are read-only here;
// only ledger operations move them.
type WorkerSvcFacade interface {
	CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error)
	GetWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)
	ListWorkers(ctx context.Context, limit int, offset int) ([]domain.Worker, error)
	UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, userID string) (*domain.Worker, error)
	DeactivateWorker(ctx context.Context, workerID string, userID string) error
}

// PlotSvcFacade manages land plot records.
type PlotSvcFacade interface {
	CreatePlot(ctx context.Context, req dto.CreatePlotRequest, creatorUserID string) (*domain.Plot, error)
	GetPlotByID(ctx context.Context, plotID string) (*domain.Plot, error)
	ListPlots(ctx context.Context, limit int, offset int) ([]domain.Plot, error)
	UpdatePlot(ctx context.Context, plotID string, req dto.UpdatePlotRequest, userID string) (*domain.Plot, error)
	DeactivatePlot(ctx context.Context, plotID string, userID string) error
}

// AssignmentSvcFacade manages work assignments.
type AssignmentSvcFacade interface {
	CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, creatorUserID string) (*domain.Assignment, error)
	GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	ListAssignmentsByWorker(ctx context.Context, workerID string, limit int, offset int) ([]domain.Assignment, error)
	ListAssignmentsByPlot(ctx context.Context, plotID string, limit int, offset int) ([]domain.Assignment, error)
	UpdateAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, userID string) (*domain.Assignment, error)
}
