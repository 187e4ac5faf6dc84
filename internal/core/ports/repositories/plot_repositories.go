package repositories

import (
	"context"
	"time"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// PlotRepositoryFacade defines persistence operations for land plots.
type PlotRepositoryFacade interface {
	SavePlot(ctx context.Context, plot domain.Plot) error
	FindPlotByID(ctx context.Context, plotID string) (*domain.Plot, error)
	ListPlots(ctx context.Context, limit int, offset int) ([]domain.Plot, error)
	UpdatePlot(ctx context.Context, plot domain.Plot) error
	DeactivatePlot(ctx context.Context, plotID string, userID string, now time.Time) error
}

// AssignmentRepositoryFacade defines persistence operations for work assignments.
type AssignmentRepositoryFacade interface {
	SaveAssignment(ctx context.Context, assignment domain.Assignment) error
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	ListAssignmentsByWorker(ctx context.Context, workerID string, limit int, offset int) ([]domain.Assignment, error)
	ListAssignmentsByPlot(ctx context.Context, plotID string, limit int, offset int) ([]domain.Assignment, error)
	UpdateAssignment(ctx context.Context, assignment domain.Assignment) error
}
