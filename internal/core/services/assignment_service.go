package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

// assignmentService links workers to plots for tasks. Creation checks both
// sides exist so an assignment never dangles.
type assignmentService struct {
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	workerRepo     portsrepo.WorkerRepositoryFacade
	plotRepo       portsrepo.PlotRepositoryFacade
}

// NewAssignmentService creates the assignment service.
func NewAssignmentService(assignmentRepo portsrepo.AssignmentRepositoryFacade, workerRepo portsrepo.WorkerRepositoryFacade, plotRepo portsrepo.PlotRepositoryFacade) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		workerRepo:     workerRepo,
		plotRepo:       plotRepo,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, creatorUserID string) (*domain.Assignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.workerRepo.FindWorkerByID(ctx, req.WorkerID); err != nil {
		return nil, err
	}
	if _, err := s.plotRepo.FindPlotByID(ctx, req.PlotID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignedDate := now
	if req.AssignedDate != nil {
		assignedDate = req.AssignedDate.UTC()
	}

	assignment := domain.Assignment{
		AssignmentID: uuid.NewString(),
		WorkerID:     req.WorkerID,
		PlotID:       req.PlotID,
		Task:         req.Task,
		Status:       domain.AssignmentAssigned,
		AssignedDate: assignedDate,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.assignmentRepo.SaveAssignment(ctx, assignment); err != nil {
		logger.Error("Failed to save assignment", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Assignment created",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("worker_id", req.WorkerID),
		slog.String("plot_id", req.PlotID))
	return &assignment, nil
}

func (s *assignmentService) GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	return s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
}

func (s *assignmentService) ListAssignmentsByWorker(ctx context.Context, workerID string, limit int, offset int) ([]domain.Assignment, error) {
	assignments, err := s.assignmentRepo.ListAssignmentsByWorker(ctx, workerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		return []domain.Assignment{}, nil
	}
	return assignments, nil
}

func (s *assignmentService) ListAssignmentsByPlot(ctx context.Context, plotID string, limit int, offset int) ([]domain.Assignment, error) {
	assignments, err := s.assignmentRepo.ListAssignmentsByPlot(ctx, plotID, limit, offset)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		return []domain.Assignment{}, nil
	}
	return assignments, nil
}

func (s *assignmentService) UpdateAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, userID string) (*domain.Assignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if req.Task != nil {
		assignment.Task = *req.Task
	}
	if req.Status != nil {
		status := domain.AssignmentStatus(strings.ToUpper(*req.Status))
		switch status {
		case domain.AssignmentAssigned, domain.AssignmentInProgress, domain.AssignmentCompleted:
			assignment.Status = status
		default:
			return nil, fmt.Errorf("%w: unknown assignment status %q", apperrors.ErrValidation, *req.Status)
		}
	}
	if req.Notes != nil {
		assignment.Notes = *req.Notes
	}
	assignment.LastUpdatedAt = time.Now().UTC()
	assignment.LastUpdatedBy = userID

	if err := s.assignmentRepo.UpdateAssignment(ctx, *assignment); err != nil {
		logger.Error("Failed to update assignment", slog.String("error", err.Error()), slog.String("assignment_id", assignmentID))
		return nil, err
	}

	logger.Info("Assignment updated", slog.String("assignment_id", assignmentID))
	return assignment, nil
}
