package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

// workerService manages worker records. The rollup fields are read-only
// here; only ledger operations move them.
type workerService struct {
	workerRepo portsrepo.WorkerRepositoryFacade
}

// NewWorkerService creates the worker service.
func NewWorkerService(workerRepo portsrepo.WorkerRepositoryFacade) portssvc.WorkerSvcFacade {
	return &workerService{workerRepo: workerRepo}
}

var _ portssvc.WorkerSvcFacade = (*workerService)(nil)

func (s *workerService) CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	worker := domain.Worker{
		WorkerID:       uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ContactNumber:  req.ContactNumber,
		TotalDebt:      decimal.Zero,
		CurrentBalance: decimal.Zero,
		TotalPaid:      decimal.Zero,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workerRepo.SaveWorker(ctx, worker); err != nil {
		logger.Error("Failed to save worker", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Worker created", slog.String("worker_id", worker.WorkerID))
	return &worker, nil
}

func (s *workerService) GetWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find worker", slog.String("error", err.Error()), slog.String("worker_id", workerID))
		}
		return nil, err
	}
	return worker, nil
}

func (s *workerService) ListWorkers(ctx context.Context, limit int, offset int) ([]domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	workers, err := s.workerRepo.ListWorkers(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list workers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	if workers == nil {
		return []domain.Worker{}, nil
	}
	return workers, nil
}

func (s *workerService) UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, userID string) (*domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		worker.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		worker.LastName = *req.LastName
	}
	if req.ContactNumber != nil {
		worker.ContactNumber = *req.ContactNumber
	}
	worker.LastUpdatedAt = time.Now().UTC()
	worker.LastUpdatedBy = userID

	if err := s.workerRepo.UpdateWorker(ctx, *worker); err != nil {
		logger.Error("Failed to update worker", slog.String("error", err.Error()), slog.String("worker_id", workerID))
		return nil, err
	}

	logger.Info("Worker updated", slog.String("worker_id", workerID))
	return worker, nil
}

func (s *workerService) DeactivateWorker(ctx context.Context, workerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workerRepo.DeactivateWorker(ctx, workerID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate worker", slog.String("error", err.Error()), slog.String("worker_id", workerID))
		}
		return err
	}

	logger.Info("Worker deactivated", slog.String("worker_id", workerID))
	return nil
}
