package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

type plotService struct {
	plotRepo portsrepo.PlotRepositoryFacade
}

// NewPlotService creates the plot service.
func NewPlotService(plotRepo portsrepo.PlotRepositoryFacade) portssvc.PlotSvcFacade {
	return &plotService{plotRepo: plotRepo}
}

var _ portssvc.PlotSvcFacade = (*plotService)(nil)

func (s *plotService) CreatePlot(ctx context.Context, req dto.CreatePlotRequest, creatorUserID string) (*domain.Plot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	plot := domain.Plot{
		PlotID:       uuid.NewString(),
		Name:         req.Name,
		Location:     req.Location,
		AreaHectares: req.AreaHectares,
		Crop:         req.Crop,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.plotRepo.SavePlot(ctx, plot); err != nil {
		logger.Error("Failed to save plot", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Plot created", slog.String("plot_id", plot.PlotID))
	return &plot, nil
}

func (s *plotService) GetPlotByID(ctx context.Context, plotID string) (*domain.Plot, error) {
	return s.plotRepo.FindPlotByID(ctx, plotID)
}

func (s *plotService) ListPlots(ctx context.Context, limit int, offset int) ([]domain.Plot, error) {
	plots, err := s.plotRepo.ListPlots(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if plots == nil {
		return []domain.Plot{}, nil
	}
	return plots, nil
}

func (s *plotService) UpdatePlot(ctx context.Context, plotID string, req dto.UpdatePlotRequest, userID string) (*domain.Plot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	plot, err := s.plotRepo.FindPlotByID(ctx, plotID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plot.Name = *req.Name
	}
	if req.Location != nil {
		plot.Location = *req.Location
	}
	if req.AreaHectares != nil {
		plot.AreaHectares = *req.AreaHectares
	}
	if req.Crop != nil {
		plot.Crop = *req.Crop
	}
	plot.LastUpdatedAt = time.Now().UTC()
	plot.LastUpdatedBy = userID

	if err := s.plotRepo.UpdatePlot(ctx, *plot); err != nil {
		logger.Error("Failed to update plot", slog.String("error", err.Error()), slog.String("plot_id", plotID))
		return nil, err
	}

	logger.Info("Plot updated", slog.String("plot_id", plotID))
	return plot, nil
}

func (s *plotService) DeactivatePlot(ctx context.Context, plotID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.plotRepo.DeactivatePlot(ctx, plotID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate plot", slog.String("error", err.Error()), slog.String("plot_id", plotID))
		}
		return err
	}

	logger.Info("Plot deactivated", slog.String("plot_id", plotID))
	return nil
}
