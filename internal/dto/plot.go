package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// CreatePlotRequest registers a land plot.
type CreatePlotRequest struct {
	Name         string          `json:"name" binding:"required"`
	Location     string          `json:"location"`
	AreaHectares decimal.Decimal `json:"areaHectares"`
	Crop         string          `json:"crop"`
}

// UpdatePlotRequest edits a plot.
type UpdatePlotRequest struct {
	Name         *string          `json:"name"`
	Location     *string          `json:"location"`
	AreaHectares *decimal.Decimal `json:"areaHectares"`
	Crop         *string          `json:"crop"`
}

// PlotResponse is the API shape of a plot.
type PlotResponse struct {
	PlotID       string          `json:"plotID"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	AreaHectares decimal.Decimal `json:"areaHectares"`
	Crop         string          `json:"crop"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func ToPlotResponse(p *domain.Plot) PlotResponse {
	return PlotResponse{
		PlotID:       p.PlotID,
		Name:         p.Name,
		Location:     p.Location,
		AreaHectares: p.AreaHectares,
		Crop:         p.Crop,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

func ToPlotResponses(plots []domain.Plot) []PlotResponse {
	out := make([]PlotResponse, len(plots))
	for i := range plots {
		out[i] = ToPlotResponse(&plots[i])
	}
	return out
}
