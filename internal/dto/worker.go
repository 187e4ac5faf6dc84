package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// CreateWorkerRequest registers a new farm worker.
type CreateWorkerRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	ContactNumber string `json:"contactNumber"`
}

// UpdateWorkerRequest edits a worker's identity fields. Rollups are never
// editable through this path.
type UpdateWorkerRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	ContactNumber *string `json:"contactNumber"`
}

// WorkerResponse is the API shape of a worker.
type WorkerResponse struct {
	WorkerID       string          `json:"workerID"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	ContactNumber  string          `json:"contactNumber"`
	TotalDebt      decimal.Decimal `json:"totalDebt"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToWorkerResponse converts a domain Worker to its API shape.
func ToWorkerResponse(w *domain.Worker) WorkerResponse {
	return WorkerResponse{
		WorkerID:       w.WorkerID,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		ContactNumber:  w.ContactNumber,
		TotalDebt:      w.TotalDebt,
		CurrentBalance: w.CurrentBalance,
		TotalPaid:      w.TotalPaid,
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt,
	}
}

// ToWorkerResponses converts a slice of workers.
func ToWorkerResponses(workers []domain.Worker) []WorkerResponse {
	out := make([]WorkerResponse, len(workers))
	for i := range workers {
		out[i] = ToWorkerResponse(&workers[i])
	}
	return out
}
