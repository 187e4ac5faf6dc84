package dto

import (
	"time"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// CreateAssignmentRequest assigns a worker to a plot for a task.
type CreateAssignmentRequest struct {
	WorkerID     string     `json:"workerID" binding:"required"`
	PlotID       string     `json:"plotID" binding:"required"`
	Task         string     `json:"task" binding:"required"`
	AssignedDate *time.Time `json:"assignedDate"`
	Notes        string     `json:"notes"`
}

// UpdateAssignmentRequest edits an assignment.
type UpdateAssignmentRequest struct {
	Task   *string `json:"task"`
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// AssignmentResponse is the API shape of an assignment.
type AssignmentResponse struct {
	AssignmentID string    `json:"assignmentID"`
	WorkerID     string    `json:"workerID"`
	PlotID       string    `json:"plotID"`
	Task         string    `json:"task"`
	Status       string    `json:"status"`
	AssignedDate time.Time `json:"assignedDate"`
	Notes        string    `json:"notes"`
}

func ToAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID: a.AssignmentID,
		WorkerID:     a.WorkerID,
		PlotID:       a.PlotID,
		Task:         a.Task,
		Status:       string(a.Status),
		AssignedDate: a.AssignedDate,
		Notes:        a.Notes,
	}
}

func ToAssignmentResponses(assignments []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		out[i] = ToAssignmentResponse(&assignments[i])
	}
	return out
}
