package domain

import "time"

// AssignmentStatus tracks the progress of a work assignment.
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
)

// Assignment links a worker to a plot for a task.
type Assignment struct {
	AssignmentID string           `json:"assignmentID"` // Primary Key (UUID)
	WorkerID     string           `json:"workerID"`     // FK -> Worker
	PlotID       string           `json:"plotID"`       // FK -> Plot
	Task         string           `json:"task"`
	Status       AssignmentStatus `json:"status"`
	AssignedDate time.Time        `json:"assignedDate"`
	Notes        string           `json:"notes"`
	AuditFields
}
