package models

import "time"

// AssignmentStatus mirrors domain.AssignmentStatus at the persistence layer.
type AssignmentStatus string

// Assignment is the persistence shape of a work assignment row.
type Assignment struct {
	AssignmentID string           `json:"assignmentID"`
	WorkerID     string           `json:"workerID"`
	PlotID       string           `json:"plotID"`
	Task         string           `json:"task"`
	Status       AssignmentStatus `json:"status"`
	AssignedDate time.Time        `json:"assignedDate"`
	Notes        string           `json:"notes"`
	AuditFields
}
