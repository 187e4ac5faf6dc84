package mapping

import (
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	"github.com/sakahan-app/sakahan-backend/internal/models"
)

func ToModelPlot(d domain.Plot) models.Plot {
	return models.Plot{
		PlotID:       d.PlotID,
		Name:         d.Name,
		Location:     d.Location,
		AreaHectares: d.AreaHectares,
		Crop:         d.Crop,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPlot(m models.Plot) domain.Plot {
	return domain.Plot{
		PlotID:       m.PlotID,
		Name:         m.Name,
		Location:     m.Location,
		AreaHectares: m.AreaHectares,
		Crop:         m.Crop,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelAssignment(d domain.Assignment) models.Assignment {
	return models.Assignment{
		AssignmentID: d.AssignmentID,
		WorkerID:     d.WorkerID,
		PlotID:       d.PlotID,
		Task:         d.Task,
		Status:       models.AssignmentStatus(d.Status),
		AssignedDate: d.AssignedDate,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainAssignment(m models.Assignment) domain.Assignment {
	return domain.Assignment{
		AssignmentID: m.AssignmentID,
		WorkerID:     m.WorkerID,
		PlotID:       m.PlotID,
		Task:         m.Task,
		Status:       domain.AssignmentStatus(m.Status),
		AssignedDate: m.AssignedDate,
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
