package mapping

import (
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	"github.com/sakahan-app/sakahan-backend/internal/models"
)

// ToModelWorker converts a domain Worker to its persistence shape.
func ToModelWorker(d domain.Worker) models.Worker {
	return models.Worker{
		WorkerID:       d.WorkerID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		ContactNumber:  d.ContactNumber,
		TotalDebt:      d.TotalDebt,
		CurrentBalance: d.CurrentBalance,
		TotalPaid:      d.TotalPaid,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorker converts a worker row back to the domain shape.
func ToDomainWorker(m models.Worker) domain.Worker {
	return domain.Worker{
		WorkerID:       m.WorkerID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		ContactNumber:  m.ContactNumber,
		TotalDebt:      m.TotalDebt,
		CurrentBalance: m.CurrentBalance,
		TotalPaid:      m.TotalPaid,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
