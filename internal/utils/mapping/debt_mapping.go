package mapping

import (
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	"github.com/sakahan-app/sakahan-backend/internal/models"
)

// ToModelDebt converts a domain Debt to its persistence shape.
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:          d.DebtID,
		WorkerID:        d.WorkerID,
		OriginalAmount:  d.OriginalAmount,
		Amount:          d.Amount,
		Balance:         d.Balance,
		TotalPaid:       d.TotalPaid,
		TotalInterest:   d.TotalInterest,
		Status:          models.DebtStatus(d.Status),
		Reason:          d.Reason,
		Notes:           d.Notes,
		DueDate:         d.DueDate,
		InterestRate:    d.InterestRate,
		PaymentTerm:     d.PaymentTerm,
		DateIncurred:    d.DateIncurred,
		LastPaymentDate: d.LastPaymentDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a debt row back to the domain shape.
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:          m.DebtID,
		WorkerID:        m.WorkerID,
		OriginalAmount:  m.OriginalAmount,
		Amount:          m.Amount,
		Balance:         m.Balance,
		TotalPaid:       m.TotalPaid,
		TotalInterest:   m.TotalInterest,
		Status:          domain.DebtStatus(m.Status),
		Reason:          m.Reason,
		Notes:           m.Notes,
		DueDate:         m.DueDate,
		InterestRate:    m.InterestRate,
		PaymentTerm:     m.PaymentTerm,
		DateIncurred:    m.DateIncurred,
		LastPaymentDate: m.LastPaymentDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDebtHistory converts a domain ledger entry to its persistence shape.
func ToModelDebtHistory(d domain.DebtHistory) models.DebtHistory {
	return models.DebtHistory{
		EntryID:         d.EntryID,
		DebtID:          d.DebtID,
		TransactionType: models.LedgerEntryType(d.TransactionType),
		AmountPaid:      d.AmountPaid,
		PreviousBalance: d.PreviousBalance,
		NewBalance:      d.NewBalance,
		PaymentMethod:   d.PaymentMethod,
		ReferenceNumber: d.ReferenceNumber,
		Notes:           d.Notes,
		Reversed:        d.Reversed,
		TransactionDate: d.TransactionDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtHistory converts a ledger entry row back to the domain shape.
func ToDomainDebtHistory(m models.DebtHistory) domain.DebtHistory {
	return domain.DebtHistory{
		EntryID:         m.EntryID,
		DebtID:          m.DebtID,
		TransactionType: domain.LedgerEntryType(m.TransactionType),
		AmountPaid:      m.AmountPaid,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		PaymentMethod:   m.PaymentMethod,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		Reversed:        m.Reversed,
		TransactionDate: m.TransactionDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtHistorySlice converts ledger entry rows back to domain shapes.
func ToDomainDebtHistorySlice(ms []models.DebtHistory) []domain.DebtHistory {
	out := make([]domain.DebtHistory, len(ms))
	for i, m := range ms {
		out[i] = ToDomainDebtHistory(m)
	}
	return out
}
