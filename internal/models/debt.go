package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus mirrors domain.DebtStatus at the persistence layer.
type DebtStatus string

// Debt is the persistence shape of a debt row.
type Debt struct {
	DebtID          string          `json:"debtID"`
	WorkerID        string          `json:"workerID"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	Status          DebtStatus      `json:"status"`
	Reason          string          `json:"reason"`
	Notes           string          `json:"notes"`
	DueDate         *time.Time      `json:"dueDate"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	PaymentTerm     string          `json:"paymentTerm"`
	DateIncurred    time.Time       `json:"dateIncurred"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate"`
	AuditFields
}
