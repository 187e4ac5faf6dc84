package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus indicates the repayment state of a debt.
type DebtStatus string

const (
	DebtPending       DebtStatus = "PENDING"
	DebtPartiallyPaid DebtStatus = "PARTIALLY_PAID"
	DebtPaid          DebtStatus = "PAID"
	DebtCancelled     DebtStatus = "CANCELLED"
)

// KnownDebtStatus reports whether s is one of the defined statuses.
func KnownDebtStatus(s DebtStatus) bool {
	switch s {
	case DebtPending, DebtPartiallyPaid, DebtPaid, DebtCancelled:
		return true
	}
	return false
}

// Debt is a single principal obligation owed by a worker, tracked with its
// own outstanding balance and status. Debts are never hard-deleted;
// cancellation is the terminal soft-delete.
type Debt struct {
	DebtID   string `json:"debtID"`   // Primary Key (UUID)
	WorkerID string `json:"workerID"` // FK -> Worker (lookup only, no ownership)
	// OriginalAmount is the principal at issuance, immutable after creation.
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	// Amount is the current principal; adjustments may move it.
	Amount decimal.Decimal `json:"amount"`
	// Balance is the outstanding amount owed now. It is always recomputed as
	// previousBalance +/- delta inside one transaction and never goes
	// negative as a result of a payment.
	Balance         decimal.Decimal `json:"balance"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	Status          DebtStatus      `json:"status"`
	Reason          string          `json:"reason"`
	Notes           string          `json:"notes"` // append-only audit annotations
	DueDate         *time.Time      `json:"dueDate"`
	InterestRate    decimal.Decimal `json:"interestRate"` // annual percent
	PaymentTerm     string          `json:"paymentTerm"`
	DateIncurred    time.Time       `json:"dateIncurred"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate"`
	AuditFields
}

// StatusFor derives the status implied by a balance against the current
// principal. Every balance-mutating operation applies this uniformly;
// CANCELLED is set only by an explicit cancel and never leaves this function.
func StatusFor(balance, amount decimal.Decimal) DebtStatus {
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return DebtPaid
	case balance.Equal(amount):
		return DebtPending
	default:
		return DebtPartiallyPaid
	}
}
