package domain

import "github.com/shopspring/decimal"

// Worker represents a farm worker. The three rollup fields are derived from
// the worker's debts and are only ever mutated by ledger operations, in the
// same transaction as the debt-side mutation.
type Worker struct {
	WorkerID      string `json:"workerID"` // Primary Key (UUID)
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	ContactNumber string `json:"contactNumber"`
	// TotalDebt is the sum of original principal across all non-cancelled debts.
	TotalDebt decimal.Decimal `json:"totalDebt"`
	// CurrentBalance is the sum of outstanding balances across all debts.
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	// TotalPaid is the cumulative amount ever paid; decremented on reversal,
	// floored at zero.
	TotalPaid decimal.Decimal `json:"totalPaid"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// FullName returns the worker's display name.
func (w Worker) FullName() string {
	if w.FirstName == "" {
		return w.LastName
	}
	if w.LastName == "" {
		return w.FirstName
	}
	return w.FirstName + " " + w.LastName
}
