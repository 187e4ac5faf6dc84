package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType classifies a balance-changing transaction against a debt.
type LedgerEntryType string

const (
	EntryPayment    LedgerEntryType = "PAYMENT"
	EntryInterest   LedgerEntryType = "INTEREST"
	EntryAdjustment LedgerEntryType = "ADJUSTMENT"
	EntryRefund     LedgerEntryType = "REFUND"
)

// DebtHistory is one immutable ledger entry against a debt. Entries are
// append-only: the sole post-creation write permitted is setting Reversed on
// a payment entry, exactly once, by the reversal operation.
//
// PreviousBalance and NewBalance are snapshots, not deltas, so the history
// can be replayed or audited without recomputation. For every entry,
// NewBalance - PreviousBalance equals the exact delta applied to the debt's
// balance in the same transaction that created the entry.
type DebtHistory struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	DebtID          string          `json:"debtID"`  // FK -> Debt
	TransactionType LedgerEntryType `json:"transactionType"`
	AmountPaid      decimal.Decimal `json:"amountPaid"` // zero for non-payment types
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	Reversed        bool            `json:"reversed"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}
