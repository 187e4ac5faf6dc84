package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType mirrors domain.LedgerEntryType at the persistence layer.
type LedgerEntryType string

// DebtHistory is the persistence shape of one ledger entry row.
type DebtHistory struct {
	EntryID         string          `json:"entryID"`
	DebtID          string          `json:"debtID"`
	TransactionType LedgerEntryType `json:"transactionType"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	Reversed        bool            `json:"reversed"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}
