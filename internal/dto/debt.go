package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// IssueDebtRequest creates a new debt against a worker.
type IssueDebtRequest struct {
	WorkerID     string          `json:"workerID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Reason       string          `json:"reason"`
	DueDate      *time.Time      `json:"dueDate"`
	InterestRate decimal.Decimal `json:"interestRate"`
	PaymentTerm  string          `json:"paymentTerm"`
	Notes        string          `json:"notes"`
}

// AccrueInterestRequest adds interest to a debt's outstanding balance.
// Either InterestAmount is given directly, or Days is set and the amount is
// computed from the debt's principal and interest rate.
type AccrueInterestRequest struct {
	InterestAmount decimal.Decimal `json:"interestAmount"`
	Days           int64           `json:"days"`
	Compounding    string          `json:"compounding"`
	Notes          string          `json:"notes"`
}

// MakePaymentRequest records a payment against a debt.
type MakePaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
}

// ReversePaymentRequest undoes a prior payment by ledger entry ID.
type ReversePaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdjustDebtRequest edits a debt's terms. Nil fields are left untouched.
type AdjustDebtRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	Reason       *string          `json:"reason"`
	DueDate      *time.Time       `json:"dueDate"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	PaymentTerm  *string          `json:"paymentTerm"`
	Notes        *string          `json:"notes"`
}

// CancelDebtRequest soft-deletes a debt.
type CancelDebtRequest struct {
	Reason string `json:"reason"`
}

// OverrideStatusRequest is the administrative status escape hatch.
type OverrideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuoteInterestRequest asks for a standalone interest quote; nothing is persisted.
type QuoteInterestRequest struct {
	Principal   decimal.Decimal `json:"principal" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	Days        int64           `json:"days" binding:"required,gt=0"`
	Compounding string          `json:"compounding"`
}

// QuoteInterestResponse carries the computed quote.
type QuoteInterestResponse struct {
	Interest    decimal.Decimal `json:"interest"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// DebtResponse is the API shape of a debt.
type DebtResponse struct {
	DebtID          string          `json:"debtID"`
	WorkerID        string          `json:"workerID"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	Status          string          `json:"status"`
	Reason          string          `json:"reason"`
	Notes           string          `json:"notes"`
	DueDate         *time.Time      `json:"dueDate"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	PaymentTerm     string          `json:"paymentTerm"`
	DateIncurred    time.Time       `json:"dateIncurred"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// DebtHistoryResponse is the API shape of a ledger entry.
type DebtHistoryResponse struct {
	EntryID         string          `json:"entryID"`
	DebtID          string          `json:"debtID"`
	TransactionType string          `json:"transactionType"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	Reversed        bool            `json:"reversed"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// ToDebtResponse converts a domain Debt to its API shape.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:          d.DebtID,
		WorkerID:        d.WorkerID,
		OriginalAmount:  d.OriginalAmount,
		Amount:          d.Amount,
		Balance:         d.Balance,
		TotalPaid:       d.TotalPaid,
		TotalInterest:   d.TotalInterest,
		Status:          string(d.Status),
		Reason:          d.Reason,
		Notes:           d.Notes,
		DueDate:         d.DueDate,
		InterestRate:    d.InterestRate,
		PaymentTerm:     d.PaymentTerm,
		DateIncurred:    d.DateIncurred,
		LastPaymentDate: d.LastPaymentDate,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.LastUpdatedAt,
	}
}

// ToDebtHistoryResponse converts a domain ledger entry to its API shape.
func ToDebtHistoryResponse(e *domain.DebtHistory) DebtHistoryResponse {
	return DebtHistoryResponse{
		EntryID:         e.EntryID,
		DebtID:          e.DebtID,
		TransactionType: string(e.TransactionType),
		AmountPaid:      e.AmountPaid,
		PreviousBalance: e.PreviousBalance,
		NewBalance:      e.NewBalance,
		PaymentMethod:   e.PaymentMethod,
		ReferenceNumber: e.ReferenceNumber,
		Notes:           e.Notes,
		Reversed:        e.Reversed,
		TransactionDate: e.TransactionDate,
	}
}

// ToDebtHistoryResponses converts a slice of ledger entries.
func ToDebtHistoryResponses(entries []domain.DebtHistory) []DebtHistoryResponse {
	out := make([]DebtHistoryResponse, len(entries))
	for i := range entries {
		out[i] = ToDebtHistoryResponse(&entries[i])
	}
	return out
}
