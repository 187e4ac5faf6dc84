package services

import (
	"context"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
)

// LedgerSvcFacade is the only entry point permitted to mutate debt balances,
// debt statuses, worker rollups, and to append ledger entries. Each mutating
// call runs as one atomic unit of work.
type LedgerSvcFacade interface {
	// IssueDebt creates a debt and lifts the worker's rollups by its principal.
	IssueDebt(ctx context.Context, req dto.IssueDebtRequest, creatorUserID string) (*domain.Debt, error)

	// AccrueInterest adds interest to the debt's outstanding balance.
	AccrueInterest(ctx context.Context, debtID string, req dto.AccrueInterestRequest, userID string) (*domain.Debt, error)

	// MakePayment records a payment; overpayment is rejected, not clamped.
	MakePayment(ctx context.Context, debtID string, req dto.MakePaymentRequest, userID string) (*domain.Debt, *domain.DebtHistory, error)

	// ReversePayment undoes a prior payment by its ledger entry ID, appending
	// a refund entry. A payment entry reverses at most once.
	ReversePayment(ctx context.Context, entryID string, req dto.ReversePaymentRequest, userID string) (*domain.Debt, *domain.DebtHistory, error)

	// AdjustDebt edits terms; an amount change moves the balance by the same
	// delta and is the only edit that produces a ledger entry.
	AdjustDebt(ctx context.Context, debtID string, req dto.AdjustDebtRequest, userID string) (*domain.Debt, error)

	// CancelDebt is the terminal soft delete: status CANCELLED, balance zeroed,
	// the outstanding balance removed from the worker's rollups.
	CancelDebt(ctx context.Context, debtID string, req dto.CancelDebtRequest, userID string) (string, error)

	// OverrideStatus writes a status with no business-rule validation and no
	// ledger entry. Callers must gate it behind an administrative capability.
	OverrideStatus(ctx context.Context, debtID string, req dto.OverrideStatusRequest, userID string) (*domain.Debt, error)

	// QuoteInterest computes a standalone interest quote; nothing is persisted.
	QuoteInterest(req dto.QuoteInterestRequest) dto.QuoteInterestResponse

	// GetDebt retrieves a debt.
	GetDebt(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebtHistory retrieves a debt's ledger entries in transaction order.
	ListDebtHistory(ctx context.Context, debtID string) ([]domain.DebtHistory, error)

	// ListWorkerDebts retrieves a worker's debts, newest first.
	ListWorkerDebts(ctx context.Context, workerID string, limit int, offset int) ([]domain.Debt, error)
}

// DebtImportSvcFacade runs best-effort batch issuance from a CSV file.
type DebtImportSvcFacade interface {
	// ImportFromCSV processes rows sequentially, each in its own unit of
	// work; one bad row never rolls back previously committed rows.
	ImportFromCSV(ctx context.Context, filePath string, creatorUserID string) (*dto.ImportResult, error)
}
