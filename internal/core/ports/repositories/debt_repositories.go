package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// DebtReader defines read operations for debt data.
type DebtReader interface {
	// FindDebtByID retrieves a specific debt by its unique identifier.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebtsByWorker retrieves all debts owed by a worker, newest first.
	ListDebtsByWorker(ctx context.Context, workerID string, limit int, offset int) ([]domain.Debt, error)

	// ListHistoryByDebt retrieves the ledger entries for a debt in
	// transaction order.
	ListHistoryByDebt(ctx context.Context, debtID string) ([]domain.DebtHistory, error)

	// FindHistoryEntryByID retrieves a single ledger entry.
	FindHistoryEntryByID(ctx context.Context, entryID string) (*domain.DebtHistory, error)
}

// DebtTransactionSupport defines the writes a ledger operation performs
// inside its unit of work. Every method takes the transaction explicitly.
type DebtTransactionSupport interface {
	// FindDebtByIDForUpdate selects a debt row and locks it for the duration
	// of the transaction.
	FindDebtByIDForUpdate(ctx context.Context, tx pgx.Tx, debtID string) (*domain.Debt, error)

	// FindHistoryEntryByIDForUpdate selects a ledger entry row and locks it
	// (reversal needs the lock to make the reversed-flag check race-free).
	FindHistoryEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.DebtHistory, error)

	// SaveDebtInTx inserts a new debt row.
	SaveDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error

	// UpdateDebtInTx writes the mutable fields of a debt row.
	UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error

	// AppendHistoryInTx appends one immutable ledger entry.
	AppendHistoryInTx(ctx context.Context, tx pgx.Tx, entry domain.DebtHistory) error

	// MarkHistoryEntryReversedInTx sets the reversed flag on a payment entry.
	// This is the only permitted post-creation write to a ledger entry.
	MarkHistoryEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtTransactionSupport
}

// DebtRepositoryWithTx extends DebtRepositoryFacade with transaction control.
type DebtRepositoryWithTx interface {
	DebtRepositoryFacade
	TransactionManager
}
