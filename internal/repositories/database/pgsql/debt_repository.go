package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	"github.com/sakahan-app/sakahan-backend/internal/models"
	"github.com/sakahan-app/sakahan-backend/internal/utils/mapping"
)

const debtColumns = `
	debt_id, worker_id, original_amount, amount, balance, total_paid, total_interest,
	status, reason, notes, due_date, interest_rate, payment_term,
	date_incurred, last_payment_date,
	created_at, created_by, last_updated_at, last_updated_by`

const historyColumns = `
	entry_id, debt_id, transaction_type, amount_paid, previous_balance, new_balance,
	payment_method, reference_number, notes, reversed, transaction_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt and ledger entry data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryWithTx {
	return &PgxDebtRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DebtRepositoryWithTx = (*PgxDebtRepository)(nil)

// scanDebt scans one debt row in debtColumns order.
func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var m models.Debt
	err := row.Scan(
		&m.DebtID,
		&m.WorkerID,
		&m.OriginalAmount,
		&m.Amount,
		&m.Balance,
		&m.TotalPaid,
		&m.TotalInterest,
		&m.Status,
		&m.Reason,
		&m.Notes,
		&m.DueDate,
		&m.InterestRate,
		&m.PaymentTerm,
		&m.DateIncurred,
		&m.LastPaymentDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainDebt(m)
	return &d, nil
}

// scanHistoryEntry scans one ledger entry row in historyColumns order.
func scanHistoryEntry(row pgx.Row) (*domain.DebtHistory, error) {
	var m models.DebtHistory
	err := row.Scan(
		&m.EntryID,
		&m.DebtID,
		&m.TransactionType,
		&m.AmountPaid,
		&m.PreviousBalance,
		&m.NewBalance,
		&m.PaymentMethod,
		&m.ReferenceNumber,
		&m.Notes,
		&m.Reversed,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainDebtHistory(m)
	return &e, nil
}

// FindDebtByID retrieves a debt by its ID.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`

	debt, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt by ID "+debtID, err)
	}
	return debt, nil
}

// ListDebtsByWorker retrieves a worker's debts, newest first.
func (r *PgxDebtRepository) ListDebtsByWorker(ctx context.Context, workerID string, limit int, offset int) ([]domain.Debt, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE worker_id = $1
		ORDER BY date_incurred DESC, debt_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, workerID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts for worker "+workerID, err)
	}
	defer rows.Close()

	debts := []domain.Debt{}
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt row for worker "+workerID, err)
		}
		debts = append(debts, *debt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating debt rows for worker "+workerID, err)
	}
	return debts, nil
}

// ListHistoryByDebt retrieves the ledger entries for a debt in transaction
// order, oldest first.
func (r *PgxDebtRepository) ListHistoryByDebt(ctx context.Context, debtID string) ([]domain.DebtHistory, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM debt_history
		WHERE debt_id = $1
		ORDER BY transaction_date, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, debtID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query history for debt "+debtID, err)
	}
	defer rows.Close()

	entries := []domain.DebtHistory{}
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row for debt "+debtID, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating history rows for debt "+debtID, err)
	}
	return entries, nil
}

// FindHistoryEntryByID retrieves a single ledger entry.
func (r *PgxDebtRepository) FindHistoryEntryByID(ctx context.Context, entryID string) (*domain.DebtHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM debt_history WHERE entry_id = $1;`

	entry, err := scanHistoryEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find history entry "+entryID, err)
	}
	return entry, nil
}

// FindDebtByIDForUpdate selects a debt row and locks it for the duration of
// the transaction.
func (r *PgxDebtRepository) FindDebtByIDForUpdate(ctx context.Context, tx pgx.Tx, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1 FOR UPDATE;`

	debt, err := scanDebt(tx.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock debt "+debtID, err)
	}
	return debt, nil
}

// FindHistoryEntryByIDForUpdate selects a ledger entry row and locks it so
// the reversed-flag check stays race-free.
func (r *PgxDebtRepository) FindHistoryEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.DebtHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM debt_history WHERE entry_id = $1 FOR UPDATE;`

	entry, err := scanHistoryEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock history entry "+entryID, err)
	}
	return entry, nil
}

// SaveDebtInTx inserts a new debt row within the given transaction.
func (r *PgxDebtRepository) SaveDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		m.DebtID,
		m.WorkerID,
		m.OriginalAmount,
		m.Amount,
		m.Balance,
		m.TotalPaid,
		m.TotalInterest,
		m.Status,
		m.Reason,
		m.Notes,
		m.DueDate,
		m.InterestRate,
		m.PaymentTerm,
		m.DateIncurred,
		m.LastPaymentDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert debt "+m.DebtID, err)
	}
	return nil
}

// UpdateDebtInTx writes the mutable fields of a debt row. OriginalAmount,
// WorkerID and DateIncurred are immutable and deliberately absent.
func (r *PgxDebtRepository) UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		UPDATE debts
		SET amount = $2,
		    balance = $3,
		    total_paid = $4,
		    total_interest = $5,
		    status = $6,
		    reason = $7,
		    notes = $8,
		    due_date = $9,
		    interest_rate = $10,
		    payment_term = $11,
		    last_payment_date = $12,
		    last_updated_at = $13,
		    last_updated_by = $14
		WHERE debt_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.DebtID,
		m.Amount,
		m.Balance,
		m.TotalPaid,
		m.TotalInterest,
		m.Status,
		m.Reason,
		m.Notes,
		m.DueDate,
		m.InterestRate,
		m.PaymentTerm,
		m.LastPaymentDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update debt "+m.DebtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("debt " + m.DebtID + " not found for update")
	}
	return nil
}

// AppendHistoryInTx appends one immutable ledger entry within the given
// transaction.
func (r *PgxDebtRepository) AppendHistoryInTx(ctx context.Context, tx pgx.Tx, entry domain.DebtHistory) error {
	m := mapping.ToModelDebtHistory(entry)
	query := `
		INSERT INTO debt_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.DebtID,
		m.TransactionType,
		m.AmountPaid,
		m.PreviousBalance,
		m.NewBalance,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.Notes,
		m.Reversed,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert history entry "+m.EntryID, err)
	}
	return nil
}

// MarkHistoryEntryReversedInTx sets the reversed flag on a payment entry.
// The reversed = FALSE guard means a concurrent double-reversal surfaces as
// not-found rather than silently re-flagging.
func (r *PgxDebtRepository) MarkHistoryEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string) error {
	query := `
		UPDATE debt_history
		SET reversed = TRUE,
		    last_updated_at = NOW(),
		    last_updated_by = $2
		WHERE entry_id = $1 AND reversed = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark history entry "+entryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("history entry " + entryID + " not found or already reversed")
	}
	return nil
}
