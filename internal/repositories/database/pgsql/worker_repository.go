package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	"github.com/sakahan-app/sakahan-backend/internal/models"
	"github.com/sakahan-app/sakahan-backend/internal/utils/mapping"
)

const workerColumns = `
	worker_id, first_name, last_name, contact_number,
	total_debt, current_balance, total_paid, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxWorkerRepository struct {
	BaseRepository
}

// newPgxWorkerRepository creates a new repository for worker data.
func newPgxWorkerRepository(pool *pgxpool.Pool) portsrepo.WorkerRepositoryFacade {
	return &PgxWorkerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkerRepositoryFacade = (*PgxWorkerRepository)(nil)

func scanWorker(row pgx.Row) (*domain.Worker, error) {
	var m models.Worker
	err := row.Scan(
		&m.WorkerID,
		&m.FirstName,
		&m.LastName,
		&m.ContactNumber,
		&m.TotalDebt,
		&m.CurrentBalance,
		&m.TotalPaid,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	w := mapping.ToDomainWorker(m)
	return &w, nil
}

// FindWorkerByID retrieves a worker by ID.
func (r *PgxWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1;`

	worker, err := scanWorker(r.Pool.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find worker by ID "+workerID, err)
	}
	return worker, nil
}

// ListWorkers retrieves a paginated list of workers, active first, then by name.
func (r *PgxWorkerRepository) ListWorkers(ctx context.Context, limit int, offset int) ([]domain.Worker, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + workerColumns + `
		FROM workers
		ORDER BY is_active DESC, last_name, first_name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workers", err)
	}
	defer rows.Close()

	workers := []domain.Worker{}
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan worker row", err)
		}
		workers = append(workers, *worker)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating worker rows", err)
	}
	return workers, nil
}

// SaveWorker persists a new worker.
func (r *PgxWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	m := mapping.ToModelWorker(worker)
	query := `
		INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WorkerID,
		m.FirstName,
		m.LastName,
		m.ContactNumber,
		m.TotalDebt,
		m.CurrentBalance,
		m.TotalPaid,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert worker "+m.WorkerID, err)
	}
	return nil
}

// UpdateWorker updates a worker's identity fields. The rollup columns are
// never written here; only ApplyRollupDeltasInTx moves them.
func (r *PgxWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	m := mapping.ToModelWorker(worker)
	query := `
		UPDATE workers
		SET first_name = $2,
		    last_name = $3,
		    contact_number = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE worker_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.WorkerID,
		m.FirstName,
		m.LastName,
		m.ContactNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update worker "+m.WorkerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("worker " + m.WorkerID + " not found for update")
	}
	return nil
}

// DeactivateWorker marks a worker as inactive.
func (r *PgxWorkerRepository) DeactivateWorker(ctx context.Context, workerID string, userID string, now time.Time) error {
	query := `
		UPDATE workers
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE worker_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, workerID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate worker "+workerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("worker " + workerID + " not found or already inactive")
	}
	return nil
}

// FindWorkerByIDForUpdate selects a worker row and locks it for the duration
// of the transaction.
func (r *PgxWorkerRepository) FindWorkerByIDForUpdate(ctx context.Context, tx pgx.Tx, workerID string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1 FOR UPDATE;`

	worker, err := scanWorker(tx.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock worker "+workerID, err)
	}
	return worker, nil
}

// ApplyRollupDeltasInTx applies signed deltas to the worker's rollup columns
// within the given transaction. COALESCE guards against NULL columns on rows
// created before the defaults existed.
func (r *PgxWorkerRepository) ApplyRollupDeltasInTx(ctx context.Context, tx pgx.Tx, workerID string, deltas portsrepo.RollupDeltas, userID string, now time.Time) error {
	if deltas.TotalDebt.IsZero() && deltas.CurrentBalance.IsZero() && deltas.TotalPaid.IsZero() {
		return nil
	}

	query := `
		UPDATE workers
		SET total_debt = COALESCE(total_debt, 0) + $2,
		    current_balance = COALESCE(current_balance, 0) + $3,
		    total_paid = COALESCE(total_paid, 0) + $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE worker_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		workerID,
		deltas.TotalDebt,
		deltas.CurrentBalance,
		deltas.TotalPaid,
		now,
		userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply rollup deltas for worker "+workerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("worker " + workerID + " not found during rollup update")
	}
	return nil
}
