package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// RollupDeltas carries the signed changes a ledger operation applies to the
// owning worker's derived fields. Zero-valued fields leave the column alone.
type RollupDeltas struct {
	TotalDebt      decimal.Decimal
	CurrentBalance decimal.Decimal
	TotalPaid      decimal.Decimal
}

// WorkerReader defines read operations for worker data.
type WorkerReader interface {
	// FindWorkerByID retrieves a specific worker by ID.
	FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)

	// ListWorkers retrieves a paginated list of workers.
	ListWorkers(ctx context.Context, limit int, offset int) ([]domain.Worker, error)
}

// WorkerWriter defines write operations for worker data outside the ledger.
type WorkerWriter interface {
	// SaveWorker persists a new worker.
	SaveWorker(ctx context.Context, worker domain.Worker) error

	// UpdateWorker updates a worker's identity fields (never the rollups).
	UpdateWorker(ctx context.Context, worker domain.Worker) error

	// DeactivateWorker marks a worker as inactive.
	DeactivateWorker(ctx context.Context, workerID string, userID string, now time.Time) error
}

// WorkerTransactionSupport defines the worker-side writes of a ledger
// operation. Locking the worker row serializes concurrent operations that
// touch the same worker, preventing lost updates on the rollups.
type WorkerTransactionSupport interface {
	// FindWorkerByIDForUpdate selects a worker row and locks it for the
	// duration of the transaction.
	FindWorkerByIDForUpdate(ctx context.Context, tx pgx.Tx, workerID string) (*domain.Worker, error)

	// ApplyRollupDeltasInTx applies signed deltas to the worker's rollup
	// columns within the given transaction.
	ApplyRollupDeltasInTx(ctx context.Context, tx pgx.Tx, workerID string, deltas RollupDeltas, userID string, now time.Time) error
}

// WorkerRepositoryFacade combines all worker-related repository interfaces.
type WorkerRepositoryFacade interface {
	WorkerReader
	WorkerWriter
	WorkerTransactionSupport
}
