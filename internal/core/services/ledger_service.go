package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
	"github.com/sakahan-app/sakahan-backend/internal/utils/interest"
)

// ledgerService is the only code path that mutates debt balances, debt
// statuses, worker rollups, or appends ledger entries. Every operation runs
// in a single database transaction: the debt row and the owning worker row
// are locked for the duration, so concurrent operations against the same
// worker serialize instead of losing updates.
type ledgerService struct {
	debtRepo   portsrepo.DebtRepositoryWithTx
	workerRepo portsrepo.WorkerRepositoryFacade
}

// NewLedgerService creates the ledger service.
func NewLedgerService(debtRepo portsrepo.DebtRepositoryWithTx, workerRepo portsrepo.WorkerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		debtRepo:   debtRepo,
		workerRepo: workerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// withTx runs fn inside one unit of work. Any error from fn aborts the
// transaction with no partial writes observable.
func (s *ledgerService) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.debtRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.debtRepo.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return s.debtRepo.Commit(ctx, tx)
}

// lockDebtAndWorker fetches and locks the debt row and its owning worker row.
// Locking the worker serializes every operation that touches the same
// worker's rollups, including operations on that worker's other debts.
func (s *ledgerService) lockDebtAndWorker(ctx context.Context, tx pgx.Tx, debtID string) (*domain.Debt, *domain.Worker, error) {
	debt, err := s.debtRepo.FindDebtByIDForUpdate(ctx, tx, debtID)
	if err != nil {
		return nil, nil, err
	}
	worker, err := s.workerRepo.FindWorkerByIDForUpdate(ctx, tx, debt.WorkerID)
	if err != nil {
		return nil, nil, err
	}
	return debt, worker, nil
}

// appendNote adds an audit annotation to a debt's append-only notes field.
func appendNote(existing, note string) string {
	if note == "" {
		return existing
	}
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}

// IssueDebt creates a debt with amount = balance = originalAmount and lifts
// the worker's totalDebt and currentBalance by the principal. Issuance is
// represented by the debt record itself; no ledger entry is written.
func (s *ledgerService) IssueDebt(ctx context.Context, req dto.IssueDebtRequest, creatorUserID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: debt amount must be greater than zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	debt := domain.Debt{
		DebtID:         uuid.NewString(),
		WorkerID:       req.WorkerID,
		OriginalAmount: req.Amount,
		Amount:         req.Amount,
		Balance:        req.Amount,
		TotalPaid:      decimal.Zero,
		TotalInterest:  decimal.Zero,
		Status:         domain.DebtPending,
		Reason:         req.Reason,
		Notes:          req.Notes,
		DueDate:        req.DueDate,
		InterestRate:   req.InterestRate,
		PaymentTerm:    req.PaymentTerm,
		DateIncurred:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		worker, err := s.workerRepo.FindWorkerByIDForUpdate(ctx, tx, req.WorkerID)
		if err != nil {
			return err
		}
		if err := s.debtRepo.SaveDebtInTx(ctx, tx, debt); err != nil {
			return err
		}
		return s.workerRepo.ApplyRollupDeltasInTx(ctx, tx, worker.WorkerID, portsrepo.RollupDeltas{
			TotalDebt:      req.Amount,
			CurrentBalance: req.Amount,
		}, creatorUserID, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Debt issued",
		slog.String("debt_id", debt.DebtID),
		slog.String("worker_id", debt.WorkerID),
		slog.String("amount", req.Amount.String()))
	return &debt, nil
}

// AccrueInterest adds interest to the outstanding balance. The amount comes
// either from the request directly or, when Days is set, from the prorated
// interest calculator over the debt's principal and rate. Interest never
// changes the debt's status.
func (s *ledgerService) AccrueInterest(ctx context.Context, debtID string, req dto.AccrueInterestRequest, userID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InterestAmount.IsNegative() {
		return nil, fmt.Errorf("%w: interest amount must be greater than zero", apperrors.ErrValidation)
	}
	if req.InterestAmount.IsZero() && req.Days <= 0 {
		return nil, fmt.Errorf("%w: interest amount must be greater than zero", apperrors.ErrValidation)
	}

	var updated *domain.Debt
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		debt, worker, err := s.lockDebtAndWorker(ctx, tx, debtID)
		if err != nil {
			return err
		}
		if debt.Status == domain.DebtCancelled {
			return fmt.Errorf("%w: cannot accrue interest on cancelled debt %s", apperrors.ErrInvalidState, debtID)
		}

		amount := req.InterestAmount
		if amount.IsZero() {
			amount, _ = interest.Calculate(debt.Amount, debt.InterestRate, req.Days, req.Compounding)
			if amount.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("%w: computed interest is not positive", apperrors.ErrValidation)
			}
		}

		now := time.Now().UTC()
		previousBalance := debt.Balance
		debt.Balance = previousBalance.Add(amount)
		debt.TotalInterest = debt.TotalInterest.Add(amount)
		debt.LastUpdatedAt = now
		debt.LastUpdatedBy = userID

		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
			return err
		}
		entry := domain.DebtHistory{
			EntryID:         uuid.NewString(),
			DebtID:          debt.DebtID,
			TransactionType: domain.EntryInterest,
			AmountPaid:      decimal.Zero,
			PreviousBalance: previousBalance,
			NewBalance:      debt.Balance,
			Notes:           req.Notes,
			TransactionDate: now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.debtRepo.AppendHistoryInTx(ctx, tx, entry); err != nil {
			return err
		}
		if err := s.workerRepo.ApplyRollupDeltasInTx(ctx, tx, worker.WorkerID, portsrepo.RollupDeltas{
			CurrentBalance: amount,
		}, userID, now); err != nil {
			return err
		}
		updated = debt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Interest accrued",
		slog.String("debt_id", debtID),
		slog.String("new_balance", updated.Balance.String()))
	return updated, nil
}

// MakePayment records a payment against a debt. Paying more than the
// outstanding balance is rejected outright, never clamped.
func (s *ledgerService) MakePayment(ctx context.Context, debtID string, req dto.MakePaymentRequest, userID string) (*domain.Debt, *domain.DebtHistory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}

	var (
		updated *domain.Debt
		created *domain.DebtHistory
	)
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		debt, worker, err := s.lockDebtAndWorker(ctx, tx, debtID)
		if err != nil {
			return err
		}
		if debt.Status == domain.DebtCancelled {
			return fmt.Errorf("%w: cannot pay a cancelled debt %s", apperrors.ErrInvalidState, debtID)
		}
		if req.Amount.GreaterThan(debt.Balance) {
			return fmt.Errorf("%w: payment of %s exceeds balance of %s",
				apperrors.ErrValidation, req.Amount.String(), debt.Balance.String())
		}

		now := time.Now().UTC()
		previousBalance := debt.Balance
		debt.Balance = previousBalance.Sub(req.Amount)
		debt.TotalPaid = debt.TotalPaid.Add(req.Amount)
		debt.Status = domain.StatusFor(debt.Balance, debt.Amount)
		debt.LastPaymentDate = &now
		debt.LastUpdatedAt = now
		debt.LastUpdatedBy = userID

		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
			return err
		}
		entry := domain.DebtHistory{
			EntryID:         uuid.NewString(),
			DebtID:          debt.DebtID,
			TransactionType: domain.EntryPayment,
			AmountPaid:      req.Amount,
			PreviousBalance: previousBalance,
			NewBalance:      debt.Balance,
			PaymentMethod:   req.PaymentMethod,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
			TransactionDate: now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.debtRepo.AppendHistoryInTx(ctx, tx, entry); err != nil {
			return err
		}
		if err := s.workerRepo.ApplyRollupDeltasInTx(ctx, tx, worker.WorkerID, portsrepo.RollupDeltas{
			CurrentBalance: req.Amount.Neg(),
			TotalPaid:      req.Amount,
		}, userID, now); err != nil {
			return err
		}
		updated = debt
		created = &entry
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Payment recorded",
		slog.String("debt_id", debtID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(updated.Status)))
	return updated, created, nil
}

// ReversePayment undoes a prior payment identified by its ledger entry ID.
// The original entry is never mutated beyond its reversed flag; the reversal
// itself is a new additive refund entry. A second reversal of the same entry
// is rejected so a payment can never be credited back twice.
func (s *ledgerService) ReversePayment(ctx context.Context, entryID string, req dto.ReversePaymentRequest, userID string) (*domain.Debt, *domain.DebtHistory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var (
		updated *domain.Debt
		refund  *domain.DebtHistory
	)
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		entry, err := s.debtRepo.FindHistoryEntryByIDForUpdate(ctx, tx, entryID)
		if err != nil {
			return err
		}
		if entry.TransactionType != domain.EntryPayment {
			return fmt.Errorf("%w: only payment entries can be reversed, entry %s is %s",
				apperrors.ErrInvalidState, entryID, entry.TransactionType)
		}
		if entry.Reversed {
			return fmt.Errorf("%w: payment entry %s has already been reversed", apperrors.ErrInvalidState, entryID)
		}

		debt, worker, err := s.lockDebtAndWorker(ctx, tx, entry.DebtID)
		if err != nil {
			return err
		}
		if debt.Status == domain.DebtCancelled {
			return fmt.Errorf("%w: cannot reverse a payment on cancelled debt %s", apperrors.ErrInvalidState, debt.DebtID)
		}

		now := time.Now().UTC()
		previousBalance := debt.Balance
		debt.Balance = previousBalance.Add(entry.AmountPaid)

		// totalPaid is floored at zero on both the debt and the worker.
		debt.TotalPaid = debt.TotalPaid.Sub(entry.AmountPaid)
		if debt.TotalPaid.IsNegative() {
			debt.TotalPaid = decimal.Zero
		}
		workerPaidDecrease := entry.AmountPaid
		if worker.TotalPaid.LessThan(workerPaidDecrease) {
			workerPaidDecrease = worker.TotalPaid
		}

		debt.Status = domain.StatusFor(debt.Balance, debt.Amount)
		debt.LastUpdatedAt = now
		debt.LastUpdatedBy = userID

		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
			return err
		}
		if err := s.debtRepo.MarkHistoryEntryReversedInTx(ctx, tx, entry.EntryID, userID); err != nil {
			return err
		}
		refundEntry := domain.DebtHistory{
			EntryID:         uuid.NewString(),
			DebtID:          debt.DebtID,
			TransactionType: domain.EntryRefund,
			AmountPaid:      decimal.Zero,
			PreviousBalance: previousBalance,
			NewBalance:      debt.Balance,
			Notes:           fmt.Sprintf("Reversal of payment entry %s: %s", entry.EntryID, req.Reason),
			TransactionDate: now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.debtRepo.AppendHistoryInTx(ctx, tx, refundEntry); err != nil {
			return err
		}
		if err := s.workerRepo.ApplyRollupDeltasInTx(ctx, tx, worker.WorkerID, portsrepo.RollupDeltas{
			CurrentBalance: entry.AmountPaid,
			TotalPaid:      workerPaidDecrease.Neg(),
		}, userID, now); err != nil {
			return err
		}
		updated = debt
		refund = &refundEntry
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Payment reversed",
		slog.String("entry_id", entryID),
		slog.String("debt_id", updated.DebtID),
		slog.String("new_balance", updated.Balance.String()))
	return updated, refund, nil
}

// AdjustDebt edits a debt's terms. An amount change moves the outstanding
// balance and the worker's rollups by the same delta and writes an
// adjustment ledger entry; edits to other fields leave the ledger alone.
func (s *ledgerService) AdjustDebt(ctx context.Context, debtID string, req dto.AdjustDebtRequest, userID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: adjusted amount must be greater than zero", apperrors.ErrValidation)
	}

	var updated *domain.Debt
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		debt, worker, err := s.lockDebtAndWorker(ctx, tx, debtID)
		if err != nil {
			return err
		}
		if debt.Status == domain.DebtCancelled {
			return fmt.Errorf("%w: cannot adjust cancelled debt %s", apperrors.ErrInvalidState, debtID)
		}

		now := time.Now().UTC()
		delta := decimal.Zero
		previousBalance := debt.Balance

		if req.Amount != nil {
			delta = req.Amount.Sub(debt.Amount)
			debt.Amount = *req.Amount
			debt.Balance = previousBalance.Add(delta)
			debt.Status = domain.StatusFor(debt.Balance, debt.Amount)
		}
		if req.Reason != nil {
			debt.Reason = *req.Reason
		}
		if req.DueDate != nil {
			debt.DueDate = req.DueDate
		}
		if req.InterestRate != nil {
			debt.InterestRate = *req.InterestRate
		}
		if req.PaymentTerm != nil {
			debt.PaymentTerm = *req.PaymentTerm
		}
		if req.Notes != nil {
			debt.Notes = appendNote(debt.Notes, *req.Notes)
		}
		debt.LastUpdatedAt = now
		debt.LastUpdatedBy = userID

		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
			return err
		}

		if !delta.IsZero() {
			entry := domain.DebtHistory{
				EntryID:         uuid.NewString(),
				DebtID:          debt.DebtID,
				TransactionType: domain.EntryAdjustment,
				AmountPaid:      decimal.Zero,
				PreviousBalance: previousBalance,
				NewBalance:      debt.Balance,
				Notes:           fmt.Sprintf("Principal adjusted by %s", delta.String()),
				TransactionDate: now,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}
			if err := s.debtRepo.AppendHistoryInTx(ctx, tx, entry); err != nil {
				return err
			}
			if err := s.workerRepo.ApplyRollupDeltasInTx(ctx, tx, worker.WorkerID, portsrepo.RollupDeltas{
				TotalDebt:      delta,
				CurrentBalance: delta,
			}, userID, now); err != nil {
				return err
			}
		}
		updated = debt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Debt adjusted", slog.String("debt_id", debtID))
	return updated, nil
}

// CancelDebt is the terminal soft delete. The outstanding balance at the
// moment of cancellation is simply removed from the worker's rollups, not
// paid off, and the cancellation is recorded as an adjustment ledger entry.
func (s *ledgerService) CancelDebt(ctx context.Context, debtID string, req dto.CancelDebtRequest, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		debt, worker, err := s.lockDebtAndWorker(ctx, tx, debtID)
		if err != nil {
			return err
		}
		if debt.Status == domain.DebtCancelled {
			return fmt.Errorf("%w: debt %s is already cancelled", apperrors.ErrInvalidState, debtID)
		}

		now := time.Now().UTC()
		outstanding := debt.Balance
		debt.Status = domain.DebtCancelled
		debt.Balance = decimal.Zero
		note := "Debt cancelled"
		if req.Reason != "" {
			note = "Debt cancelled: " + req.Reason
		}
		debt.Notes = appendNote(debt.Notes, note)
		debt.LastUpdatedAt = now
		debt.LastUpdatedBy = userID

		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
			return err
		}
		entry := domain.DebtHistory{
			EntryID:         uuid.NewString(),
			DebtID:          debt.DebtID,
			TransactionType: domain.EntryAdjustment,
			AmountPaid:      decimal.Zero,
			PreviousBalance: outstanding,
			NewBalance:      decimal.Zero,
			Notes:           note,
			TransactionDate: now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.debtRepo.AppendHistoryInTx(ctx, tx, entry); err != nil {
			return err
		}
		return s.workerRepo.ApplyRollupDeltasInTx(ctx, tx, worker.WorkerID, portsrepo.RollupDeltas{
			TotalDebt:      debt.OriginalAmount.Neg(),
			CurrentBalance: outstanding.Neg(),
		}, userID, now)
	})
	if err != nil {
		return "", err
	}

	logger.Info("Debt cancelled", slog.String("debt_id", debtID))
	return debtID, nil
}

// OverrideStatus writes a status with no business-rule validation and no
// ledger entry. It exists as an administrative escape hatch; route
// registration gates it behind the admin role.
func (s *ledgerService) OverrideStatus(ctx context.Context, debtID string, req dto.OverrideStatusRequest, userID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.DebtStatus(strings.ToUpper(req.Status))
	if !domain.KnownDebtStatus(status) {
		return nil, fmt.Errorf("%w: unknown debt status %q", apperrors.ErrValidation, req.Status)
	}

	var updated *domain.Debt
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		debt, err := s.debtRepo.FindDebtByIDForUpdate(ctx, tx, debtID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		debt.Status = status
		debt.LastUpdatedAt = now
		debt.LastUpdatedBy = userID
		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
			return err
		}
		updated = debt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Warn("Debt status overridden",
		slog.String("debt_id", debtID),
		slog.String("status", string(status)))
	return updated, nil
}

// QuoteInterest computes a standalone interest quote. Nothing is persisted.
func (s *ledgerService) QuoteInterest(req dto.QuoteInterestRequest) dto.QuoteInterestResponse {
	quoted, total := interest.Calculate(req.Principal, req.Rate, req.Days, req.Compounding)
	return dto.QuoteInterestResponse{Interest: quoted, TotalAmount: total}
}

// GetDebt retrieves a debt by ID.
func (s *ledgerService) GetDebt(ctx context.Context, debtID string) (*domain.Debt, error) {
	return s.debtRepo.FindDebtByID(ctx, debtID)
}

// ListDebtHistory retrieves the ledger entries for a debt in transaction order.
func (s *ledgerService) ListDebtHistory(ctx context.Context, debtID string) ([]domain.DebtHistory, error) {
	if _, err := s.debtRepo.FindDebtByID(ctx, debtID); err != nil {
		return nil, err
	}
	return s.debtRepo.ListHistoryByDebt(ctx, debtID)
}

// ListWorkerDebts retrieves a worker's debts, newest first.
func (s *ledgerService) ListWorkerDebts(ctx context.Context, workerID string, limit int, offset int) ([]domain.Debt, error) {
	if _, err := s.workerRepo.FindWorkerByID(ctx, workerID); err != nil {
		return nil, err
	}
	return s.debtRepo.ListDebtsByWorker(ctx, workerID, limit, offset)
}
