package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

// importColumns is the required CSV header, in order.
var importColumns = []string{"worker_id", "amount", "reason", "due_date", "interest_rate", "payment_term"}

// debtImportService turns a CSV file into a sequence of debt issuances.
// Each row runs in its own unit of work through the ledger service, so a
// bad row mid-file never disturbs the rows already committed.
type debtImportService struct {
	ledger portssvc.LedgerSvcFacade
}

// NewDebtImportService creates the batch import service.
func NewDebtImportService(ledger portssvc.LedgerSvcFacade) portssvc.DebtImportSvcFacade {
	return &debtImportService{ledger: ledger}
}

var _ portssvc.DebtImportSvcFacade = (*debtImportService)(nil)

// ImportFromCSV processes the file best-effort and reports per-row outcomes.
// Only a file-level failure (open, malformed header) returns an error.
func (s *debtImportService) ImportFromCSV(ctx context.Context, filePath string, creatorUserID string) (*dto.ImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open import file: %v", apperrors.ErrValidation, err)
	}
	defer f.Close()

	return s.importFromReader(ctx, logger, f, creatorUserID)
}

func (s *debtImportService) importFromReader(ctx context.Context, logger *slog.Logger, r io.Reader, creatorUserID string) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header: %v", apperrors.ErrValidation, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	result := &dto.ImportResult{}
	rowNum := 1 // header is row 1
	for {
		rowNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Total++
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		result.Total++
		req, err := parseImportRow(record)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		if _, err := s.ledger.IssueDebt(ctx, *req, creatorUserID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Succeeded++
	}

	logger.Info("Debt import finished",
		slog.Int("total", result.Total),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))
	return result, nil
}

func validateHeader(header []string) error {
	if len(header) != len(importColumns) {
		return fmt.Errorf("%w: expected %d columns, got %d", apperrors.ErrValidation, len(importColumns), len(header))
	}
	for i, want := range importColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("%w: column %d must be %q, got %q", apperrors.ErrValidation, i+1, want, header[i])
		}
	}
	return nil
}

func parseImportRow(record []string) (*dto.IssueDebtRequest, error) {
	if len(record) != len(importColumns) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(importColumns), len(record))
	}

	workerID := strings.TrimSpace(record[0])
	if workerID == "" {
		return nil, fmt.Errorf("worker_id is required")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", record[1])
	}

	req := &dto.IssueDebtRequest{
		WorkerID:    workerID,
		Amount:      amount,
		Reason:      strings.TrimSpace(record[2]),
		PaymentTerm: strings.TrimSpace(record[5]),
	}

	if due := strings.TrimSpace(record[3]); due != "" {
		t, err := time.Parse("2006-01-02", due)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date %q, want YYYY-MM-DD", record[3])
		}
		req.DueDate = &t
	}

	if rate := strings.TrimSpace(record[4]); rate != "" {
		r, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("invalid interest_rate %q", record[4])
		}
		req.InterestRate = r
	}

	return req, nil
}
