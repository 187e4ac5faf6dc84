package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/core/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
)

// --- Mock LedgerService (as used by the import service) ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) IssueDebt(ctx context.Context, req dto.IssueDebtRequest, creatorUserID string) (*domain.Debt, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockLedgerService) AccrueInterest(ctx context.Context, debtID string, req dto.AccrueInterestRequest, userID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockLedgerService) MakePayment(ctx context.Context, debtID string, req dto.MakePaymentRequest, userID string) (*domain.Debt, *domain.DebtHistory, error) {
	args := m.Called(ctx, debtID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Debt), args.Get(1).(*domain.DebtHistory), args.Error(2)
}

func (m *MockLedgerService) ReversePayment(ctx context.Context, entryID string, req dto.ReversePaymentRequest, userID string) (*domain.Debt, *domain.DebtHistory, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Debt), args.Get(1).(*domain.DebtHistory), args.Error(2)
}

func (m *MockLedgerService) AdjustDebt(ctx context.Context, debtID string, req dto.AdjustDebtRequest, userID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockLedgerService) CancelDebt(ctx context.Context, debtID string, req dto.CancelDebtRequest, userID string) (string, error) {
	args := m.Called(ctx, debtID, req, userID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerService) OverrideStatus(ctx context.Context, debtID string, req dto.OverrideStatusRequest, userID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockLedgerService) QuoteInterest(req dto.QuoteInterestRequest) dto.QuoteInterestResponse {
	args := m.Called(req)
	return args.Get(0).(dto.QuoteInterestResponse)
}

func (m *MockLedgerService) GetDebt(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockLedgerService) ListDebtHistory(ctx context.Context, debtID string) ([]domain.DebtHistory, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtHistory), args.Error(1)
}

func (m *MockLedgerService) ListWorkerDebts(ctx context.Context, workerID string, limit int, offset int) ([]domain.Debt, error) {
	args := m.Called(ctx, workerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

// --- Test Suite Setup ---
type DebtImportServiceTestSuite struct {
	suite.Suite
	mockLedger *MockLedgerService
	service    portssvc.DebtImportSvcFacade
	userID     string
}

func (suite *DebtImportServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerService)
	suite.service = services.NewDebtImportService(suite.mockLedger)
	suite.userID = uuid.NewString()
}

func (suite *DebtImportServiceTestSuite) writeCSV(content string) string {
	path := filepath.Join(suite.T().TempDir(), "debts.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (suite *DebtImportServiceTestSuite) TestImport_AllRowsSucceed() {
	ctx := context.Background()
	path := suite.writeCSV(
		"worker_id,amount,reason,due_date,interest_rate,payment_term\n" +
			"w-1,1000,seeds,2026-12-31,12,monthly\n" +
			"w-2,250.50,fertilizer,,,\n")

	suite.mockLedger.On("IssueDebt", ctx, mock.MatchedBy(func(req dto.IssueDebtRequest) bool {
		return req.WorkerID == "w-1" &&
			req.Amount.Equal(decimal.NewFromInt(1000)) &&
			req.Reason == "seeds" &&
			req.DueDate != nil && req.DueDate.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)) &&
			req.InterestRate.Equal(decimal.NewFromInt(12)) &&
			req.PaymentTerm == "monthly"
	}), suite.userID).Return(&domain.Debt{DebtID: uuid.NewString()}, nil).Once()
	suite.mockLedger.On("IssueDebt", ctx, mock.MatchedBy(func(req dto.IssueDebtRequest) bool {
		return req.WorkerID == "w-2" && req.Amount.Equal(decimal.NewFromFloat(250.50)) && req.DueDate == nil
	}), suite.userID).Return(&domain.Debt{DebtID: uuid.NewString()}, nil).Once()

	result, err := suite.service.ImportFromCSV(ctx, path, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Total)
	suite.Equal(2, result.Succeeded)
	suite.Equal(0, result.Failed)
	suite.Empty(result.Errors)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *DebtImportServiceTestSuite) TestImport_BadRowDoesNotStopBatch() {
	ctx := context.Background()
	path := suite.writeCSV(
		"worker_id,amount,reason,due_date,interest_rate,payment_term\n" +
			"w-1,not-a-number,seeds,,,\n" +
			"w-2,500,tools,,,\n" +
			",300,no worker,,,\n")

	suite.mockLedger.On("IssueDebt", ctx, mock.MatchedBy(func(req dto.IssueDebtRequest) bool {
		return req.WorkerID == "w-2"
	}), suite.userID).Return(&domain.Debt{DebtID: uuid.NewString()}, nil).Once()

	result, err := suite.service.ImportFromCSV(ctx, path, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(3, result.Total)
	suite.Equal(1, result.Succeeded)
	suite.Equal(2, result.Failed)
	suite.Require().Len(result.Errors, 2)
	suite.Equal(2, result.Errors[0].Row)
	suite.Equal(4, result.Errors[1].Row)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *DebtImportServiceTestSuite) TestImport_LedgerErrorCountsAsFailed() {
	ctx := context.Background()
	path := suite.writeCSV(
		"worker_id,amount,reason,due_date,interest_rate,payment_term\n" +
			"w-missing,100,seeds,,,\n")

	suite.mockLedger.On("IssueDebt", ctx, mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ImportFromCSV(ctx, path, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Total)
	suite.Equal(0, result.Succeeded)
	suite.Equal(1, result.Failed)
}

func (suite *DebtImportServiceTestSuite) TestImport_BadHeaderFailsWholeFile() {
	ctx := context.Background()
	path := suite.writeCSV("worker,amount\nw-1,100\n")

	_, err := suite.service.ImportFromCSV(ctx, path, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedger.AssertNotCalled(suite.T(), "IssueDebt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtImportServiceTestSuite) TestImport_MissingFile() {
	ctx := context.Background()

	_, err := suite.service.ImportFromCSV(ctx, filepath.Join(suite.T().TempDir(), "nope.csv"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestDebtImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtImportServiceTestSuite))
}
