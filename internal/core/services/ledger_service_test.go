package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/core/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
)

// --- Mock DebtRepository ---
type MockDebtRepository struct {
	mock.Mock
}

var _ portsrepo.DebtRepositoryWithTx = (*MockDebtRepository)(nil)

func (m *MockDebtRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDebtRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDebtRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebtsByWorker(ctx context.Context, workerID string, limit int, offset int) ([]domain.Debt, error) {
	args := m.Called(ctx, workerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListHistoryByDebt(ctx context.Context, debtID string) ([]domain.DebtHistory, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtHistory), args.Error(1)
}

func (m *MockDebtRepository) FindHistoryEntryByID(ctx context.Context, entryID string) (*domain.DebtHistory, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtHistory), args.Error(1)
}

func (m *MockDebtRepository) FindDebtByIDForUpdate(ctx context.Context, tx pgx.Tx, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, tx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindHistoryEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.DebtHistory, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtHistory), args.Error(1)
}

func (m *MockDebtRepository) SaveDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	args := m.Called(ctx, tx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	args := m.Called(ctx, tx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) AppendHistoryInTx(ctx context.Context, tx pgx.Tx, entry domain.DebtHistory) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockDebtRepository) MarkHistoryEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string) error {
	args := m.Called(ctx, tx, entryID, userID)
	return args.Error(0)
}

// --- Mock WorkerRepository ---
type MockWorkerRepository struct {
	mock.Mock
}

var _ portsrepo.WorkerRepositoryFacade = (*MockWorkerRepository)(nil)

func (m *MockWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListWorkers(ctx context.Context, limit int, offset int) ([]domain.Worker, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) DeactivateWorker(ctx context.Context, workerID string, userID string, now time.Time) error {
	args := m.Called(ctx, workerID, userID, now)
	return args.Error(0)
}

func (m *MockWorkerRepository) FindWorkerByIDForUpdate(ctx context.Context, tx pgx.Tx, workerID string) (*domain.Worker, error) {
	args := m.Called(ctx, tx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ApplyRollupDeltasInTx(ctx context.Context, tx pgx.Tx, workerID string, deltas portsrepo.RollupDeltas, userID string, now time.Time) error {
	args := m.Called(ctx, tx, workerID, deltas, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockDebtRepo   *MockDebtRepository
	mockWorkerRepo *MockWorkerRepository
	service        portssvc.LedgerSvcFacade
	workerID       string
	userID         string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockWorkerRepo = new(MockWorkerRepository)
	suite.service = services.NewLedgerService(suite.mockDebtRepo, suite.mockWorkerRepo)

	suite.workerID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// expectTx wires a successful Begin/Rollback and, when commit is true, a
// Commit. The deferred Rollback always fires, even after Commit.
func (suite *LedgerServiceTestSuite) expectTx(ctx context.Context, commit bool) {
	suite.mockDebtRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDebtRepo.On("Rollback", ctx, nil).Return(nil).Once()
	if commit {
		suite.mockDebtRepo.On("Commit", ctx, nil).Return(nil).Once()
	}
}

func (suite *LedgerServiceTestSuite) worker() *domain.Worker {
	return &domain.Worker{
		WorkerID:       suite.workerID,
		FirstName:      "Juan",
		LastName:       "Dela Cruz",
		TotalDebt:      decimal.NewFromInt(5000),
		CurrentBalance: decimal.NewFromInt(3000),
		TotalPaid:      decimal.NewFromInt(2000),
		IsActive:       true,
	}
}

func (suite *LedgerServiceTestSuite) pendingDebt(amount int64) *domain.Debt {
	amt := decimal.NewFromInt(amount)
	return &domain.Debt{
		DebtID:         uuid.NewString(),
		WorkerID:       suite.workerID,
		OriginalAmount: amt,
		Amount:         amt,
		Balance:        amt,
		TotalPaid:      decimal.Zero,
		TotalInterest:  decimal.Zero,
		Status:         domain.DebtPending,
		InterestRate:   decimal.NewFromInt(12),
		DateIncurred:   time.Now().UTC(),
	}
}

// --- IssueDebt ---

func (suite *LedgerServiceTestSuite) TestIssueDebt_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(1000)
	req := dto.IssueDebtRequest{
		WorkerID: suite.workerID,
		Amount:   amount,
		Reason:   "seed capital",
	}

	suite.expectTx(ctx, true)
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("SaveDebtInTx", ctx, nil, mock.AnythingOfType("domain.Debt")).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.MatchedBy(func(d portsrepo.RollupDeltas) bool {
		return d.TotalDebt.Equal(amount) && d.CurrentBalance.Equal(amount) && d.TotalPaid.IsZero()
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	debt, err := suite.service.IssueDebt(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(debt)
	suite.NotEmpty(debt.DebtID)
	suite.True(debt.OriginalAmount.Equal(amount))
	suite.True(debt.Amount.Equal(amount))
	suite.True(debt.Balance.Equal(amount))
	suite.Equal(domain.DebtPending, debt.Status)
	suite.Equal(suite.userID, debt.CreatedBy)

	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockWorkerRepo.AssertExpectations(suite.T())
	// Issuance leaves the ledger empty; the debt record itself is the origin.
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "AppendHistoryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestIssueDebt_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.IssueDebtRequest{WorkerID: suite.workerID, Amount: decimal.Zero}

	_, err := suite.service.IssueDebt(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestIssueDebt_WorkerNotFound() {
	ctx := context.Background()
	req := dto.IssueDebtRequest{WorkerID: suite.workerID, Amount: decimal.NewFromInt(100)}

	suite.expectTx(ctx, false)
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.IssueDebt(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "SaveDebtInTx", mock.Anything, mock.Anything, mock.Anything)
}

// --- MakePayment ---

func (suite *LedgerServiceTestSuite) TestMakePayment_PartialPayment() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	payment := decimal.NewFromInt(400)

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Balance.Equal(decimal.NewFromInt(600)) &&
			d.TotalPaid.Equal(payment) &&
			d.Status == domain.DebtPartiallyPaid &&
			d.LastPaymentDate != nil
	})).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.MatchedBy(func(e domain.DebtHistory) bool {
		return e.TransactionType == domain.EntryPayment &&
			e.AmountPaid.Equal(payment) &&
			e.PreviousBalance.Equal(decimal.NewFromInt(1000)) &&
			e.NewBalance.Equal(decimal.NewFromInt(600)) &&
			!e.Reversed
	})).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.MatchedBy(func(d portsrepo.RollupDeltas) bool {
		return d.TotalDebt.IsZero() &&
			d.CurrentBalance.Equal(payment.Neg()) &&
			d.TotalPaid.Equal(payment)
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, entry, err := suite.service.MakePayment(ctx, debt.DebtID, dto.MakePaymentRequest{Amount: payment}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Require().NotNil(entry)
	suite.Equal(domain.DebtPartiallyPaid, updated.Status)
	suite.True(entry.NewBalance.Equal(decimal.NewFromInt(600)))

	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockWorkerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMakePayment_FullPaymentMarksPaid() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	payment := decimal.NewFromInt(1000)

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Balance.IsZero() && d.Status == domain.DebtPaid
	})).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.AnythingOfType("domain.DebtHistory")).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, _, err := suite.service.MakePayment(ctx, debt.DebtID, dto.MakePaymentRequest{Amount: payment}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DebtPaid, updated.Status)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMakePayment_OverpaymentRejected() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)

	suite.expectTx(ctx, false)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()

	_, _, err := suite.service.MakePayment(ctx, debt.DebtID, dto.MakePaymentRequest{Amount: decimal.NewFromInt(1001)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "UpdateDebtInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMakePayment_CancelledDebtRejected() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	debt.Status = domain.DebtCancelled

	suite.expectTx(ctx, false)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()

	_, _, err := suite.service.MakePayment(ctx, debt.DebtID, dto.MakePaymentRequest{Amount: decimal.NewFromInt(10)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- AccrueInterest ---

func (suite *LedgerServiceTestSuite) TestAccrueInterest_ExplicitAmount() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	interestAmt := decimal.NewFromInt(120)

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Balance.Equal(decimal.NewFromInt(1120)) &&
			d.TotalInterest.Equal(interestAmt) &&
			d.Status == domain.DebtPending // interest never changes status
	})).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.MatchedBy(func(e domain.DebtHistory) bool {
		return e.TransactionType == domain.EntryInterest &&
			e.AmountPaid.IsZero() &&
			e.NewBalance.Equal(decimal.NewFromInt(1120))
	})).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.MatchedBy(func(d portsrepo.RollupDeltas) bool {
		return d.TotalDebt.IsZero() && d.CurrentBalance.Equal(interestAmt) && d.TotalPaid.IsZero()
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.AccrueInterest(ctx, debt.DebtID, dto.AccrueInterestRequest{InterestAmount: interestAmt}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Balance.Equal(decimal.NewFromInt(1120)))
	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockWorkerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAccrueInterest_ComputedFromDays() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000) // 12% annual rate from fixture

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	// 1000 * 0.12 * 30/30 = 120 under monthly compounding
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Balance.Equal(decimal.NewFromInt(1120))
	})).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.AnythingOfType("domain.DebtHistory")).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.AccrueInterest(ctx, debt.DebtID, dto.AccrueInterestRequest{Days: 30, Compounding: "monthly"}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.TotalInterest.Equal(decimal.NewFromInt(120)))
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAccrueInterest_NoAmountNoDays() {
	ctx := context.Background()

	_, err := suite.service.AccrueInterest(ctx, uuid.NewString(), dto.AccrueInterestRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAccrueInterest_NegativeAmountRejected() {
	ctx := context.Background()

	// A negative amount is never reinterpreted as a days-based accrual.
	req := dto.AccrueInterestRequest{
		InterestAmount: decimal.NewFromInt(-10),
		Days:           30,
		Compounding:    "monthly",
	}
	_, err := suite.service.AccrueInterest(ctx, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- ReversePayment ---

func (suite *LedgerServiceTestSuite) TestReversePayment_Success() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	debt.Balance = decimal.NewFromInt(600)
	debt.TotalPaid = decimal.NewFromInt(400)
	debt.Status = domain.DebtPartiallyPaid

	paymentEntry := &domain.DebtHistory{
		EntryID:         uuid.NewString(),
		DebtID:          debt.DebtID,
		TransactionType: domain.EntryPayment,
		AmountPaid:      decimal.NewFromInt(400),
		PreviousBalance: decimal.NewFromInt(1000),
		NewBalance:      decimal.NewFromInt(600),
	}

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindHistoryEntryByIDForUpdate", ctx, nil, paymentEntry.EntryID).Return(paymentEntry, nil).Once()
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Balance.Equal(decimal.NewFromInt(1000)) &&
			d.TotalPaid.IsZero() &&
			d.Status == domain.DebtPending // balance back at principal
	})).Return(nil).Once()
	suite.mockDebtRepo.On("MarkHistoryEntryReversedInTx", ctx, nil, paymentEntry.EntryID, suite.userID).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.MatchedBy(func(e domain.DebtHistory) bool {
		return e.TransactionType == domain.EntryRefund &&
			e.AmountPaid.IsZero() &&
			e.PreviousBalance.Equal(decimal.NewFromInt(600)) &&
			e.NewBalance.Equal(decimal.NewFromInt(1000))
	})).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.MatchedBy(func(d portsrepo.RollupDeltas) bool {
		return d.CurrentBalance.Equal(decimal.NewFromInt(400)) &&
			d.TotalPaid.Equal(decimal.NewFromInt(-400))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, refund, err := suite.service.ReversePayment(ctx, paymentEntry.EntryID, dto.ReversePaymentRequest{Reason: "posted against wrong worker"}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(refund)
	suite.Equal(domain.DebtPending, updated.Status)
	suite.Equal(domain.EntryRefund, refund.TransactionType)

	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockWorkerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReversePayment_AlreadyReversed() {
	ctx := context.Background()
	entry := &domain.DebtHistory{
		EntryID:         uuid.NewString(),
		DebtID:          uuid.NewString(),
		TransactionType: domain.EntryPayment,
		AmountPaid:      decimal.NewFromInt(100),
		Reversed:        true,
	}

	suite.expectTx(ctx, false)
	suite.mockDebtRepo.On("FindHistoryEntryByIDForUpdate", ctx, nil, entry.EntryID).Return(entry, nil).Once()

	_, _, err := suite.service.ReversePayment(ctx, entry.EntryID, dto.ReversePaymentRequest{Reason: "duplicate"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "UpdateDebtInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReversePayment_NonPaymentEntry() {
	ctx := context.Background()
	entry := &domain.DebtHistory{
		EntryID:         uuid.NewString(),
		DebtID:          uuid.NewString(),
		TransactionType: domain.EntryInterest,
	}

	suite.expectTx(ctx, false)
	suite.mockDebtRepo.On("FindHistoryEntryByIDForUpdate", ctx, nil, entry.EntryID).Return(entry, nil).Once()

	_, _, err := suite.service.ReversePayment(ctx, entry.EntryID, dto.ReversePaymentRequest{Reason: "oops"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *LedgerServiceTestSuite) TestReversePayment_WorkerTotalPaidFloored() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	debt.Balance = decimal.NewFromInt(600)
	debt.TotalPaid = decimal.NewFromInt(400)
	debt.Status = domain.DebtPartiallyPaid

	worker := suite.worker()
	worker.TotalPaid = decimal.NewFromInt(150) // less than the payment being reversed

	entry := &domain.DebtHistory{
		EntryID:         uuid.NewString(),
		DebtID:          debt.DebtID,
		TransactionType: domain.EntryPayment,
		AmountPaid:      decimal.NewFromInt(400),
	}

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindHistoryEntryByIDForUpdate", ctx, nil, entry.EntryID).Return(entry, nil).Once()
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(worker, nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.AnythingOfType("domain.Debt")).Return(nil).Once()
	suite.mockDebtRepo.On("MarkHistoryEntryReversedInTx", ctx, nil, entry.EntryID, suite.userID).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.AnythingOfType("domain.DebtHistory")).Return(nil).Once()
	// The worker's totalPaid only gives back what it actually holds.
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.MatchedBy(func(d portsrepo.RollupDeltas) bool {
		return d.TotalPaid.Equal(decimal.NewFromInt(-150))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, _, err := suite.service.ReversePayment(ctx, entry.EntryID, dto.ReversePaymentRequest{Reason: "bad posting"}, suite.userID)

	suite.Require().NoError(err)
	suite.mockWorkerRepo.AssertExpectations(suite.T())
}

// --- AdjustDebt ---

func (suite *LedgerServiceTestSuite) TestAdjustDebt_AmountIncrease() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	newAmount := decimal.NewFromInt(1500)

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Amount.Equal(newAmount) &&
			d.Balance.Equal(newAmount) &&
			d.Status == domain.DebtPending
	})).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.MatchedBy(func(e domain.DebtHistory) bool {
		return e.TransactionType == domain.EntryAdjustment &&
			e.PreviousBalance.Equal(decimal.NewFromInt(1000)) &&
			e.NewBalance.Equal(newAmount)
	})).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.MatchedBy(func(d portsrepo.RollupDeltas) bool {
		return d.TotalDebt.Equal(decimal.NewFromInt(500)) && d.CurrentBalance.Equal(decimal.NewFromInt(500))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.AdjustDebt(ctx, debt.DebtID, dto.AdjustDebtRequest{Amount: &newAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockWorkerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAdjustDebt_NonAmountEditNoLedgerEntry() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	reason := "carabao rental"

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Reason == reason && d.Balance.Equal(decimal.NewFromInt(1000))
	})).Return(nil).Once()

	updated, err := suite.service.AdjustDebt(ctx, debt.DebtID, dto.AdjustDebtRequest{Reason: &reason}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(reason, updated.Reason)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "AppendHistoryInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockWorkerRepo.AssertNotCalled(suite.T(), "ApplyRollupDeltasInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAdjustDebt_SameAmountNoLedgerEntry() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	sameAmount := decimal.NewFromInt(1000)

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.AnythingOfType("domain.Debt")).Return(nil).Once()

	_, err := suite.service.AdjustDebt(ctx, debt.DebtID, dto.AdjustDebtRequest{Amount: &sameAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "AppendHistoryInTx", mock.Anything, mock.Anything, mock.Anything)
}

// --- CancelDebt ---

func (suite *LedgerServiceTestSuite) TestCancelDebt_Success() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	debt.Balance = decimal.NewFromInt(700)
	debt.TotalPaid = decimal.NewFromInt(300)
	debt.Status = domain.DebtPartiallyPaid

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Status == domain.DebtCancelled && d.Balance.IsZero()
	})).Return(nil).Once()
	suite.mockDebtRepo.On("AppendHistoryInTx", ctx, nil, mock.MatchedBy(func(e domain.DebtHistory) bool {
		return e.TransactionType == domain.EntryAdjustment &&
			e.PreviousBalance.Equal(decimal.NewFromInt(700)) &&
			e.NewBalance.IsZero()
	})).Return(nil).Once()
	suite.mockWorkerRepo.On("ApplyRollupDeltasInTx", ctx, nil, suite.workerID, mock.MatchedBy(func(d portsrepo.RollupDeltas) bool {
		return d.TotalDebt.Equal(decimal.NewFromInt(-1000)) &&
			d.CurrentBalance.Equal(decimal.NewFromInt(-700)) &&
			d.TotalPaid.IsZero()
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	debtID, err := suite.service.CancelDebt(ctx, debt.DebtID, dto.CancelDebtRequest{Reason: "written off"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(debt.DebtID, debtID)
	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockWorkerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCancelDebt_AlreadyCancelled() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	debt.Status = domain.DebtCancelled

	suite.expectTx(ctx, false)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByIDForUpdate", ctx, nil, suite.workerID).Return(suite.worker(), nil).Once()

	_, err := suite.service.CancelDebt(ctx, debt.DebtID, dto.CancelDebtRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- OverrideStatus ---

func (suite *LedgerServiceTestSuite) TestOverrideStatus_Success() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)

	suite.expectTx(ctx, true)
	suite.mockDebtRepo.On("FindDebtByIDForUpdate", ctx, nil, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, nil, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Status == domain.DebtPaid
	})).Return(nil).Once()

	updated, err := suite.service.OverrideStatus(ctx, debt.DebtID, dto.OverrideStatusRequest{Status: "paid"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DebtPaid, updated.Status)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "AppendHistoryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestOverrideStatus_UnknownStatus() {
	ctx := context.Background()

	_, err := suite.service.OverrideStatus(ctx, uuid.NewString(), dto.OverrideStatusRequest{Status: "SETTLED"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- QuoteInterest ---

func (suite *LedgerServiceTestSuite) TestQuoteInterest() {
	resp := suite.service.QuoteInterest(dto.QuoteInterestRequest{
		Principal:   decimal.NewFromInt(1000),
		Rate:        decimal.NewFromInt(12),
		Days:        30,
		Compounding: "monthly",
	})

	suite.True(resp.Interest.Equal(decimal.NewFromInt(120)), "got %s", resp.Interest)
	suite.True(resp.TotalAmount.Equal(decimal.NewFromInt(1120)))
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestGetDebt_NotFound() {
	ctx := context.Background()
	debtID := uuid.NewString()
	suite.mockDebtRepo.On("FindDebtByID", ctx, debtID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetDebt(ctx, debtID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListDebtHistory_Success() {
	ctx := context.Background()
	debt := suite.pendingDebt(1000)
	entries := []domain.DebtHistory{
		{EntryID: uuid.NewString(), DebtID: debt.DebtID, TransactionType: domain.EntryPayment},
		{EntryID: uuid.NewString(), DebtID: debt.DebtID, TransactionType: domain.EntryInterest},
	}
	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("ListHistoryByDebt", ctx, debt.DebtID).Return(entries, nil).Once()

	got, err := suite.service.ListDebtHistory(ctx, debt.DebtID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *LedgerServiceTestSuite) TestListWorkerDebts_WorkerNotFound() {
	ctx := context.Background()
	suite.mockWorkerRepo.On("FindWorkerByID", ctx, suite.workerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListWorkerDebts(ctx, suite.workerID, 10, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "ListDebtsByWorker", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMakePayment_BeginFails() {
	ctx := context.Background()
	suite.mockDebtRepo.On("Begin", ctx).Return(nil, assert.AnError).Once()

	_, _, err := suite.service.MakePayment(ctx, uuid.NewString(), dto.MakePaymentRequest{Amount: decimal.NewFromInt(10)}, suite.userID)

	suite.Require().Error(err)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "FindDebtByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
