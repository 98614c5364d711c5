package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/core/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

type CashServiceTestSuite struct {
	suite.Suite
	mockCashRepo         *MockCashRepository
	mockDenominationRepo *MockDenominationRepository
	service              portssvc.CashSvcFacade
	areaID               string
	userID               string
	note20k              domain.Denomination
	note10k              domain.Denomination
	coin500              domain.Denomination
	account              domain.CashAccount
}

func (suite *CashServiceTestSuite) SetupTest() {
	suite.mockCashRepo = new(MockCashRepository)
	suite.mockDenominationRepo = new(MockDenominationRepository)
	suite.service = services.NewCashService(suite.mockCashRepo, suite.mockDenominationRepo)

	suite.areaID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.note20k = domain.Denomination{DenominationID: uuid.NewString(), Name: "20000", Value: decimal.NewFromInt(20000), Currency: "MGA"}
	suite.note10k = domain.Denomination{DenominationID: uuid.NewString(), Name: "10000", Value: decimal.NewFromInt(10000), Currency: "MGA"}
	suite.coin500 = domain.Denomination{DenominationID: uuid.NewString(), Name: "500", Value: decimal.NewFromInt(500), Currency: "MGA"}

	suite.account = domain.CashAccount{
		AccountID:  uuid.NewString(),
		AreaID:     suite.areaID,
		UserID:     suite.userID,
		AmountInit: decimal.NewFromInt(100000),
		State:      domain.AccountOpen,
	}
}

func (suite *CashServiceTestSuite) expectCatalog() {
	suite.mockDenominationRepo.On("ListDenominations", mock.Anything).
		Return([]domain.Denomination{suite.note20k, suite.note10k, suite.coin500}, nil)
}

func (suite *CashServiceTestSuite) TestOpenAccount_RecordsOpeningCount() {
	ctx := context.Background()
	req := dto.OpenCashAccountRequest{
		AreaID: suite.areaID,
		Counts: []dto.DenominationCount{
			{DenominationID: suite.note20k.DenominationID, Quantity: 4}, // 80,000
			{DenominationID: suite.coin500.DenominationID, Quantity: 10}, // 5,000
		},
	}

	suite.expectCatalog()
	suite.mockCashRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.CashAccount) bool {
		return a.State == domain.AccountOpen && a.AmountInit.Equal(decimal.NewFromInt(85000))
	})).Return(nil).Once()
	suite.mockCashRepo.On("SaveAdjustment", ctx, mock.MatchedBy(func(a domain.CashAdjustment) bool {
		return a.Type == domain.AdjustmentOpening && a.TotalAmount().Equal(decimal.NewFromInt(85000))
	}), domain.AccountOpen, (*decimal.Decimal)(nil)).Return(nil).Once()

	account, err := suite.service.OpenAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(suite.userID, account.UserID)
	suite.Equal(decimal.NewFromInt(85000).String(), account.AmountInit.String())

	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashServiceTestSuite) TestOpenAccount_UnknownDenomination() {
	ctx := context.Background()
	req := dto.OpenCashAccountRequest{
		AreaID: suite.areaID,
		Counts: []dto.DenominationCount{{DenominationID: uuid.NewString(), Quantity: 1}},
	}

	suite.expectCatalog()

	_, err := suite.service.OpenAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestCreateTransaction_TotalDerivedFromLines() {
	ctx := context.Background()
	req := dto.CreateCashTransactionRequest{
		AccountID: suite.account.AccountID,
		Direction: domain.CashIn,
		Operation: domain.CashSalePayment,
		Counts: []dto.DenominationCount{
			{DenominationID: suite.note10k.DenominationID, Quantity: 3},
			{DenominationID: suite.coin500.DenominationID, Quantity: 2},
		},
	}

	suite.expectCatalog()
	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockCashRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.CashTransaction")).Return(nil).Once()

	transaction, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(transaction)
	suite.Equal(domain.TransactionPending, transaction.Status)
	suite.Equal(decimal.NewFromInt(31000).String(), transaction.TotalAmount().String())
	suite.Len(transaction.Details, 2)

	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashServiceTestSuite) TestCreateTransaction_OutDirectionNegatesTotal() {
	ctx := context.Background()
	req := dto.CreateCashTransactionRequest{
		AccountID: suite.account.AccountID,
		Direction: domain.CashOut,
		Operation: domain.CashBankTransfert,
		Counts:    []dto.DenominationCount{{DenominationID: suite.note20k.DenominationID, Quantity: 5}},
	}

	suite.expectCatalog()
	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockCashRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.CashTransaction")).Return(nil).Once()

	transaction, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(decimal.NewFromInt(-100000).String(), transaction.TotalAmount().String())
}

func (suite *CashServiceTestSuite) TestCreateTransaction_ClosedAccountRefused() {
	ctx := context.Background()
	closed := suite.account
	closed.State = domain.AccountClosed
	req := dto.CreateCashTransactionRequest{
		AccountID: closed.AccountID,
		Direction: domain.CashIn,
		Operation: domain.CashSalePayment,
		Counts:    []dto.DenominationCount{{DenominationID: suite.note10k.DenominationID, Quantity: 1}},
	}

	suite.mockCashRepo.On("FindAccountByID", ctx, closed.AccountID).Return(&closed, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrAccountNotOpen)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestCreateTransaction_IncoherentPair_NothingWritten() {
	ctx := context.Background()
	req := dto.CreateCashTransactionRequest{
		AccountID: suite.account.AccountID,
		Direction: domain.CashOut,
		Operation: domain.CashSalePayment, // SALE_PAYMENT only flows IN
		Counts:    []dto.DenominationCount{{DenominationID: suite.note10k.DenominationID, Quantity: 1}},
	}

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidOperationDirection)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestSetTransactionStatus_SalePaymentCancelRefused() {
	ctx := context.Background()
	transaction := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.account.AccountID,
		Direction:     domain.CashIn,
		Operation:     domain.CashSalePayment,
		Status:        domain.TransactionCompleted,
	}

	suite.mockCashRepo.On("FindTransactionByID", ctx, transaction.TransactionID).Return(&transaction, nil).Once()

	_, err := suite.service.SetTransactionStatus(ctx, transaction.TransactionID, domain.TransactionCanceled, "wrong drawer", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrNonCancelableOperation)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestSetTransactionStatus_DoubleCancelRefused() {
	ctx := context.Background()
	transaction := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		Operation:     domain.CashCorrectionIn,
		Status:        domain.TransactionCanceled,
	}

	suite.mockCashRepo.On("FindTransactionByID", ctx, transaction.TransactionID).Return(&transaction, nil).Once()

	_, err := suite.service.SetTransactionStatus(ctx, transaction.TransactionID, domain.TransactionCanceled, "wrong drawer", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrAlreadyCanceled)
}

// A transaction that reached a final status must stay there. Reopening a
// COMPLETED row would silently pull it out of the theoretical balance.
func (suite *CashServiceTestSuite) TestSetTransactionStatus_FinalStatusCannotReopen() {
	ctx := context.Background()
	transaction := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.account.AccountID,
		Direction:     domain.CashIn,
		Operation:     domain.CashSupply,
		Status:        domain.TransactionCompleted,
	}

	suite.mockCashRepo.On("FindTransactionByID", ctx, transaction.TransactionID).Return(&transaction, nil).Once()

	_, err := suite.service.SetTransactionStatus(ctx, transaction.TransactionID, domain.TransactionPending, "typo in the count", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	failed := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		Operation:     domain.CashSupply,
		Status:        domain.TransactionFailed,
	}
	suite.mockCashRepo.On("FindTransactionByID", ctx, failed.TransactionID).Return(&failed, nil).Once()

	_, err = suite.service.SetTransactionStatus(ctx, failed.TransactionID, domain.TransactionCompleted, "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CashServiceTestSuite) TestSetTransactionStatus_CompletedCancelAllowed() {
	ctx := context.Background()
	transaction := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.account.AccountID,
		Direction:     domain.CashIn,
		Operation:     domain.CashSupply,
		Status:        domain.TransactionCompleted,
	}

	suite.mockCashRepo.On("FindTransactionByID", ctx, transaction.TransactionID).Return(&transaction, nil).Once()
	suite.mockCashRepo.On("UpdateTransactionStatus", ctx, transaction.TransactionID, domain.TransactionCanceled,
		mock.AnythingOfType("*string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.SetTransactionStatus(ctx, transaction.TransactionID, domain.TransactionCanceled, "wrong drawer", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCanceled, updated.Status)
	suite.Equal("wrong drawer", updated.UpdatedReason)

	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashServiceTestSuite) TestCountTransactions_SplitsByDirection() {
	ctx := context.Background()
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockCashRepo.On("CountTransactionsForDay", ctx, suite.account.AccountID, day).
		Return(portsrepo.TransactionDayCounts{In: 5, Out: 2, Canceled: 1}, nil).Once()

	counts, err := suite.service.CountTransactions(ctx, suite.account.AccountID, day)

	suite.Require().NoError(err)
	suite.Equal(suite.account.AccountID, counts.AccountID)
	suite.Equal("2026-08-31", counts.Date)
	suite.Equal(int64(5), counts.In)
	suite.Equal(int64(2), counts.Out)
	suite.Equal(int64(1), counts.Canceled)

	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashServiceTestSuite) TestCountTransactions_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockCashRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CountTransactions(ctx, accountID, time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "CountTransactionsForDay", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestUpdateTransactionLines_FinalTransactionRefused() {
	ctx := context.Background()
	transaction := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		Operation:     domain.CashSupply,
		Status:        domain.TransactionCompleted,
	}

	suite.mockCashRepo.On("FindTransactionByID", ctx, transaction.TransactionID).Return(&transaction, nil).Once()

	_, err := suite.service.UpdateTransactionLines(ctx, transaction.TransactionID, dto.UpdateCashTransactionLinesRequest{
		Counts: []dto.DenominationCount{{DenominationID: suite.note10k.DenominationID, Quantity: 1}},
		Reason: "typo in the count",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "ReplaceTransactionLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestBalanceAccount_ExactCountBalances() {
	ctx := context.Background()
	// AmountInit 100,000 plus completed transactions of 25,000.
	counted := []dto.DenominationCount{
		{DenominationID: suite.note20k.DenominationID, Quantity: 6}, // 120,000
		{DenominationID: suite.coin500.DenominationID, Quantity: 10}, // 5,000
	}

	suite.expectCatalog()
	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockCashRepo.On("CountTransactionsByStatus", ctx, suite.account.AccountID).
		Return(map[domain.TransactionStatus]int64{domain.TransactionCompleted: 4}, nil).Once()
	suite.mockCashRepo.On("SumCompletedByAccount", ctx, suite.account.AccountID).Return(decimal.NewFromInt(25000), nil).Once()
	expectedCount := decimal.NewFromInt(125000)
	suite.mockCashRepo.On("SaveAdjustment", ctx, mock.MatchedBy(func(a domain.CashAdjustment) bool {
		return a.Type == domain.AdjustmentBalancing && a.TotalAmount().Equal(expectedCount)
	}), domain.AccountBalanced, &expectedCount).Return(nil).Once()

	report, err := suite.service.BalanceAccount(ctx, suite.account.AccountID, dto.BalanceAccountRequest{Counts: counted}, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.Balanced)
	suite.Equal(domain.AccountBalanced, report.State)
	suite.True(report.Discrepancy.IsZero())

	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashServiceTestSuite) TestBalanceAccount_ShortCountNotBalanced() {
	ctx := context.Background()
	counted := []dto.DenominationCount{
		{DenominationID: suite.note20k.DenominationID, Quantity: 6}, // 120,000 against 125,000 expected
	}

	suite.expectCatalog()
	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockCashRepo.On("CountTransactionsByStatus", ctx, suite.account.AccountID).
		Return(map[domain.TransactionStatus]int64{}, nil).Once()
	suite.mockCashRepo.On("SumCompletedByAccount", ctx, suite.account.AccountID).Return(decimal.NewFromInt(25000), nil).Once()
	expectedCount := decimal.NewFromInt(120000)
	suite.mockCashRepo.On("SaveAdjustment", ctx, mock.AnythingOfType("domain.CashAdjustment"), domain.AccountNotBalanced, &expectedCount).Return(nil).Once()

	report, err := suite.service.BalanceAccount(ctx, suite.account.AccountID, dto.BalanceAccountRequest{Counts: counted}, suite.userID)

	suite.Require().NoError(err)
	suite.False(report.Balanced)
	suite.Equal(domain.AccountNotBalanced, report.State)
	suite.Equal(decimal.NewFromInt(-5000).String(), report.Discrepancy.String())
}

func (suite *CashServiceTestSuite) TestBalanceAccount_PendingTransactionsRefused() {
	ctx := context.Background()

	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockCashRepo.On("CountTransactionsByStatus", ctx, suite.account.AccountID).
		Return(map[domain.TransactionStatus]int64{domain.TransactionPending: 2}, nil).Once()

	_, err := suite.service.BalanceAccount(ctx, suite.account.AccountID, dto.BalanceAccountRequest{
		Counts: []dto.DenominationCount{{DenominationID: suite.note20k.DenominationID, Quantity: 1}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveAdjustment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestBalanceAccount_ClosedAccountRefused() {
	ctx := context.Background()
	closed := suite.account
	closed.State = domain.AccountClosed

	suite.mockCashRepo.On("FindAccountByID", ctx, closed.AccountID).Return(&closed, nil).Once()

	_, err := suite.service.BalanceAccount(ctx, closed.AccountID, dto.BalanceAccountRequest{
		Counts: []dto.DenominationCount{{DenominationID: suite.note20k.DenominationID, Quantity: 1}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrAccountNotOpen)
}

func (suite *CashServiceTestSuite) TestForceBalance_OnlyFromNotBalanced() {
	ctx := context.Background()

	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()

	_, err := suite.service.ForceBalance(ctx, suite.account.AccountID, dto.ForceBalanceRequest{Reason: "missing 5000"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveAdjustment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashServiceTestSuite) TestForceBalance_RecordsSignOff() {
	ctx := context.Background()
	notBalanced := suite.account
	notBalanced.State = domain.AccountNotBalanced

	suite.mockCashRepo.On("FindAccountByID", ctx, notBalanced.AccountID).Return(&notBalanced, nil).Once()
	suite.mockCashRepo.On("SaveAdjustment", ctx, mock.MatchedBy(func(a domain.CashAdjustment) bool {
		return a.Type == domain.AdjustmentForcingBalance && a.Comment == "till raided for supplier change"
	}), domain.AccountBalancedForced, (*decimal.Decimal)(nil)).Return(nil).Once()

	account, err := suite.service.ForceBalance(ctx, notBalanced.AccountID, dto.ForceBalanceRequest{Reason: "till raided for supplier change"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountBalancedForced, account.State)

	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashServiceTestSuite) TestGetBalanceReport_NoStateChange() {
	ctx := context.Background()

	suite.expectCatalog()
	suite.mockCashRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockCashRepo.On("SumCompletedByAccount", ctx, suite.account.AccountID).Return(decimal.NewFromInt(-40000), nil).Once()

	report, err := suite.service.GetBalanceReport(ctx, suite.account.AccountID, []dto.DenominationCount{
		{DenominationID: suite.note20k.DenominationID, Quantity: 3}, // 60,000
	})

	suite.Require().NoError(err)
	suite.Equal(decimal.NewFromInt(60000).String(), report.TheoreticalBalance.String())
	suite.True(report.Balanced)
	suite.Equal(domain.AccountOpen, report.State)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "SaveAdjustment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "UpdateAccountState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCashService(t *testing.T) {
	suite.Run(t, new(CashServiceTestSuite))
}
