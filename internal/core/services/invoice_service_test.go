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
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/core/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// --- Mock CashService ---

type MockCashService struct {
	mock.Mock
}

var _ portssvc.CashSvcFacade = (*MockCashService)(nil)

func (m *MockCashService) OpenAccount(ctx context.Context, req dto.OpenCashAccountRequest, userID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockCashService) GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockCashService) ListAccounts(ctx context.Context, areaID string, params dto.ListCashAccountsParams) ([]domain.CashAccount, error) {
	args := m.Called(ctx, areaID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAccount), args.Error(1)
}

func (m *MockCashService) CloseAccount(ctx context.Context, accountID string, userID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockCashService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashService) ListTransactions(ctx context.Context, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCashTransactionsResponse), args.Error(1)
}

func (m *MockCashService) CreateTransaction(ctx context.Context, req dto.CreateCashTransactionRequest, userID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashService) UpdateTransactionLines(ctx context.Context, transactionID string, req dto.UpdateCashTransactionLinesRequest, userID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashService) SetTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason string, userID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID, status, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashService) CountTransactions(ctx context.Context, accountID string, day time.Time) (*dto.TransactionCountsResponse, error) {
	args := m.Called(ctx, accountID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionCountsResponse), args.Error(1)
}

func (m *MockCashService) GetBalanceReport(ctx context.Context, accountID string, counted []dto.DenominationCount) (*dto.BalanceReport, error) {
	args := m.Called(ctx, accountID, counted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceReport), args.Error(1)
}

func (m *MockCashService) BalanceAccount(ctx context.Context, accountID string, req dto.BalanceAccountRequest, userID string) (*dto.BalanceReport, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceReport), args.Error(1)
}

func (m *MockCashService) ForceBalance(ctx context.Context, accountID string, req dto.ForceBalanceRequest, userID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockCashService) ListDenominations(ctx context.Context) ([]domain.Denomination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Denomination), args.Error(1)
}

func (m *MockCashService) CreateDenomination(ctx context.Context, req dto.CreateDenominationRequest, userID string) (*domain.Denomination, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Denomination), args.Error(1)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo     *MockInvoiceRepository
	mockProcurementRepo *MockProcurementRepository
	mockCashSvc         *MockCashService
	service             portssvc.InvoiceSvcFacade
	areaID              string
	userID              string
	customerID          string
	supplierID          string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockProcurementRepo = new(MockProcurementRepository)
	suite.mockCashSvc = new(MockCashService)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockProcurementRepo, suite.mockCashSvc)

	suite.areaID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.customerID = uuid.NewString()
	suite.supplierID = uuid.NewString()
}

// outgoingInvoice builds a customer invoice with one confirmed line worth
// 50,000 and 20,000 already paid.
func (suite *InvoiceServiceTestSuite) outgoingInvoice() domain.Invoice {
	real := decimal.NewFromInt(5)
	return domain.Invoice{
		InvoiceID:   uuid.NewString(),
		AreaID:      suite.areaID,
		Type:        domain.InvoiceOut,
		Status:      domain.InvoicePartial,
		CustomerID:  &suite.customerID,
		AmountPayed: decimal.NewFromInt(20000),
		Details: []domain.InvoiceDetailLine{
			{
				LineID:            uuid.NewString(),
				ProductID:         uuid.NewString(),
				QuantityRequested: decimal.NewFromInt(5),
				QuantityReal:      &real,
				UnitaryPrice:      decimal.NewFromInt(10000),
			},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	real := decimal.NewFromInt(2)
	req := dto.CreateInvoiceRequest{
		AreaID:     suite.areaID,
		Type:       domain.InvoiceOut,
		CustomerID: &suite.customerID,
		Details: []dto.InvoiceLineRequest{
			{ProductID: uuid.NewString(), QuantityRequested: decimal.NewFromInt(3), QuantityReal: &real, UnitaryPrice: decimal.NewFromInt(1500)},
		},
	}

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	resp, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(domain.InvoicePending, resp.Status)
	suite.Equal(decimal.NewFromInt(4500).String(), resp.TotalAmount.String())
	suite.Equal(decimal.NewFromInt(3000).String(), resp.AmountToPay.String())
	suite.Equal(decimal.NewFromInt(3000).String(), resp.AmountRemaining.String())

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_IncomingNeedsSupplier() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		AreaID: suite.areaID,
		Type:   domain.InvoiceIn,
		Details: []dto.InvoiceLineRequest{
			{ProductID: uuid.NewString(), QuantityRequested: decimal.NewFromInt(1), UnitaryPrice: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestAddPayment_OverpaymentRefused() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	// 30,000 remaining, 40,000 offered.
	_, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount: decimal.NewFromInt(40000),
		Method: domain.PaymentWire,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrOverpayment)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestAddPayment_RejectedInvoiceRefused() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()
	invoice.Status = domain.InvoiceRejected
	invoice.AmountPayed = decimal.Zero

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount: decimal.NewFromInt(1000),
		Method: domain.PaymentCard,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrRejectedWithPayment)
}

func (suite *InvoiceServiceTestSuite) TestAddPayment_ExactSettlementCloses() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()
	settled := invoice
	settled.AmountPayed = decimal.NewFromInt(50000)
	settled.Status = domain.InvoiceClosed

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.InvoiceID == invoice.InvoiceID &&
			p.Amount.Equal(decimal.NewFromInt(30000)) &&
			p.Direction == domain.CashIn &&
			p.CashTransactionID == nil
	})).Return(&settled, nil).Once()
	suite.mockInvoiceRepo.On("ListPaymentsByInvoice", ctx, invoice.InvoiceID).Return([]domain.Payment{}, nil).Once()

	resp, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount: decimal.NewFromInt(30000),
		Method: domain.PaymentWire,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceClosed, resp.Status)
	suite.True(resp.AmountRemaining.IsZero())

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestAddPayment_CashLinksRegisterTransaction() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()
	accountID := uuid.NewString()
	counts := []dto.DenominationCount{{DenominationID: uuid.NewString(), Quantity: 3}}

	registerTxn := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Direction:     domain.CashIn,
		Operation:     domain.CashSalePayment,
		Status:        domain.TransactionPending,
		Details: []domain.CashTransactionDetailLine{
			{Quantity: 3, DenominationValue: decimal.NewFromInt(10000)},
		},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockCashSvc.On("CreateTransaction", ctx, mock.MatchedBy(func(req dto.CreateCashTransactionRequest) bool {
		return req.AccountID == accountID &&
			req.Direction == domain.CashIn &&
			req.Operation == domain.CashSalePayment
	}), suite.userID).Return(&registerTxn, nil).Once()
	suite.mockCashSvc.On("SetTransactionStatus", ctx, registerTxn.TransactionID, domain.TransactionCompleted, "", suite.userID).Return(&registerTxn, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.CashTransactionID != nil && *p.CashTransactionID == registerTxn.TransactionID
	})).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("ListPaymentsByInvoice", ctx, invoice.InvoiceID).Return([]domain.Payment{}, nil).Once()

	_, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount:    decimal.NewFromInt(30000),
		Method:    domain.PaymentCash,
		AccountID: &accountID,
		Counts:    counts,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockCashSvc.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestAddPayment_CashCountMismatchRefused() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()
	accountID := uuid.NewString()

	// Counted 25,000 against a declared payment of 30,000.
	registerTxn := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		Direction:     domain.CashIn,
		Operation:     domain.CashSalePayment,
		Details: []domain.CashTransactionDetailLine{
			{Quantity: 5, DenominationValue: decimal.NewFromInt(5000)},
		},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockCashSvc.On("CreateTransaction", ctx, mock.AnythingOfType("dto.CreateCashTransactionRequest"), suite.userID).Return(&registerTxn, nil).Once()
	suite.mockCashSvc.On("SetTransactionStatus", ctx, registerTxn.TransactionID, domain.TransactionFailed, "payment amount mismatch", suite.userID).Return(&registerTxn, nil).Once()

	_, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount:    decimal.NewFromInt(30000),
		Method:    domain.PaymentCash,
		AccountID: &accountID,
		Counts:    []dto.DenominationCount{{DenominationID: uuid.NewString(), Quantity: 5}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything)
}

// When the payment cannot be applied under the invoice row lock, the linked
// register transaction must be failed instead of lingering, and it must never
// have been completed into the drawer's theoretical balance.
func (suite *InvoiceServiceTestSuite) TestAddPayment_CashFailedApplicationFailsRegisterTransaction() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()
	accountID := uuid.NewString()

	registerTxn := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Direction:     domain.CashIn,
		Operation:     domain.CashSalePayment,
		Status:        domain.TransactionPending,
		Details: []domain.CashTransactionDetailLine{
			{Quantity: 3, DenominationValue: decimal.NewFromInt(10000)},
		},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockCashSvc.On("CreateTransaction", ctx, mock.AnythingOfType("dto.CreateCashTransactionRequest"), suite.userID).Return(&registerTxn, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil, domain.ErrOverpayment).Once()
	suite.mockCashSvc.On("SetTransactionStatus", ctx, registerTxn.TransactionID, domain.TransactionFailed, "payment not applied", suite.userID).Return(&registerTxn, nil).Once()

	_, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount:    decimal.NewFromInt(30000),
		Method:    domain.PaymentCash,
		AccountID: &accountID,
		Counts:    []dto.DenominationCount{{DenominationID: uuid.NewString(), Quantity: 3}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrOverpayment)
	suite.mockCashSvc.AssertNotCalled(suite.T(), "SetTransactionStatus", ctx, registerTxn.TransactionID, domain.TransactionCompleted, "", suite.userID)
	suite.mockCashSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestAddPayment_CashWithoutAccountRefused() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount: decimal.NewFromInt(10000),
		Method: domain.PaymentCash,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCashSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestAddPayment_SupplierInvoicePaysOut() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()
	invoice.Type = domain.InvoiceIn
	invoice.CustomerID = nil
	invoice.SupplierID = &suite.supplierID

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Direction == domain.CashOut
	})).Return(&invoice, nil).Once()
	suite.mockInvoiceRepo.On("ListPaymentsByInvoice", ctx, invoice.InvoiceID).Return([]domain.Payment{}, nil).Once()

	_, err := suite.service.AddPayment(ctx, invoice.InvoiceID, dto.AddPaymentRequest{
		Amount: decimal.NewFromInt(10000),
		Method: domain.PaymentWire,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceLines_BelowPaidRefused() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice() // 20,000 already paid

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	real := decimal.NewFromInt(1)
	_, err := suite.service.UpdateInvoiceLines(ctx, invoice.InvoiceID, dto.UpdateInvoiceLinesRequest{
		Details: []dto.InvoiceLineRequest{
			// New amount to pay would be 10,000.
			{ProductID: uuid.NewString(), QuantityRequested: decimal.NewFromInt(1), QuantityReal: &real, UnitaryPrice: decimal.NewFromInt(10000)},
		},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ReplaceInvoiceLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceLines_ClosedInvoiceRefused() {
	ctx := context.Background()
	invoice := suite.outgoingInvoice()
	invoice.Status = domain.InvoiceClosed

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.service.UpdateInvoiceLines(ctx, invoice.InvoiceID, dto.UpdateInvoiceLinesRequest{
		Details: []dto.InvoiceLineRequest{
			{ProductID: uuid.NewString(), QuantityRequested: decimal.NewFromInt(1), UnitaryPrice: decimal.NewFromInt(100)},
		},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *InvoiceServiceTestSuite) TestSetInvoiceStatus_UnderpaidClosurePropagates() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.InvoiceClosed, suite.userID, mock.AnythingOfType("time.Time")).
		Return(domain.ErrUnderpaidClosure).Once()

	_, err := suite.service.SetInvoiceStatus(ctx, invoiceID, domain.InvoiceClosed, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrUnderpaidClosure)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromOrder_CopiesLines() {
	ctx := context.Background()
	granted := decimal.NewFromInt(4)
	order := domain.Order{
		OrderID:    uuid.NewString(),
		AreaID:     suite.areaID,
		Reference:  "ORD-2026-012",
		Status:     domain.RequestDelivered,
		CustomerID: suite.customerID,
		Details: []domain.ProcurementDetailLine{{
			LineID:            uuid.NewString(),
			ProductID:         uuid.NewString(),
			QuantityRequested: decimal.NewFromInt(5),
			QuantityAccorded:  &granted,
			UnitaryPrice:      decimal.NewFromInt(10000),
		}},
	}

	suite.mockProcurementRepo.On("FindOrderByID", ctx, order.OrderID).Return(&order, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Type == domain.InvoiceOut &&
			inv.OrderID != nil && *inv.OrderID == order.OrderID &&
			inv.CustomerID != nil && *inv.CustomerID == suite.customerID &&
			len(inv.Details) == 1 &&
			inv.Details[0].QuantityRequested.Equal(decimal.NewFromInt(5)) &&
			inv.Details[0].QuantityReal != nil && inv.Details[0].QuantityReal.Equal(granted)
	})).Return(nil).Once()

	resp, err := suite.service.CreateInvoiceFromOrder(ctx, order.OrderID, dto.InvoiceFromOrderRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePending, resp.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromPurchase_RejectedRefused() {
	ctx := context.Background()
	request := domain.PurchaseRequest{
		PurchaseID: uuid.NewString(),
		AreaID:     suite.areaID,
		Status:     domain.RequestRejected,
	}

	suite.mockProcurementRepo.On("FindPurchaseRequestByID", ctx, request.PurchaseID).Return(&request, nil).Once()

	_, err := suite.service.CreateInvoiceFromPurchase(ctx, request.PurchaseID, dto.InvoiceFromPurchaseRequest{SupplierID: suite.supplierID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
