package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
)

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProductsByArea(ctx context.Context, areaID string, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, areaID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceHistory, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceHistory), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product, history []domain.PriceHistory) error {
	args := m.Called(ctx, product, history)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProductState(ctx context.Context, productID string, state domain.ProductState, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, productID, state, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteRejectedProducts(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.ProductCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductCategory), args.Error(1)
}

func (m *MockProductRepository) ListCategoriesByArea(ctx context.Context, areaID string) ([]domain.ProductCategory, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductCategory), args.Error(1)
}

func (m *MockProductRepository) SaveCategory(ctx context.Context, category domain.ProductCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateCategory(ctx context.Context, category domain.ProductCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ApplyStockDeltaInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, productID, delta, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProductRepository) SetActualStockInTx(ctx context.Context, tx pgx.Tx, productID string, value decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, productID, value, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock StockRepository ---

type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryFacade = (*MockStockRepository)(nil)

func (m *MockStockRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) ListMovements(ctx context.Context, filter portsrepo.StockTrackFilter) ([]domain.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) SumSignedQuantities(ctx context.Context, productID string) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRepository) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) CancelMovement(ctx context.Context, original domain.StockMovement, reversing domain.StockMovement) error {
	args := m.Called(ctx, original, reversing)
	return args.Error(0)
}

func (m *MockStockRepository) RecomputeProductStock(ctx context.Context, productID string, repair bool, updatedBy string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, productID, repair, updatedBy)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Mock CashRepository ---

type MockCashRepository struct {
	mock.Mock
}

var _ portsrepo.CashRepositoryFacade = (*MockCashRepository)(nil)

func (m *MockCashRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockCashRepository) FindOpenAccountByArea(ctx context.Context, areaID string, date time.Time) (*domain.CashAccount, error) {
	args := m.Called(ctx, areaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockCashRepository) ListAccountsByArea(ctx context.Context, areaID string, dateBegin, dateEnd time.Time) ([]domain.CashAccount, error) {
	args := m.Called(ctx, areaID, dateBegin, dateEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAccount), args.Error(1)
}

func (m *MockCashRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashRepository) ListTransactions(ctx context.Context, filter portsrepo.CashLedgerFilter) ([]domain.CashTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashTransaction), args.Error(1)
}

func (m *MockCashRepository) SumCompletedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashRepository) CountTransactionsForDay(ctx context.Context, accountID string, day time.Time) (portsrepo.TransactionDayCounts, error) {
	args := m.Called(ctx, accountID, day)
	return args.Get(0).(portsrepo.TransactionDayCounts), args.Error(1)
}

func (m *MockCashRepository) CountTransactionsByStatus(ctx context.Context, accountID string) (map[domain.TransactionStatus]int64, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionStatus]int64), args.Error(1)
}

func (m *MockCashRepository) ListAdjustmentsByAccount(ctx context.Context, accountID string) ([]domain.CashAdjustment, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAdjustment), args.Error(1)
}

func (m *MockCashRepository) SaveAccount(ctx context.Context, account domain.CashAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockCashRepository) UpdateAccountState(ctx context.Context, accountID string, state domain.CashAccountState, balancingAmount *decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, accountID, state, balancingAmount, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockCashRepository) SaveTransaction(ctx context.Context, transaction domain.CashTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockCashRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, status, reason, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockCashRepository) ReplaceTransactionLines(ctx context.Context, transactionID string, lines []domain.CashTransactionDetailLine, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, lines, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockCashRepository) SaveAdjustment(ctx context.Context, adjustment domain.CashAdjustment, accountState domain.CashAccountState, balancingAmount *decimal.Decimal) error {
	args := m.Called(ctx, adjustment, accountState, balancingAmount)
	return args.Error(0)
}

// --- Mock DenominationRepository ---

type MockDenominationRepository struct {
	mock.Mock
}

var _ portsrepo.DenominationRepository = (*MockDenominationRepository)(nil)

func (m *MockDenominationRepository) FindDenominationByID(ctx context.Context, denominationID string) (*domain.Denomination, error) {
	args := m.Called(ctx, denominationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Denomination), args.Error(1)
}

func (m *MockDenominationRepository) ListDenominations(ctx context.Context) ([]domain.Denomination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Denomination), args.Error(1)
}

func (m *MockDenominationRepository) SaveDenomination(ctx context.Context, denomination domain.Denomination) error {
	args := m.Called(ctx, denomination)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ReplaceInvoiceLines(ctx context.Context, invoiceID string, lines []domain.InvoiceDetailLine, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, lines, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyPayment(ctx context.Context, payment domain.Payment) (*domain.Invoice, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock ProcurementRepository ---

type MockProcurementRepository struct {
	mock.Mock
}

var _ portsrepo.ProcurementRepositoryFacade = (*MockProcurementRepository)(nil)

func (m *MockProcurementRepository) FindPurchaseRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseRequest), args.Error(1)
}

func (m *MockProcurementRepository) ListPurchaseRequests(ctx context.Context, filter portsrepo.ProcurementFilter) ([]domain.PurchaseRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRequest), args.Error(1)
}

func (m *MockProcurementRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockProcurementRepository) ListOrders(ctx context.Context, filter portsrepo.ProcurementFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockProcurementRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockProcurementRepository) ListSales(ctx context.Context, filter portsrepo.ProcurementFilter) ([]domain.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockProcurementRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockProcurementRepository) ListCustomers(ctx context.Context, skip, limit int) ([]domain.Customer, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockProcurementRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockProcurementRepository) ListSuppliers(ctx context.Context, skip, limit int) ([]domain.Supplier, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockProcurementRepository) SavePurchaseRequest(ctx context.Context, request domain.PurchaseRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockProcurementRepository) UpdatePurchaseRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, requestID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProcurementRepository) ReplacePurchaseRequestLines(ctx context.Context, requestID string, lines []domain.ProcurementDetailLine, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, requestID, lines, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProcurementRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockProcurementRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.RequestStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, orderID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProcurementRepository) ReplaceOrderLines(ctx context.Context, orderID string, lines []domain.ProcurementDetailLine, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, orderID, lines, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProcurementRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockProcurementRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, saleID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProcurementRepository) SetLineQuantityAccorded(ctx context.Context, lineID string, quantity decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, lineID, quantity, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProcurementRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockProcurementRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockProcurementRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockProcurementRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}
