package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// ProcurementFilter narrows purchase request, order and sale listings.
type ProcurementFilter struct {
	AreaID    string
	DateBegin time.Time
	DateEnd   time.Time
	Skip      int
	Limit     int
}

// ProcurementReader defines read operations for purchase requests, orders
// and sales, each loaded with their detail lines.
type ProcurementReader interface {
	FindPurchaseRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error)
	ListPurchaseRequests(ctx context.Context, filter ProcurementFilter) ([]domain.PurchaseRequest, error)

	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter ProcurementFilter) ([]domain.Order, error)

	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter ProcurementFilter) ([]domain.Sale, error)

	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, skip, limit int) ([]domain.Customer, error)

	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, skip, limit int) ([]domain.Supplier, error)
}

// ProcurementWriter defines write operations for the procurement documents.
// Header plus detail lines are always one storage transaction; deleting a
// header cascades to its lines.
type ProcurementWriter interface {
	SavePurchaseRequest(ctx context.Context, request domain.PurchaseRequest) error
	UpdatePurchaseRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, updatedBy string, updatedAt time.Time) error
	ReplacePurchaseRequestLines(ctx context.Context, requestID string, lines []domain.ProcurementDetailLine, updatedBy string, updatedAt time.Time) error

	SaveOrder(ctx context.Context, order domain.Order) error
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.RequestStatus, updatedBy string, updatedAt time.Time) error
	ReplaceOrderLines(ctx context.Context, orderID string, lines []domain.ProcurementDetailLine, updatedBy string, updatedAt time.Time) error

	SaveSale(ctx context.Context, sale domain.Sale) error
	UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string, updatedAt time.Time) error

	// SetLineQuantityAccorded records the granted quantity on a purchase
	// request or order detail line ahead of delivery.
	SetLineQuantityAccorded(ctx context.Context, lineID string, quantity decimal.Decimal, updatedBy string, updatedAt time.Time) error

	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
}

// ProcurementRepositoryFacade combines all procurement repository interfaces.
type ProcurementRepositoryFacade interface {
	ProcurementReader
	ProcurementWriter
}
