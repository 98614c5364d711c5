package services

import (
	"context"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// PurchaseRequestSvc defines operations on purchase requests
type PurchaseRequestSvc interface {
	GetPurchaseRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error)
	ListPurchaseRequests(ctx context.Context, areaID string, params dto.ListProcurementParams) ([]domain.PurchaseRequest, error)

	// CreatePurchaseRequest persists a request with its detail lines in
	// OPENED status.
	CreatePurchaseRequest(ctx context.Context, req dto.CreatePurchaseRequestRequest, userID string) (*domain.PurchaseRequest, error)

	// GrantPurchaseRequestLines records the granted quantity per line ahead
	// of delivery.
	GrantPurchaseRequestLines(ctx context.Context, requestID string, req dto.GrantLinesRequest, userID string) (*domain.PurchaseRequest, error)

	// DeliverPurchaseRequest moves the request to DELIVERED and records one
	// SUPPLY movement per granted line. Redelivery is a no-op per line
	// already bearing a movement.
	DeliverPurchaseRequest(ctx context.Context, requestID string, userID string) (*domain.PurchaseRequest, error)

	// SetPurchaseRequestStatus transitions the request lifecycle.
	SetPurchaseRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, userID string) (*domain.PurchaseRequest, error)
}

// OrderSvc defines operations on supplier orders
type OrderSvc interface {
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, areaID string, params dto.ListProcurementParams) ([]domain.Order, error)

	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error)

	// DeliverOrder moves the order to DELIVERED and records one SUPPLY
	// movement per line, idempotently.
	DeliverOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error)

	SetOrderStatus(ctx context.Context, orderID string, status domain.RequestStatus, userID string) (*domain.Order, error)
}

// SaleSvc defines operations on sales
type SaleSvc interface {
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, areaID string, params dto.ListProcurementParams) ([]domain.Sale, error)

	// CreateSale persists a sale with its detail lines in PENDING status.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)

	// DeliverSale moves the sale to DELIVERED and records one SALE movement
	// per line, idempotently. Fails when a line would drive stock negative.
	DeliverSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error)

	// RejectSale moves a PENDING sale to REJECTED without touching stock.
	RejectSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error)
}

// PartnerSvc defines operations on customers and suppliers
type PartnerSvc interface {
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListPartnersParams) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)

	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, params dto.ListPartnersParams) ([]domain.Supplier, error)
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, userID string) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error)
}

// ProcurementSvcFacade combines the procurement service interfaces
type ProcurementSvcFacade interface {
	PurchaseRequestSvc
	OrderSvc
	SaleSvc
	PartnerSvc
}
