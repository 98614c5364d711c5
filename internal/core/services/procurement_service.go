package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
	"github.com/tahina-mg/pos_management_app/internal/middleware"
)

// procurementService provides purchase request, order, sale and partner
// operations. Deliveries write into the stock ledger through the stock
// repository so the movement and the product projection stay atomic.
type procurementService struct {
	procurementRepo portsrepo.ProcurementRepositoryFacade
	stockRepo       portsrepo.StockRepositoryFacade
}

// NewProcurementService creates a new ProcurementService.
func NewProcurementService(procurementRepo portsrepo.ProcurementRepositoryFacade, stockRepo portsrepo.StockRepositoryFacade) portssvc.ProcurementSvcFacade {
	return &procurementService{
		procurementRepo: procurementRepo,
		stockRepo:       stockRepo,
	}
}

var _ portssvc.ProcurementSvcFacade = (*procurementService)(nil)

func buildProcurementLines(parentID string, reqs []dto.ProcurementLineRequest) ([]domain.ProcurementDetailLine, error) {
	lines := make([]domain.ProcurementDetailLine, len(reqs))
	for i, lineReq := range reqs {
		if lineReq.QuantityRequested.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: requested quantity must be positive for product %s", apperrors.ErrValidation, lineReq.ProductID)
		}
		if lineReq.UnitaryPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, lineReq.ProductID)
		}
		lines[i] = domain.ProcurementDetailLine{
			LineID:            uuid.NewString(),
			ParentID:          parentID,
			ProductID:         lineReq.ProductID,
			QuantityRequested: lineReq.QuantityRequested,
			UnitaryPrice:      lineReq.UnitaryPrice,
		}
	}
	return lines, nil
}

// --- Purchase requests ---

// CreatePurchaseRequest persists a supply request in OPENED status.
func (s *procurementService) CreatePurchaseRequest(ctx context.Context, req dto.CreatePurchaseRequestRequest, userID string) (*domain.PurchaseRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	dateOf := now
	if req.DateOf != nil {
		dateOf = req.DateOf.UTC()
	}

	request := domain.PurchaseRequest{
		PurchaseID:  uuid.NewString(),
		AreaID:      req.AreaID,
		Reference:   req.Reference,
		Status:      domain.RequestOpened,
		DateOf:      dateOf,
		Comments:    req.Comments,
		InitiatedBy: req.InitiatedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	lines, err := buildProcurementLines(request.PurchaseID, req.Details)
	if err != nil {
		return nil, err
	}
	request.Details = lines

	if err := s.procurementRepo.SavePurchaseRequest(ctx, request); err != nil {
		logger.Error("Failed to save purchase request", slog.String("error", err.Error()), slog.String("area_id", req.AreaID))
		return nil, fmt.Errorf("failed to save purchase request: %w", err)
	}

	logger.Info("Purchase request created", slog.String("purchase_id", request.PurchaseID), slog.String("area_id", request.AreaID))
	return &request, nil
}

// GetPurchaseRequestByID retrieves a purchase request with its lines.
func (s *procurementService) GetPurchaseRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	request, err := s.procurementRepo.FindPurchaseRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request %s: %w", requestID, err)
	}
	return request, nil
}

// ListPurchaseRequests retrieves purchase requests for an area.
func (s *procurementService) ListPurchaseRequests(ctx context.Context, areaID string, params dto.ListProcurementParams) ([]domain.PurchaseRequest, error) {
	requests, err := s.procurementRepo.ListPurchaseRequests(ctx, procurementFilter(areaID, params))
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase requests for area %s: %w", areaID, err)
	}
	return requests, nil
}

// GrantPurchaseRequestLines records granted quantities ahead of delivery.
func (s *procurementService) GrantPurchaseRequestLines(ctx context.Context, requestID string, req dto.GrantLinesRequest, userID string) (*domain.PurchaseRequest, error) {
	request, err := s.procurementRepo.FindPurchaseRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request %s: %w", requestID, err)
	}
	if request.Status != domain.RequestOpened {
		return nil, fmt.Errorf("%w: purchase request %s is %s", apperrors.ErrConflict, requestID, request.Status)
	}

	if err := s.grantLines(ctx, request.Details, req, userID); err != nil {
		return nil, err
	}
	return s.procurementRepo.FindPurchaseRequestByID(ctx, requestID)
}

func (s *procurementService) grantLines(ctx context.Context, lines []domain.ProcurementDetailLine, req dto.GrantLinesRequest, userID string) error {
	byID := make(map[string]domain.ProcurementDetailLine, len(lines))
	for _, line := range lines {
		byID[line.LineID] = line
	}
	now := time.Now().UTC()
	for _, grant := range req.Lines {
		if _, ok := byID[grant.LineID]; !ok {
			return fmt.Errorf("%w: detail line %s", apperrors.ErrNotFound, grant.LineID)
		}
		if grant.QuantityAccorded.IsNegative() {
			return fmt.Errorf("%w: granted quantity must not be negative", apperrors.ErrValidation)
		}
		if err := s.procurementRepo.SetLineQuantityAccorded(ctx, grant.LineID, grant.QuantityAccorded, userID, now); err != nil {
			return fmt.Errorf("failed to set granted quantity on line %s: %w", grant.LineID, err)
		}
	}
	return nil
}

// DeliverPurchaseRequest moves the request to DELIVERED and posts one
// IN/SUPPLY movement per granted line. A line already bearing a movement id
// is skipped, so redelivery after a partial failure completes the remainder
// without double-counting.
func (s *procurementService) DeliverPurchaseRequest(ctx context.Context, requestID string, userID string) (*domain.PurchaseRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.procurementRepo.FindPurchaseRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request %s: %w", requestID, err)
	}
	if request.Status != domain.RequestOpened && request.Status != domain.RequestDelivered {
		return nil, fmt.Errorf("%w: purchase request %s is %s", apperrors.ErrConflict, requestID, request.Status)
	}

	now := time.Now().UTC()
	for _, line := range request.Details {
		if line.StockMovementID != nil {
			continue // already delivered
		}
		quantity := line.QuantityRequested
		if line.QuantityAccorded != nil {
			quantity = *line.QuantityAccorded
		}
		if quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		lineID := line.LineID
		movement := domain.StockMovement{
			MovementID:           uuid.NewString(),
			AreaID:               request.AreaID,
			ProductID:            line.ProductID,
			Direction:            domain.MovementIn,
			Operation:            domain.MovementSupply,
			Quantity:             quantity,
			Status:               domain.MovementPosted,
			DateOf:               now,
			Comment:              fmt.Sprintf("delivery of purchase request %s", request.Reference),
			InitiatedBy:          request.InitiatedBy,
			PurchaseDetailLineID: &lineID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.stockRepo.SaveMovement(ctx, movement); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue // concurrent delivery already recorded this line
			}
			logger.Error("Failed to post delivery movement", slog.String("error", err.Error()), slog.String("line_id", lineID))
			return nil, fmt.Errorf("failed to post delivery movement for line %s: %w", lineID, err)
		}
	}

	if request.Status != domain.RequestDelivered {
		if err := s.procurementRepo.UpdatePurchaseRequestStatus(ctx, requestID, domain.RequestDelivered, userID, now); err != nil {
			return nil, fmt.Errorf("failed to mark purchase request delivered: %w", err)
		}
	}

	logger.Info("Purchase request delivered", slog.String("purchase_id", requestID))
	return s.procurementRepo.FindPurchaseRequestByID(ctx, requestID)
}

// SetPurchaseRequestStatus transitions the request lifecycle.
func (s *procurementService) SetPurchaseRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, userID string) (*domain.PurchaseRequest, error) {
	if status == domain.RequestDelivered {
		return s.DeliverPurchaseRequest(ctx, requestID, userID)
	}

	request, err := s.procurementRepo.FindPurchaseRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request %s: %w", requestID, err)
	}
	if request.Status == domain.RequestClosed || request.Status == domain.RequestRejected {
		return nil, fmt.Errorf("%w: purchase request %s is %s", apperrors.ErrConflict, requestID, request.Status)
	}

	now := time.Now().UTC()
	if err := s.procurementRepo.UpdatePurchaseRequestStatus(ctx, requestID, status, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update purchase request status: %w", err)
	}
	request.Status = status
	request.LastUpdatedAt = now
	request.LastUpdatedBy = userID
	return request, nil
}

// --- Orders ---

// CreateOrder persists a customer order in OPENED status.
func (s *procurementService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	dateOf := now
	if req.DateOf != nil {
		dateOf = req.DateOf.UTC()
	}

	order := domain.Order{
		OrderID:    uuid.NewString(),
		AreaID:     req.AreaID,
		Reference:  req.Reference,
		Status:     domain.RequestOpened,
		DateOf:     dateOf,
		Comments:   req.Comments,
		CustomerID: req.CustomerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	lines, err := buildProcurementLines(order.OrderID, req.Details)
	if err != nil {
		return nil, err
	}
	order.Details = lines

	if err := s.procurementRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save order", slog.String("error", err.Error()), slog.String("area_id", req.AreaID))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	logger.Info("Order created", slog.String("order_id", order.OrderID), slog.String("customer_id", order.CustomerID))
	return &order, nil
}

// GetOrderByID retrieves an order with its lines.
func (s *procurementService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.procurementRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return order, nil
}

// ListOrders retrieves orders for an area.
func (s *procurementService) ListOrders(ctx context.Context, areaID string, params dto.ListProcurementParams) ([]domain.Order, error) {
	orders, err := s.procurementRepo.ListOrders(ctx, procurementFilter(areaID, params))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for area %s: %w", areaID, err)
	}
	return orders, nil
}

// DeliverOrder moves the order to DELIVERED and posts one OUT/SALE movement
// per line, skipping lines already delivered. A line that would drive stock
// negative fails the whole delivery.
func (s *procurementService) DeliverOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.procurementRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.Status != domain.RequestOpened && order.Status != domain.RequestDelivered {
		return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrConflict, orderID, order.Status)
	}

	now := time.Now().UTC()
	for _, line := range order.Details {
		if line.StockMovementID != nil {
			continue
		}
		quantity := line.QuantityRequested
		if line.QuantityAccorded != nil {
			quantity = *line.QuantityAccorded
		}
		if quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		lineID := line.LineID
		movement := domain.StockMovement{
			MovementID:        uuid.NewString(),
			AreaID:            order.AreaID,
			ProductID:         line.ProductID,
			Direction:         domain.MovementOut,
			Operation:         domain.MovementSale,
			Quantity:          quantity,
			Status:            domain.MovementPosted,
			DateOf:            now,
			Comment:           fmt.Sprintf("delivery of order %s", order.Reference),
			OrderDetailLineID: &lineID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.stockRepo.SaveMovement(ctx, movement); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			logger.Error("Failed to post order delivery movement", slog.String("error", err.Error()), slog.String("line_id", lineID))
			return nil, fmt.Errorf("failed to post delivery movement for line %s: %w", lineID, err)
		}
	}

	if order.Status != domain.RequestDelivered {
		if err := s.procurementRepo.UpdateOrderStatus(ctx, orderID, domain.RequestDelivered, userID, now); err != nil {
			return nil, fmt.Errorf("failed to mark order delivered: %w", err)
		}
	}

	logger.Info("Order delivered", slog.String("order_id", orderID))
	return s.procurementRepo.FindOrderByID(ctx, orderID)
}

// SetOrderStatus transitions the order lifecycle.
func (s *procurementService) SetOrderStatus(ctx context.Context, orderID string, status domain.RequestStatus, userID string) (*domain.Order, error) {
	if status == domain.RequestDelivered {
		return s.DeliverOrder(ctx, orderID, userID)
	}

	order, err := s.procurementRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.Status == domain.RequestClosed || order.Status == domain.RequestRejected {
		return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrConflict, orderID, order.Status)
	}

	now := time.Now().UTC()
	if err := s.procurementRepo.UpdateOrderStatus(ctx, orderID, status, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID
	return order, nil
}

// --- Sales ---

// CreateSale persists a sale in PENDING status. Stock moves at delivery, not
// at creation.
func (s *procurementService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	dateOf := now
	if req.DateOf != nil {
		dateOf = req.DateOf.UTC()
	}

	sale := domain.Sale{
		SaleID:     uuid.NewString(),
		AreaID:     req.AreaID,
		Reference:  req.Reference,
		CustomerID: req.CustomerID,
		Status:     domain.SalePending,
		DateOf:     dateOf,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	lines := make([]domain.SaleDetailLine, len(req.Details))
	for i, lineReq := range req.Details {
		if lineReq.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, lineReq.ProductID)
		}
		if lineReq.UnitaryPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, lineReq.ProductID)
		}
		lines[i] = domain.SaleDetailLine{
			LineID:       uuid.NewString(),
			SaleID:       sale.SaleID,
			ProductID:    lineReq.ProductID,
			Quantity:     lineReq.Quantity,
			UnitaryPrice: lineReq.UnitaryPrice,
		}
	}
	sale.Details = lines

	if err := s.procurementRepo.SaveSale(ctx, sale); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("area_id", req.AreaID))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	logger.Info("Sale created", slog.String("sale_id", sale.SaleID), slog.String("total", sale.TotalAmount().String()))
	return &sale, nil
}

// GetSaleByID retrieves a sale with its lines.
func (s *procurementService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.procurementRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	return sale, nil
}

// ListSales retrieves sales for an area.
func (s *procurementService) ListSales(ctx context.Context, areaID string, params dto.ListProcurementParams) ([]domain.Sale, error) {
	sales, err := s.procurementRepo.ListSales(ctx, procurementFilter(areaID, params))
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for area %s: %w", areaID, err)
	}
	return sales, nil
}

// DeliverSale moves the sale to DELIVERED and posts one OUT/SALE movement
// per line for the full line quantity, idempotently per line.
func (s *procurementService) DeliverSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.procurementRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	if sale.Status == domain.SaleRejected {
		return nil, fmt.Errorf("%w: sale %s is rejected", apperrors.ErrConflict, saleID)
	}

	now := time.Now().UTC()
	for _, line := range sale.Details {
		if line.StockMovementID != nil {
			continue
		}
		lineID := line.LineID
		movement := domain.StockMovement{
			MovementID:       uuid.NewString(),
			AreaID:           sale.AreaID,
			ProductID:        line.ProductID,
			Direction:        domain.MovementOut,
			Operation:        domain.MovementSale,
			Quantity:         line.Quantity,
			Status:           domain.MovementPosted,
			DateOf:           now,
			Comment:          fmt.Sprintf("sale %s", sale.Reference),
			SaleDetailLineID: &lineID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.stockRepo.SaveMovement(ctx, movement); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			logger.Error("Failed to post sale delivery movement", slog.String("error", err.Error()), slog.String("line_id", lineID))
			return nil, fmt.Errorf("failed to post delivery movement for line %s: %w", lineID, err)
		}
	}

	if sale.Status != domain.SaleDelivered {
		if err := s.procurementRepo.UpdateSaleStatus(ctx, saleID, domain.SaleDelivered, userID, now); err != nil {
			return nil, fmt.Errorf("failed to mark sale delivered: %w", err)
		}
	}

	logger.Info("Sale delivered", slog.String("sale_id", saleID))
	return s.procurementRepo.FindSaleByID(ctx, saleID)
}

// RejectSale moves a PENDING sale to REJECTED. Stock is untouched since
// nothing was delivered.
func (s *procurementService) RejectSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error) {
	sale, err := s.procurementRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	if sale.Status != domain.SalePending {
		return nil, fmt.Errorf("%w: only pending sales can be rejected, sale %s is %s", apperrors.ErrConflict, saleID, sale.Status)
	}

	now := time.Now().UTC()
	if err := s.procurementRepo.UpdateSaleStatus(ctx, saleID, domain.SaleRejected, userID, now); err != nil {
		return nil, fmt.Errorf("failed to reject sale %s: %w", saleID, err)
	}
	sale.Status = domain.SaleRejected
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = userID
	return sale, nil
}

// --- Partners ---

// GetCustomerByID retrieves a customer.
func (s *procurementService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.procurementRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers retrieves a paginated customer listing.
func (s *procurementService) ListCustomers(ctx context.Context, params dto.ListPartnersParams) ([]domain.Customer, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	customers, err := s.procurementRepo.ListCustomers(ctx, params.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// CreateCustomer registers a customer for an area.
func (s *procurementService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		AreaID:     req.AreaID,
		Name:       req.Name,
		Email:      req.Email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.procurementRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return &customer, nil
}

// UpdateCustomer updates customer details.
func (s *procurementService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.procurementRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID
	if err := s.procurementRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return customer, nil
}

// GetSupplierByID retrieves a supplier.
func (s *procurementService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.procurementRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

// ListSuppliers retrieves a paginated supplier listing.
func (s *procurementService) ListSuppliers(ctx context.Context, params dto.ListPartnersParams) ([]domain.Supplier, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	suppliers, err := s.procurementRepo.ListSuppliers(ctx, params.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateSupplier registers a supplier for an area.
func (s *procurementService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, userID string) (*domain.Supplier, error) {
	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		AreaID:     req.AreaID,
		Name:       req.Name,
		Email:      req.Email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.procurementRepo.SaveSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}
	return &supplier, nil
}

// UpdateSupplier updates supplier details.
func (s *procurementService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error) {
	supplier, err := s.procurementRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	supplier.LastUpdatedAt = time.Now().UTC()
	supplier.LastUpdatedBy = userID
	if err := s.procurementRepo.UpdateSupplier(ctx, *supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

func procurementFilter(areaID string, params dto.ListProcurementParams) portsrepo.ProcurementFilter {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	filter := portsrepo.ProcurementFilter{
		AreaID: areaID,
		Skip:   params.Skip,
		Limit:  limit,
	}
	if params.DateBegin != nil {
		filter.DateBegin = *params.DateBegin
	}
	if params.DateEnd != nil {
		filter.DateEnd = *params.DateEnd
	}
	return filter
}
