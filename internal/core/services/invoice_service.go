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

// invoiceService provides invoice and settlement operations.
type invoiceService struct {
	invoiceRepo     portsrepo.InvoiceRepositoryFacade
	procurementRepo portsrepo.ProcurementReader
	cashSvc         portssvc.CashSvcFacade
}

// NewInvoiceService creates a new InvoiceService. The cash service handles
// the register side of CASH payments; the procurement reader backs the
// invoice-from-document shortcuts.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, procurementRepo portsrepo.ProcurementReader, cashSvc portssvc.CashSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:     invoiceRepo,
		procurementRepo: procurementRepo,
		cashSvc:         cashSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice persists an invoice with its detail lines. Totals are never
// stored; they are derived from the lines whenever the invoice is read.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Type == domain.InvoiceIn && req.SupplierID == nil {
		return nil, fmt.Errorf("%w: incoming invoices require a supplier", apperrors.ErrValidation)
	}
	if req.Type == domain.InvoiceOut && req.CustomerID == nil {
		return nil, fmt.Errorf("%w: outgoing invoices require a customer", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	dateOf := now
	if req.DateOf != nil {
		dateOf = req.DateOf.UTC()
	}

	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		AreaID:      req.AreaID,
		Ref:         req.Ref,
		Type:        req.Type,
		Status:      domain.InvoicePending,
		DateOf:      dateOf,
		Comments:    req.Comments,
		AmountPayed: decimal.Zero,
		PurchaseID:  req.PurchaseID,
		OrderID:     req.OrderID,
		SaleID:      req.SaleID,
		SupplierID:  req.SupplierID,
		CustomerID:  req.CustomerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	lines, err := buildInvoiceLines(invoice.InvoiceID, req.Details)
	if err != nil {
		return nil, err
	}
	invoice.Details = lines

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("area_id", req.AreaID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("type", string(invoice.Type)),
		slog.String("total", invoice.TotalAmount().String()),
	)
	resp := dto.ToInvoiceResponse(&invoice, nil)
	return &resp, nil
}

// CreateInvoiceFromPurchase copies the lines of a purchase request into a new
// incoming invoice. Granted quantities become the real quantities, so the
// amount to pay reflects what was actually received.
func (s *invoiceService) CreateInvoiceFromPurchase(ctx context.Context, purchaseID string, req dto.InvoiceFromPurchaseRequest, userID string) (*dto.InvoiceResponse, error) {
	request, err := s.procurementRepo.FindPurchaseRequestByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request %s: %w", purchaseID, err)
	}
	if request.Status == domain.RequestRejected {
		return nil, fmt.Errorf("%w: purchase request %s is rejected", apperrors.ErrConflict, purchaseID)
	}

	create := dto.CreateInvoiceRequest{
		AreaID:     request.AreaID,
		Type:       domain.InvoiceIn,
		Ref:        req.Ref,
		Comments:   req.Comments,
		PurchaseID: &request.PurchaseID,
		SupplierID: &req.SupplierID,
		Details:    procurementLinesToInvoiceLines(request.Details),
	}
	return s.CreateInvoice(ctx, create, userID)
}

// CreateInvoiceFromOrder copies the lines of a customer order into a new
// outgoing invoice billed to the order's customer.
func (s *invoiceService) CreateInvoiceFromOrder(ctx context.Context, orderID string, req dto.InvoiceFromOrderRequest, userID string) (*dto.InvoiceResponse, error) {
	order, err := s.procurementRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.Status == domain.RequestRejected {
		return nil, fmt.Errorf("%w: order %s is rejected", apperrors.ErrConflict, orderID)
	}

	create := dto.CreateInvoiceRequest{
		AreaID:     order.AreaID,
		Type:       domain.InvoiceOut,
		Ref:        req.Ref,
		Comments:   req.Comments,
		OrderID:    &order.OrderID,
		CustomerID: &order.CustomerID,
		Details:    procurementLinesToInvoiceLines(order.Details),
	}
	return s.CreateInvoice(ctx, create, userID)
}

func procurementLinesToInvoiceLines(lines []domain.ProcurementDetailLine) []dto.InvoiceLineRequest {
	reqs := make([]dto.InvoiceLineRequest, len(lines))
	for i, line := range lines {
		reqs[i] = dto.InvoiceLineRequest{
			ProductID:         line.ProductID,
			QuantityRequested: line.QuantityRequested,
			QuantityReal:      line.QuantityAccorded,
			UnitaryPrice:      line.UnitaryPrice,
		}
	}
	return reqs
}

func buildInvoiceLines(invoiceID string, reqs []dto.InvoiceLineRequest) ([]domain.InvoiceDetailLine, error) {
	lines := make([]domain.InvoiceDetailLine, len(reqs))
	for i, lineReq := range reqs {
		if lineReq.QuantityRequested.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: requested quantity must be positive for product %s", apperrors.ErrValidation, lineReq.ProductID)
		}
		if lineReq.UnitaryPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, lineReq.ProductID)
		}
		if lineReq.QuantityReal != nil && lineReq.QuantityReal.IsNegative() {
			return nil, fmt.Errorf("%w: real quantity must not be negative for product %s", apperrors.ErrValidation, lineReq.ProductID)
		}
		lines[i] = domain.InvoiceDetailLine{
			LineID:            uuid.NewString(),
			InvoiceID:         invoiceID,
			ProductID:         lineReq.ProductID,
			QuantityRequested: lineReq.QuantityRequested,
			QuantityReal:      lineReq.QuantityReal,
			UnitaryPrice:      lineReq.UnitaryPrice,
		}
	}
	return lines, nil
}

// GetInvoiceByID retrieves an invoice with lines, payments and derived amounts.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	payments, err := s.invoiceRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for invoice %s: %w", invoiceID, err)
	}
	resp := dto.ToInvoiceResponse(invoice, payments)
	return &resp, nil
}

// ListInvoices retrieves a paginated invoice listing for an area.
func (s *invoiceService) ListInvoices(ctx context.Context, areaID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.InvoiceFilter{
		AreaID: areaID,
		Skip:   params.Skip,
		Limit:  limit,
	}
	if params.Type != nil {
		filter.Type = *params.Type
	}
	if params.DateBegin != nil {
		filter.DateBegin = *params.DateBegin
	}
	if params.DateEnd != nil {
		filter.DateEnd = *params.DateEnd
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for area %s: %w", areaID, err)
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = dto.ToInvoiceResponse(&invoices[i], nil)
	}
	return &dto.ListInvoicesResponse{Invoices: responses}, nil
}

// ListPaymentMethods retrieves the supported payment methods.
func (s *invoiceService) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return []domain.PaymentMethod{
		domain.PaymentCash,
		domain.PaymentCard,
		domain.PaymentCheck,
		domain.PaymentWire,
	}, nil
}

// UpdateInvoiceLines replaces the detail lines of a non-final invoice.
// Derived totals follow automatically since they are computed from lines.
func (s *invoiceService) UpdateInvoiceLines(ctx context.Context, invoiceID string, req dto.UpdateInvoiceLinesRequest, userID string) (*dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceClosed || invoice.Status == domain.InvoiceRejected {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, invoiceID, invoice.Status)
	}

	lines, err := buildInvoiceLines(invoiceID, req.Details)
	if err != nil {
		return nil, err
	}

	// Shrinking amount_to_pay below what is already paid would strand money.
	newToPay := decimal.Zero
	for _, line := range lines {
		newToPay = newToPay.Add(line.AmountPayable())
	}
	if newToPay.LessThan(invoice.AmountPayed) {
		return nil, fmt.Errorf("%w: new amount to pay %s is below amount already paid %s", apperrors.ErrConflict, newToPay, invoice.AmountPayed)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.ReplaceInvoiceLines(ctx, invoiceID, lines, userID, now); err != nil {
		logger.Error("Failed to replace invoice lines", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to replace invoice lines: %w", err)
	}

	invoice.Details = lines
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	resp := dto.ToInvoiceResponse(invoice, nil)
	return &resp, nil
}

// AddPayment records a payment against the invoice. For CASH payments the
// register transaction is created first and linked to the payment, so the
// money trail is complete. It stays PENDING until the payment is durably
// applied and is only then completed; a failed application marks it FAILED.
// The repo re-checks overpayment under the invoice row lock before anything
// is written.
func (s *invoiceService) AddPayment(ctx context.Context, invoiceID string, req dto.AddPaymentRequest, userID string) (*dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceRejected {
		return nil, fmt.Errorf("%w: invoice %s", domain.ErrRejectedWithPayment, invoiceID)
	}
	if invoice.Status == domain.InvoiceClosed {
		return nil, fmt.Errorf("%w: invoice %s is already settled", apperrors.ErrConflict, invoiceID)
	}

	// Pre-check against the loaded state; the repo re-checks under lock.
	remaining := invoice.AmountToPay().Sub(invoice.AmountPayed)
	if req.Amount.GreaterThan(remaining) {
		return nil, fmt.Errorf("%w: %s requested, %s remaining", domain.ErrOverpayment, req.Amount, remaining)
	}

	// Direction follows the invoice type: customers pay us (IN), we pay
	// suppliers (OUT).
	direction := domain.CashIn
	if invoice.Type == domain.InvoiceIn {
		direction = domain.CashOut
	}

	var cashTransactionID *string
	if req.Method == domain.PaymentCash {
		if req.AccountID == nil {
			return nil, fmt.Errorf("%w: cash payments require an accountID", apperrors.ErrValidation)
		}
		operation := domain.CashSalePayment
		if direction == domain.CashOut {
			operation = domain.CashMiscExpenseOut
		}
		txn, err := s.cashSvc.CreateTransaction(ctx, dto.CreateCashTransactionRequest{
			AccountID:  *req.AccountID,
			Direction:  direction,
			Operation:  operation,
			PaymentRef: req.Reference,
			Counts:     req.Counts,
		}, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to record register transaction for payment: %w", err)
		}
		if !txn.TotalAmount().Abs().Equal(req.Amount) {
			// The denomination breakdown and the declared amount disagree.
			// Refuse rather than guessing which one is right.
			if _, failErr := s.cashSvc.SetTransactionStatus(ctx, txn.TransactionID, domain.TransactionFailed, "payment amount mismatch", userID); failErr != nil {
				logger.Error("Failed to mark register transaction failed", slog.String("error", failErr.Error()), slog.String("transaction_id", txn.TransactionID))
			}
			return nil, fmt.Errorf("%w: counted %s does not match payment amount %s", apperrors.ErrValidation, txn.TotalAmount().Abs(), req.Amount)
		}
		cashTransactionID = &txn.TransactionID
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:         uuid.NewString(),
		InvoiceID:         invoiceID,
		Reference:         req.Reference,
		Amount:            req.Amount,
		Method:            req.Method,
		Direction:         direction,
		Status:            domain.TransactionCompleted,
		CashTransactionID: cashTransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	updated, err := s.invoiceRepo.ApplyPayment(ctx, payment)
	if err != nil {
		if cashTransactionID != nil {
			// The register transaction is still PENDING at this point, so it
			// was never counted toward the drawer. Fail it so it cannot sit
			// open and block balancing.
			if _, failErr := s.cashSvc.SetTransactionStatus(ctx, *cashTransactionID, domain.TransactionFailed, "payment not applied", userID); failErr != nil {
				logger.Error("Failed to mark register transaction failed", slog.String("error", failErr.Error()), slog.String("transaction_id", *cashTransactionID))
			}
		}
		if !errors.Is(err, domain.ErrOverpayment) {
			logger.Error("Failed to apply payment", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to apply payment to invoice %s: %w", invoiceID, err)
	}

	if cashTransactionID != nil {
		// Completing moves the money into the theoretical balance. The
		// payment row is already durable, so a failure here is logged rather
		// than returned: retrying the whole call would pay the invoice twice.
		if _, err := s.cashSvc.SetTransactionStatus(ctx, *cashTransactionID, domain.TransactionCompleted, "", userID); err != nil {
			logger.Error("Failed to complete register transaction for payment", slog.String("error", err.Error()), slog.String("transaction_id", *cashTransactionID))
		}
	}

	payments, err := s.invoiceRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for invoice %s: %w", invoiceID, err)
	}

	logger.Info("Payment applied",
		slog.String("invoice_id", invoiceID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("status", string(updated.Status)),
	)
	resp := dto.ToInvoiceResponse(updated, payments)
	return &resp, nil
}

// SetInvoiceStatus transitions the invoice. Settlement invariants are
// re-checked by the repo under the invoice row lock: CLOSED requires full
// payment, REJECTED requires no payment at all.
func (s *invoiceService) SetInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string) (*dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, status, userID, now); err != nil {
		if !errors.Is(err, domain.ErrUnderpaidClosure) && !errors.Is(err, domain.ErrRejectedWithPayment) {
			logger.Error("Failed to update invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to update invoice %s status: %w", invoiceID, err)
	}

	logger.Info("Invoice status updated", slog.String("invoice_id", invoiceID), slog.String("status", string(status)))
	return s.GetInvoiceByID(ctx, invoiceID)
}
