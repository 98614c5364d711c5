package services

import (
	"context"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with lines, payments and derived
	// amounts.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error)

	// ListInvoices retrieves a paginated invoice listing for an area.
	ListInvoices(ctx context.Context, areaID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListPaymentMethods retrieves the payment method catalog.
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// CreateInvoice persists an invoice with its detail lines.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*dto.InvoiceResponse, error)

	// CreateInvoiceFromPurchase copies the lines of a purchase request into a
	// new incoming invoice linked to it.
	CreateInvoiceFromPurchase(ctx context.Context, purchaseID string, req dto.InvoiceFromPurchaseRequest, userID string) (*dto.InvoiceResponse, error)

	// CreateInvoiceFromOrder copies the lines of a customer order into a new
	// outgoing invoice linked to it.
	CreateInvoiceFromOrder(ctx context.Context, orderID string, req dto.InvoiceFromOrderRequest, userID string) (*dto.InvoiceResponse, error)

	// UpdateInvoiceLines replaces the detail lines of a non-final invoice.
	UpdateInvoiceLines(ctx context.Context, invoiceID string, req dto.UpdateInvoiceLinesRequest, userID string) (*dto.InvoiceResponse, error)

	// AddPayment records a payment against the invoice. The settled total
	// never exceeds the amount to pay; settling it exactly closes the
	// invoice.
	AddPayment(ctx context.Context, invoiceID string, req dto.AddPaymentRequest, userID string) (*dto.InvoiceResponse, error)

	// SetInvoiceStatus transitions the invoice, enforcing settlement
	// invariants for CLOSED and REJECTED.
	SetInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string) (*dto.InvoiceResponse, error)
}

// InvoiceSvcFacade combines all invoice service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
