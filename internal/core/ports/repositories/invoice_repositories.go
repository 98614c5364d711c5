package repositories

import (
	"context"
	"time"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// InvoiceFilter narrows an invoice listing.
type InvoiceFilter struct {
	AreaID    string
	Type      domain.InvoiceType
	Statuses  []domain.InvoiceStatus
	DateBegin time.Time
	DateEnd   time.Time
	Skip      int
	Limit     int
}

// InvoiceReader defines read operations for invoices and payments.
type InvoiceReader interface {
	// FindInvoiceByID loads the invoice with its detail lines and payments.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)

	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// InvoiceWriter defines write operations for invoices and payments.
type InvoiceWriter interface {
	// SaveInvoice inserts the header and detail lines in one storage
	// transaction.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// ReplaceInvoiceLines deletes and reinserts the detail lines of a
	// non-final invoice.
	ReplaceInvoiceLines(ctx context.Context, invoiceID string, lines []domain.InvoiceDetailLine, updatedBy string, updatedAt time.Time) error

	// ApplyPayment inserts the payment under an invoice row lock, refusing a
	// payment that would push settled past amount_to_pay
	// (domain.ErrOverpayment) or a payment against a REJECTED invoice
	// (domain.ErrRejectedWithPayment). When the payment settles the invoice
	// exactly, status moves to CLOSED; a first partial payment moves PENDING
	// or OPENED to PARTIAL. All in one storage transaction.
	ApplyPayment(ctx context.Context, payment domain.Payment) (*domain.Invoice, error)

	// UpdateInvoiceStatus transitions the invoice, re-checking settlement
	// invariants under the row lock: CLOSED requires settled ==
	// amount_to_pay (domain.ErrUnderpaidClosure), REJECTED requires zero
	// payments (domain.ErrRejectedWithPayment).
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
