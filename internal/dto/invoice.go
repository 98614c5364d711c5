package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// InvoiceLineRequest is one product line on an invoice create/update payload.
type InvoiceLineRequest struct {
	ProductID         string           `json:"productID" binding:"required"`
	QuantityRequested decimal.Decimal  `json:"quantityRequested" binding:"required,dgt0"`
	QuantityReal      *decimal.Decimal `json:"quantityReal"`
	UnitaryPrice      decimal.Decimal  `json:"unitaryPrice" binding:"required"`
}

// CreateInvoiceRequest defines the data needed to create an invoice.
type CreateInvoiceRequest struct {
	AreaID     string               `json:"areaID" binding:"required"`
	Type       domain.InvoiceType   `json:"type" binding:"required,oneof=IN OUT"`
	Ref        *string              `json:"ref"`
	DateOf     *time.Time           `json:"dateOf"`
	Comments   string               `json:"comments"`
	PurchaseID *string              `json:"purchaseID"`
	OrderID    *string              `json:"orderID"`
	SaleID     *string              `json:"saleID"`
	SupplierID *string              `json:"supplierID"`
	CustomerID *string              `json:"customerID"`
	Details    []InvoiceLineRequest `json:"details" binding:"required,min=1,dive"`
}

// UpdateInvoiceLinesRequest replaces the detail lines of a non-final invoice.
type UpdateInvoiceLinesRequest struct {
	Details []InvoiceLineRequest `json:"details" binding:"required,min=1,dive"`
}

// AddPaymentRequest records a payment against an invoice.
type AddPaymentRequest struct {
	Amount    decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	Method    domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CARD CHECK WIRE"`
	Reference *string              `json:"reference"`
	// AccountID designates the register receiving or paying the cash; only
	// consulted for CASH payments.
	AccountID *string             `json:"accountID"`
	Counts    []DenominationCount `json:"counts" binding:"omitempty,dive"`
}

// SetInvoiceStatusRequest carries a lifecycle transition.
type SetInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=PENDING OPENED PARTIAL CLOSED REJECTED"`
}

// InvoiceFromPurchaseRequest creates an incoming invoice from a purchase
// request. The supplier is supplied here since the request itself does not
// carry one.
type InvoiceFromPurchaseRequest struct {
	SupplierID string  `json:"supplierID" binding:"required"`
	Ref        *string `json:"ref"`
	Comments   string  `json:"comments"`
}

// InvoiceFromOrderRequest creates an outgoing invoice from a customer order.
type InvoiceFromOrderRequest struct {
	Ref      *string `json:"ref"`
	Comments string  `json:"comments"`
}

// ListInvoicesParams narrows and paginates an invoice listing.
type ListInvoicesParams struct {
	Type      *domain.InvoiceType `form:"type"`
	DateBegin *time.Time          `form:"dateBegin" time_format:"2006-01-02"`
	DateEnd   *time.Time          `form:"dateEnd" time_format:"2006-01-02"`
	Skip      int                 `form:"skip"`
	Limit     int                 `form:"limit"`
}

// InvoiceLineResponse defines the data returned for one invoice line.
type InvoiceLineResponse struct {
	LineID            string           `json:"lineID"`
	ProductID         string           `json:"productID"`
	QuantityRequested decimal.Decimal  `json:"quantityRequested"`
	QuantityReal      *decimal.Decimal `json:"quantityReal,omitempty"`
	UnitaryPrice      decimal.Decimal  `json:"unitaryPrice"`
	Value             decimal.Decimal  `json:"value"`
	AmountPayable     decimal.Decimal  `json:"amountPayable"`
}

// PaymentResponse defines the data returned for one payment.
type PaymentResponse struct {
	PaymentID         string               `json:"paymentID"`
	Amount            decimal.Decimal      `json:"amount"`
	Method            domain.PaymentMethod `json:"method"`
	Reference         *string              `json:"reference,omitempty"`
	CashTransactionID *string              `json:"cashTransactionID,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
}

// InvoiceResponse defines the data returned for an invoice. TotalAmount,
// AmountToPay and AmountRemaining are derived from the lines at response
// time.
type InvoiceResponse struct {
	InvoiceID       string               `json:"invoiceID"`
	AreaID          string               `json:"areaID"`
	Ref             *string              `json:"ref,omitempty"`
	Type            domain.InvoiceType   `json:"type"`
	Status          domain.InvoiceStatus `json:"status"`
	DateOf          time.Time            `json:"dateOf"`
	Comments        string               `json:"comments,omitempty"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	AmountToPay     decimal.Decimal      `json:"amountToPay"`
	AmountPayed     decimal.Decimal      `json:"amountPayed"`
	AmountRemaining decimal.Decimal      `json:"amountRemaining"`
	PurchaseID      *string              `json:"purchaseID,omitempty"`
	OrderID         *string              `json:"orderID,omitempty"`
	SaleID          *string              `json:"saleID,omitempty"`
	SupplierID      *string              `json:"supplierID,omitempty"`
	CustomerID      *string              `json:"customerID,omitempty"`
	Details         []InvoiceLineResponse `json:"details"`
	Payments        []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice with its payments to a DTO.
func ToInvoiceResponse(inv *domain.Invoice, payments []domain.Payment) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Details))
	for i, line := range inv.Details {
		lines[i] = InvoiceLineResponse{
			LineID:            line.LineID,
			ProductID:         line.ProductID,
			QuantityRequested: line.QuantityRequested,
			QuantityReal:      line.QuantityReal,
			UnitaryPrice:      line.UnitaryPrice,
			Value:             line.Value(),
			AmountPayable:     line.AmountPayable(),
		}
	}
	paymentDTOs := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		paymentDTOs[i] = PaymentResponse{
			PaymentID:         p.PaymentID,
			Amount:            p.Amount,
			Method:            p.Method,
			Reference:         p.Reference,
			CashTransactionID: p.CashTransactionID,
			CreatedAt:         p.CreatedAt,
			CreatedBy:         p.CreatedBy,
		}
	}
	toPay := inv.AmountToPay()
	return InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		AreaID:          inv.AreaID,
		Ref:             inv.Ref,
		Type:            inv.Type,
		Status:          inv.Status,
		DateOf:          inv.DateOf,
		Comments:        inv.Comments,
		TotalAmount:     inv.TotalAmount(),
		AmountToPay:     toPay,
		AmountPayed:     inv.AmountPayed,
		AmountRemaining: toPay.Sub(inv.AmountPayed),
		PurchaseID:      inv.PurchaseID,
		OrderID:         inv.OrderID,
		SaleID:          inv.SaleID,
		SupplierID:      inv.SupplierID,
		CustomerID:      inv.CustomerID,
		Details:         lines,
		Payments:        paymentDTOs,
		CreatedAt:       inv.CreatedAt,
		CreatedBy:       inv.CreatedBy,
		LastUpdatedAt:   inv.LastUpdatedAt,
		LastUpdatedBy:   inv.LastUpdatedBy,
	}
}
