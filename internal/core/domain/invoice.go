package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes supplier invoices (IN) from customer invoices (OUT).
type InvoiceType string

const (
	InvoiceIn  InvoiceType = "IN"
	InvoiceOut InvoiceType = "OUT"
)

// InvoiceStatus is the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoicePending  InvoiceStatus = "PENDING"
	InvoiceOpened   InvoiceStatus = "OPENED"
	InvoicePartial  InvoiceStatus = "PARTIAL"
	InvoiceClosed   InvoiceStatus = "CLOSED"
	InvoiceRejected InvoiceStatus = "REJECTED"
)

// Invoice is a billing document, incoming from a supplier or outgoing to a
// customer, optionally derived from a purchase request or an order.
//
// AmountPayed is the only stored aggregate: it accumulates partial payments
// and is monotonically non-decreasing while the invoice is open. TotalAmount
// and AmountToPay are always recomputed from freshly loaded detail lines.
type Invoice struct {
	InvoiceID   string        `json:"invoiceID"`
	AreaID      string        `json:"areaID"`
	Ref         *string       `json:"ref"`
	Type        InvoiceType   `json:"type"`
	Status      InvoiceStatus `json:"status"`
	DateOf      time.Time     `json:"dateOf"`
	Comments    string        `json:"comments"`
	AmountPayed decimal.Decimal `json:"amountPayed"`

	PurchaseID *string `json:"purchaseID"`
	OrderID    *string `json:"orderID"`
	SaleID     *string `json:"saleID"`
	SupplierID *string `json:"supplierID"`
	CustomerID *string `json:"customerID"`

	Details []InvoiceDetailLine `json:"details"`
	AuditFields
}

// TotalAmount is the face value of the invoice: sum of requested quantity
// times unit price over all lines.
func (i Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range i.Details {
		total = total.Add(line.Value())
	}
	return total
}

// AmountToPay is what is actually owed: only lines with a confirmed
// delivered/received quantity count.
func (i Invoice) AmountToPay() decimal.Decimal {
	total := decimal.Zero
	for _, line := range i.Details {
		total = total.Add(line.AmountPayable())
	}
	return total
}

// InvoiceDetailLine is one product line on an invoice. QuantityReal is the
// quantity actually delivered or received; it stays nil until confirmed.
type InvoiceDetailLine struct {
	LineID            string           `json:"lineID"`
	InvoiceID         string           `json:"invoiceID"`
	ProductID         string           `json:"productID"`
	QuantityRequested decimal.Decimal  `json:"quantityRequested"`
	QuantityReal      *decimal.Decimal `json:"quantityReal"`
	UnitaryPrice      decimal.Decimal  `json:"unitaryPrice"`
}

// Value is the requested quantity times the unit price.
func (l InvoiceDetailLine) Value() decimal.Decimal {
	return l.QuantityRequested.Mul(l.UnitaryPrice)
}

// AmountPayable is the confirmed quantity times the unit price, zero while
// delivery/receipt is unconfirmed.
func (l InvoiceDetailLine) AmountPayable() decimal.Decimal {
	if l.QuantityReal == nil {
		return decimal.Zero
	}
	return l.QuantityReal.Mul(l.UnitaryPrice)
}

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "CASH"
	PaymentCard  PaymentMethod = "CARD"
	PaymentCheck PaymentMethod = "CHECK"
	PaymentWire  PaymentMethod = "WIRE"
)

// Payment records one partial or full payment against an invoice. When the
// payment was made in cash it links to the register transaction that moved
// the physical money.
type Payment struct {
	PaymentID         string               `json:"paymentID"`
	InvoiceID         string               `json:"invoiceID"`
	Reference         *string              `json:"reference"`
	Amount            decimal.Decimal      `json:"amount"`
	Method            PaymentMethod        `json:"method"`
	Direction         TransactionDirection `json:"direction"`
	Status            TransactionStatus    `json:"status"`
	CashTransactionID *string              `json:"cashTransactionID"`
	AuditFields
}
