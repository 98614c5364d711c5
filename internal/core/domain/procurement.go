package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle of a purchase request or customer order.
type RequestStatus string

const (
	RequestOpened    RequestStatus = "OPENED"
	RequestDelivered RequestStatus = "DELIVERED"
	RequestClosed    RequestStatus = "CLOSED"
	RequestRejected  RequestStatus = "REJECTED"
)

// SaleStatus is the lifecycle of a point-of-sale sale.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleDelivered SaleStatus = "DELIVERED"
	SaleRejected  SaleStatus = "REJECTED"
)

// PurchaseRequest is a supply request raised by the storekeeper or a manager.
// Setting it DELIVERED triggers one IN/SUPPLY stock movement per accorded line.
type PurchaseRequest struct {
	PurchaseID  string        `json:"purchaseID"`
	AreaID      string        `json:"areaID"`
	Reference   string        `json:"reference"`
	Status      RequestStatus `json:"status"`
	DateOf      time.Time     `json:"dateOf"`
	Comments    string        `json:"comments"`
	InitiatedBy string        `json:"initiatedBy"` // EmployeeID
	Details     []ProcurementDetailLine `json:"details"`
	AuditFields
}

// TotalAmount is the face value of the request, from requested quantities.
func (p PurchaseRequest) TotalAmount() decimal.Decimal {
	return sumLineValues(p.Details)
}

// Order is a customer order fulfilled from stock. Setting it DELIVERED
// triggers one OUT/SALE stock movement per accorded line.
type Order struct {
	OrderID     string        `json:"orderID"`
	AreaID      string        `json:"areaID"`
	Reference   string        `json:"reference"`
	Status      RequestStatus `json:"status"`
	DateOf      time.Time     `json:"dateOf"`
	Comments    string        `json:"comments"`
	CustomerID  string        `json:"customerID"`
	Details     []ProcurementDetailLine `json:"details"`
	AuditFields
}

// TotalAmount is the face value of the order, from requested quantities.
func (o Order) TotalAmount() decimal.Decimal {
	return sumLineValues(o.Details)
}

// ProcurementDetailLine is one product line on a purchase request or order.
// QuantityAccorded is the quantity actually received/delivered; it stays nil
// until delivery is confirmed. StockMovementID is set when the delivery
// trigger has fired for this line, and guards against firing it twice.
type ProcurementDetailLine struct {
	LineID            string           `json:"lineID"`
	ParentID          string           `json:"parentID"` // purchase or order id
	ProductID         string           `json:"productID"`
	QuantityRequested decimal.Decimal  `json:"quantityRequested"`
	QuantityAccorded  *decimal.Decimal `json:"quantityAccorded"`
	UnitaryPrice      decimal.Decimal  `json:"unitaryPrice"`
	StockMovementID   *string          `json:"stockMovementID"`
}

// Value is the requested quantity times the unit price.
func (l ProcurementDetailLine) Value() decimal.Decimal {
	return l.QuantityRequested.Mul(l.UnitaryPrice)
}

func sumLineValues(lines []ProcurementDetailLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Value())
	}
	return total
}

// Sale is an over-the-counter sale. Delivery triggers one OUT/SALE movement
// per line for the full line quantity.
type Sale struct {
	SaleID     string     `json:"saleID"`
	AreaID     string     `json:"areaID"`
	Reference  string     `json:"reference"`
	CustomerID string     `json:"customerID"`
	Status     SaleStatus `json:"status"`
	DateOf     time.Time  `json:"dateOf"`
	Details    []SaleDetailLine `json:"details"`
	AuditFields
}

// TotalAmount is the sale value over all lines.
func (s Sale) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Details {
		total = total.Add(line.Value())
	}
	return total
}

// SaleDetailLine is one product line on a sale.
type SaleDetailLine struct {
	LineID          string          `json:"lineID"`
	SaleID          string          `json:"saleID"`
	ProductID       string          `json:"productID"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitaryPrice    decimal.Decimal `json:"unitaryPrice"`
	StockMovementID *string         `json:"stockMovementID"`
}

// Value is the line quantity times the unit price.
func (l SaleDetailLine) Value() decimal.Decimal {
	return l.Quantity.Mul(l.UnitaryPrice)
}

// Customer buys from an area.
type Customer struct {
	CustomerID string `json:"customerID"`
	AreaID     string `json:"areaID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AuditFields
}

// Supplier sells to an area.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	AreaID     string `json:"areaID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AuditFields
}
