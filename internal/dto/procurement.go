package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// ProcurementLineRequest is one product line on a purchase request or order.
type ProcurementLineRequest struct {
	ProductID         string          `json:"productID" binding:"required"`
	QuantityRequested decimal.Decimal `json:"quantityRequested" binding:"required,dgt0"`
	UnitaryPrice      decimal.Decimal `json:"unitaryPrice" binding:"required"`
}

// CreatePurchaseRequestRequest defines the data needed to raise a supply
// request.
type CreatePurchaseRequestRequest struct {
	AreaID      string                   `json:"areaID" binding:"required"`
	Reference   string                   `json:"reference" binding:"required"`
	DateOf      *time.Time               `json:"dateOf"`
	Comments    string                   `json:"comments"`
	InitiatedBy string                   `json:"initiatedBy"`
	Details     []ProcurementLineRequest `json:"details" binding:"required,min=1,dive"`
}

// CreateOrderRequest defines the data needed to record a customer order.
type CreateOrderRequest struct {
	AreaID     string                   `json:"areaID" binding:"required"`
	Reference  string                   `json:"reference" binding:"required"`
	CustomerID string                   `json:"customerID" binding:"required"`
	DateOf     *time.Time               `json:"dateOf"`
	Comments   string                   `json:"comments"`
	Details    []ProcurementLineRequest `json:"details" binding:"required,min=1,dive"`
}

// GrantLineRequest records the granted quantity on one detail line.
type GrantLineRequest struct {
	LineID           string          `json:"lineID" binding:"required"`
	QuantityAccorded decimal.Decimal `json:"quantityAccorded" binding:"required"`
}

// GrantLinesRequest records granted quantities ahead of delivery.
type GrantLinesRequest struct {
	Lines []GrantLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SaleLineRequest is one product line on a sale.
type SaleLineRequest struct {
	ProductID    string          `json:"productID" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	UnitaryPrice decimal.Decimal `json:"unitaryPrice" binding:"required"`
}

// CreateSaleRequest defines the data needed to record a sale.
type CreateSaleRequest struct {
	AreaID     string            `json:"areaID" binding:"required"`
	Reference  string            `json:"reference" binding:"required"`
	CustomerID string            `json:"customerID"`
	DateOf     *time.Time        `json:"dateOf"`
	Details    []SaleLineRequest `json:"details" binding:"required,min=1,dive"`
}

// SetRequestStatusRequest carries a lifecycle transition for a purchase
// request or order.
type SetRequestStatusRequest struct {
	Status domain.RequestStatus `json:"status" binding:"required,oneof=OPENED DELIVERED CLOSED REJECTED"`
}

// ListProcurementParams narrows and paginates procurement listings.
type ListProcurementParams struct {
	DateBegin *time.Time `form:"dateBegin" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"dateEnd" time_format:"2006-01-02"`
	Skip      int        `form:"skip"`
	Limit     int        `form:"limit"`
}

// ListPartnersParams paginates customer and supplier listings.
type ListPartnersParams struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// CreateCustomerRequest registers a customer for an area.
type CreateCustomerRequest struct {
	AreaID string `json:"areaID" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
}

// UpdateCustomerRequest updates customer details.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// CreateSupplierRequest registers a supplier for an area.
type CreateSupplierRequest struct {
	AreaID string `json:"areaID" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
}

// UpdateSupplierRequest updates supplier details.
type UpdateSupplierRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}
