package domain

import "github.com/shopspring/decimal"

// ProductState tracks the approval lifecycle of a catalog entry.
type ProductState string

const (
	ProductPending   ProductState = "PENDING"
	ProductValidated ProductState = "VALIDATED"
	ProductRejected  ProductState = "REJECTED"
)

// PriceType identifies which of the two product prices a history row records.
type PriceType string

const (
	PriceSale     PriceType = "SALE"
	PricePurchase PriceType = "PURCHASE"
)

// Product is a catalog entry scoped to one area.
//
// ActualStock is a materialized projection over the stock movement ledger: it
// must always equal the signed sum of all non-cancelled movements for the
// product. It is only ever mutated transactionally together with a movement
// insert. OldStock is the snapshot taken just before the last movement applied.
type Product struct {
	ProductID     string          `json:"productID"`
	AreaID        string          `json:"areaID"`
	Reference     string          `json:"reference"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"categoryID"` // nullable, survives category deletion
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	OldStock      decimal.Decimal `json:"oldStock"`
	ActualStock   decimal.Decimal `json:"actualStock"`
	State         ProductState    `json:"state"`
	AuditFields
}

// ProductCategory groups products within an area.
type ProductCategory struct {
	CategoryID string `json:"categoryID"`
	AreaID     string `json:"areaID"`
	Name       string `json:"name"`
	AuditFields
}

// PriceHistory is an append-only record of a price change on a product.
type PriceHistory struct {
	PriceHistoryID string          `json:"priceHistoryID"`
	ProductID      string          `json:"productID"`
	Type           PriceType       `json:"type"`
	OldValue       decimal.Decimal `json:"oldValue"`
	NewValue       decimal.Decimal `json:"newValue"`
	AuditFields
}
