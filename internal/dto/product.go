package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// CreateProductRequest defines the data needed to create a new product.
// New products start in PENDING state with zero stock; stock only moves
// through the movement ledger.
type CreateProductRequest struct {
	AreaID        string          `json:"areaID" binding:"required"`
	Reference     string          `json:"reference" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"categoryID"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" binding:"required"`
	SalePrice     decimal.Decimal `json:"salePrice" binding:"required"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"categoryID"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
}

// CreateCategoryRequest defines the data needed to create a product category.
type CreateCategoryRequest struct {
	AreaID string `json:"areaID" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// UpdateCategoryRequest renames a product category.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ValidateProductRequest carries the catalog review decision.
type ValidateProductRequest struct {
	Approve bool `json:"approve"`
}

// ListProductsParams carries pagination for product listings.
type ListProductsParams struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string              `json:"productID"`
	AreaID        string              `json:"areaID"`
	Reference     string              `json:"reference"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	CategoryID    *string             `json:"categoryID,omitempty"`
	State         domain.ProductState `json:"state"`
	PurchasePrice decimal.Decimal     `json:"purchasePrice"`
	SalePrice     decimal.Decimal     `json:"salePrice"`
	OldStock      decimal.Decimal     `json:"oldStock"`
	ActualStock   decimal.Decimal     `json:"actualStock"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ListProductsResponse wraps a page of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// PriceHistoryResponse defines the data returned for one price change.
type PriceHistoryResponse struct {
	PriceHistoryID string           `json:"priceHistoryID"`
	ProductID      string           `json:"productID"`
	Type           domain.PriceType `json:"type"`
	OldValue       decimal.Decimal  `json:"oldValue"`
	NewValue       decimal.Decimal  `json:"newValue"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		AreaID:        p.AreaID,
		Reference:     p.Reference,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		State:         p.State,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		OldStock:      p.OldStock,
		ActualStock:   p.ActualStock,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToProductResponses converts a slice of domain.Product to DTOs.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToPriceHistoryResponse converts a domain.PriceHistory to its DTO.
func ToPriceHistoryResponse(h *domain.PriceHistory) PriceHistoryResponse {
	return PriceHistoryResponse{
		PriceHistoryID: h.PriceHistoryID,
		ProductID:      h.ProductID,
		Type:           h.Type,
		OldValue:       h.OldValue,
		NewValue:       h.NewValue,
		CreatedAt:      h.CreatedAt,
		CreatedBy:      h.CreatedBy,
	}
}
