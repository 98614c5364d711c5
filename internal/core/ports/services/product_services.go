package services

import (
	"context"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// ProductReaderSvc defines read operations for the product catalog
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its unique identifier.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products for an area.
	ListProducts(ctx context.Context, areaID string, params dto.ListProductsParams) (*dto.ListProductsResponse, error)

	// ListPriceHistory retrieves the recorded price changes of a product.
	ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceHistory, error)

	// ListCategories retrieves the product categories of an area.
	ListCategories(ctx context.Context, areaID string) ([]domain.ProductCategory, error)
}

// ProductWriterSvc defines write operations for the product catalog
type ProductWriterSvc interface {
	// CreateProduct persists a new product in PENDING state.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct updates product details, recording a price history entry
	// whenever a price changed.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)

	// ValidateProduct moves a PENDING product to VALIDATED or REJECTED.
	ValidateProduct(ctx context.Context, productID string, approve bool, userID string) (*domain.Product, error)

	// PurgeRejectedProducts removes REJECTED products older than the cutoff.
	PurgeRejectedProducts(ctx context.Context) (int64, error)

	// CreateCategory persists a new product category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.ProductCategory, error)

	// UpdateCategory renames a product category.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.ProductCategory, error)

	// DeleteCategory removes a category; products referencing it are kept.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
