package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// ProductReader defines read operations for catalog data.
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProductsByArea retrieves products scoped to one area, paginated.
	ListProductsByArea(ctx context.Context, areaID string, limit, offset int) ([]domain.Product, error)

	// ListPriceHistory retrieves the price change log of a product, newest first.
	ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceHistory, error)

	// FindCategoryByID retrieves a product category by its identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.ProductCategory, error)

	// ListCategoriesByArea retrieves the categories of one area, by name.
	ListCategoriesByArea(ctx context.Context, areaID string) ([]domain.ProductCategory, error)
}

// ProductWriter defines write operations for catalog data.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates descriptive and price fields; price changes are
	// appended to the price history within the same transaction.
	UpdateProduct(ctx context.Context, product domain.Product, history []domain.PriceHistory) error

	// UpdateProductState moves a product through its approval lifecycle.
	UpdateProductState(ctx context.Context, productID string, state domain.ProductState, updatedBy string, updatedAt time.Time) error

	// DeleteRejectedProducts removes REJECTED products last updated before the
	// cutoff, one cascade-delete transaction per row. Returns the count removed.
	DeleteRejectedProducts(ctx context.Context, cutoff time.Time) (int64, error)

	// SaveCategory persists a new product category.
	SaveCategory(ctx context.Context, category domain.ProductCategory) error

	// UpdateCategory renames a product category.
	UpdateCategory(ctx context.Context, category domain.ProductCategory) error

	// DeleteCategory removes a category. Products keep their rows; the
	// schema clears their category reference.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ProductTxWriter defines product writes that participate in a caller-owned
// transaction. The stock repository uses these to keep the ledger row and the
// stock projection atomic.
type ProductTxWriter interface {
	// FindProductByIDForUpdate locks the product row (SELECT ... FOR UPDATE)
	// inside tx and returns it. Serializes concurrent ledger writers on the
	// same product.
	FindProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error)

	// ApplyStockDeltaInTx snapshots old_stock and applies the signed delta to
	// actual_stock as a single atomic UPDATE inside tx.
	ApplyStockDeltaInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// SetActualStockInTx overwrites actual_stock inside tx. Used by the
	// reconciliation repair path only.
	SetActualStockInTx(ctx context.Context, tx pgx.Tx, productID string, value decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductTxWriter
}
