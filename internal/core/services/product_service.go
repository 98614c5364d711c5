package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
	"github.com/tahina-mg/pos_management_app/internal/middleware"
)

// productService provides catalog operations.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	rejectedTTL time.Duration
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, rejectedTTL time.Duration) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		rejectedTTL: rejectedTTL,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct persists a new product in PENDING state with zero stock.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.SalePrice.IsNegative() || req.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		AreaID:        req.AreaID,
		Reference:     req.Reference,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		OldStock:      decimal.Zero,
		ActualStock:   decimal.Zero,
		State:         domain.ProductPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("area_id", req.AreaID))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("area_id", product.AreaID))
	return &product, nil
}

// GetProductByID retrieves a product.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves a paginated product listing for an area.
func (s *productService) ListProducts(ctx context.Context, areaID string, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	products, err := s.productRepo.ListProductsByArea(ctx, areaID, limit, params.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for area %s: %w", areaID, err)
	}
	return &dto.ListProductsResponse{Products: dto.ToProductResponses(products)}, nil
}

// ListPriceHistory retrieves the price change log of a product.
func (s *productService) ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceHistory, error) {
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	history, err := s.productRepo.ListPriceHistory(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list price history for product %s: %w", productID, err)
	}
	return history, nil
}

// UpdateProduct updates product details. Every price change is appended to
// the price history in the same storage transaction as the update.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	now := time.Now().UTC()
	var history []domain.PriceHistory

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.SalePrice != nil && !req.SalePrice.Equal(product.SalePrice) {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: sale price must not be negative", apperrors.ErrValidation)
		}
		history = append(history, domain.PriceHistory{
			PriceHistoryID: uuid.NewString(),
			ProductID:      productID,
			Type:           domain.PriceSale,
			OldValue:       product.SalePrice,
			NewValue:       *req.SalePrice,
			AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
		})
		product.SalePrice = *req.SalePrice
	}
	if req.PurchasePrice != nil && !req.PurchasePrice.Equal(product.PurchasePrice) {
		if req.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: purchase price must not be negative", apperrors.ErrValidation)
		}
		history = append(history, domain.PriceHistory{
			PriceHistoryID: uuid.NewString(),
			ProductID:      productID,
			Type:           domain.PricePurchase,
			OldValue:       product.PurchasePrice,
			NewValue:       *req.PurchasePrice,
			AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
		})
		product.PurchasePrice = *req.PurchasePrice
	}

	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product, history); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}

	logger.Info("Product updated", slog.String("product_id", productID), slog.Int("price_changes", len(history)))
	return product, nil
}

// ValidateProduct settles the catalog review of a PENDING product.
func (s *productService) ValidateProduct(ctx context.Context, productID string, approve bool, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	if product.State != domain.ProductPending {
		return nil, fmt.Errorf("%w: product %s is already %s", apperrors.ErrConflict, productID, product.State)
	}

	newState := domain.ProductValidated
	if !approve {
		newState = domain.ProductRejected
	}

	now := time.Now().UTC()
	if err := s.productRepo.UpdateProductState(ctx, productID, newState, userID, now); err != nil {
		logger.Error("Failed to update product state", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product state: %w", err)
	}

	product.State = newState
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID
	logger.Info("Product reviewed", slog.String("product_id", productID), slog.String("state", string(newState)))
	return product, nil
}

// ListCategories retrieves the product categories of an area.
func (s *productService) ListCategories(ctx context.Context, areaID string) ([]domain.ProductCategory, error) {
	categories, err := s.productRepo.ListCategoriesByArea(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for area %s: %w", areaID, err)
	}
	return categories, nil
}

// CreateCategory persists a new product category.
func (s *productService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.ProductCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	category := domain.ProductCategory{
		CategoryID: uuid.NewString(),
		AreaID:     req.AreaID,
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("area_id", req.AreaID))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("area_id", category.AreaID))
	return &category, nil
}

// UpdateCategory renames a product category.
func (s *productService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.ProductCategory, error) {
	category, err := s.productRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	category.Name = req.Name
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID

	if err := s.productRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", categoryID, err)
	}
	return category, nil
}

// DeleteCategory removes a category. Products referencing it keep their rows
// with the reference cleared by the schema.
func (s *productService) DeleteCategory(ctx context.Context, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}

// PurgeRejectedProducts removes REJECTED products older than the configured
// TTL. Runs from the background purge loop.
func (s *productService) PurgeRejectedProducts(ctx context.Context) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cutoff := time.Now().UTC().Add(-s.rejectedTTL)
	removed, err := s.productRepo.DeleteRejectedProducts(ctx, cutoff)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("Failed to purge rejected products", slog.String("error", err.Error()))
		}
		return 0, fmt.Errorf("failed to purge rejected products: %w", err)
	}
	if removed > 0 {
		logger.Info("Purged rejected products", slog.Int64("count", removed))
	}
	return removed, nil
}
